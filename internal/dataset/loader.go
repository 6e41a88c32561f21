package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDimensionPrefix marks dimension columns (d1, d2, ...) in the header.
const DefaultDimensionPrefix = "d"

// reserved columns are never treated as dimensions even if they match the prefix
var reserved = map[string]bool{"id": true, "url": true, "title": true, "text": true}

// LoadOptions configures CSV loading
type LoadOptions struct {
	DimensionPrefix string
}

// Load reads a header-first CSV table: id,url,title,text followed by the
// numeric dimension columns.
func Load(r io.Reader, opts LoadOptions) (*Dataset, error) {
	prefix := opts.DimensionPrefix
	if prefix == "" {
		prefix = DefaultDimensionPrefix
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty table: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := columnIndex(header)
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("header has no id column")
	}

	var dimNames []string
	var dimCols []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		if reserved[name] || !strings.HasPrefix(name, prefix) {
			continue
		}
		dimNames = append(dimNames, name)
		dimCols = append(dimCols, i)
	}
	if len(dimNames) == 0 {
		return nil, fmt.Errorf("no columns with prefix %q: %w", prefix, ErrNoDimensions)
	}

	var points []Point
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		point := Point{
			ID:    field(record, cols, "id"),
			URL:   field(record, cols, "url"),
			Title: field(record, cols, "title"),
			Text:  field(record, cols, "text"),
			Dims:  make([]float64, len(dimCols)),
		}
		for k, col := range dimCols {
			v, err := parseValue(record[col])
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, dimNames[k], err)
			}
			point.Dims[k] = v
		}
		points = append(points, point)
	}

	return New(dimNames, points)
}

// LoadFile opens and loads a CSV table from disk
func LoadFile(path string, opts LoadOptions) (*Dataset, error) {
	cleanPath := filepath.Clean(path)
	// #nosec G304 - path comes from the user's own command line or config
	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := Load(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return data, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

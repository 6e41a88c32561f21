package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// csvFormatter formats hotspots as CSV, one row per hotspot
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"rank",
		"size",
		"share",
		"center_x",
		"center_y",
		"radius",
		report.XDim + "_min",
		report.XDim + "_max",
		report.YDim + "_min",
		report.YDim + "_max",
		"seed_id",
		"member_ids",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, h := range report.Hotspots {
		record := []string{
			strconv.Itoa(h.Rank),
			strconv.Itoa(h.Size),
			formatFloat(h.Share),
			formatFloat(h.CenterX),
			formatFloat(h.CenterY),
			formatFloat(h.Radius),
			formatFloat(h.DataBounds.X.Min),
			formatFloat(h.DataBounds.X.Max),
			formatFloat(h.DataBounds.Y.Min),
			formatFloat(h.DataBounds.Y.Max),
			h.SeedID,
			strings.Join(h.MemberIDs, ";"),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package dataset

import (
	"errors"
	"fmt"
)

// ErrNoDimensions is returned when a table declares no numeric dimension columns.
var ErrNoDimensions = errors.New("dataset has no dimension columns")

// Point is one record of the embedding table. Points are immutable once loaded.
type Point struct {
	ID    string
	URL   string
	Title string
	Text  string
	Dims  []float64
}

// Dataset is the ordered point collection shared by a session.
type Dataset struct {
	Dimensions []string
	Points     []Point

	byID  map[string]int
	byDim map[string]int
}

// New validates points against the declared dimensions and indexes them.
// The first point wins when ids repeat.
func New(dimensions []string, points []Point) (*Dataset, error) {
	if len(dimensions) == 0 {
		return nil, ErrNoDimensions
	}

	d := &Dataset{
		Dimensions: dimensions,
		Points:     points,
		byID:       make(map[string]int, len(points)),
		byDim:      make(map[string]int, len(dimensions)),
	}

	for i, name := range dimensions {
		if _, dup := d.byDim[name]; dup {
			return nil, fmt.Errorf("duplicate dimension %q", name)
		}
		d.byDim[name] = i
	}

	for i := range points {
		if len(points[i].Dims) != len(dimensions) {
			return nil, fmt.Errorf("point %d (%s) has %d dimensions, want %d",
				i, points[i].ID, len(points[i].Dims), len(dimensions))
		}
		if _, dup := d.byID[points[i].ID]; !dup {
			d.byID[points[i].ID] = i
		}
	}

	return d, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Points)
}

// Value returns dimension dim of point i.
func (d *Dataset) Value(i, dim int) float64 {
	return d.Points[i].Dims[dim]
}

// NumDimensions returns N, the length of every point's dimension vector.
func (d *Dataset) NumDimensions() int {
	if d == nil {
		return 0
	}
	return len(d.Dimensions)
}

// ValidDimension reports whether dim indexes a declared dimension.
func (d *Dataset) ValidDimension(dim int) bool {
	return dim >= 0 && dim < d.NumDimensions()
}

// DimensionIndex looks up a dimension by name.
func (d *Dataset) DimensionIndex(name string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i, ok := d.byDim[name]
	return i, ok
}

// IndexOf returns the position of the point with the given id.
func (d *Dataset) IndexOf(id string) (int, bool) {
	if d == nil {
		return 0, false
	}
	i, ok := d.byID[id]
	return i, ok
}

// Column copies one dimension across all points.
func (d *Dataset) Column(dim int) []float64 {
	values := make([]float64, d.Len())
	for i := range values {
		values[i] = d.Points[i].Dims[dim]
	}
	return values
}

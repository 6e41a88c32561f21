// Package projection maps two selected data dimensions onto a square screen
// rectangle. Screen Y grows downwards, so the data minimum lands at the
// bottom edge.
package projection

import (
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Range is a closed interval on one data axis. Min == Max is allowed.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Degenerate reports whether the range collapsed to a single value.
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return r.interval().Contains(v)
}

// Lerp returns the value at fraction t of the way from Min to Max.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Ticks returns n evenly spaced values from Min to Max inclusive.
func (r Range) Ticks(n int) []float64 {
	if n < 2 {
		return []float64{r.Min}
	}
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = r.Lerp(float64(i) / float64(n-1))
	}
	return ticks
}

// Padded widens both ends by frac of the span. A degenerate range stays put.
func (r Range) Padded(frac float64) Range {
	iv := r.interval().Expanded((r.Max - r.Min) * frac)
	return Range{Min: iv.Lo, Max: iv.Hi}
}

func (r Range) interval() r1.Interval {
	return r1.Interval{Lo: r.Min, Hi: r.Max}
}

// unit maps v into [0,1] across the range; degenerate ranges map to the middle.
func (r Range) unit(v float64) float64 {
	if r.Degenerate() {
		return 0.5
	}
	return scale.Linear{Min: r.Min, Max: r.Max}.Map(v)
}

// Bounds is a data-space rectangle over the plotted (x, y) pair.
type Bounds struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// Rect converts the bounds to an r2.Rect.
func (b Bounds) Rect() r2.Rect {
	return r2.Rect{X: b.X.interval(), Y: b.Y.interval()}
}

// BoundsFromRect converts an r2.Rect back to bounds.
func BoundsFromRect(rect r2.Rect) Bounds {
	return Bounds{
		X: Range{Min: rect.X.Lo, Max: rect.X.Hi},
		Y: Range{Min: rect.Y.Lo, Max: rect.Y.Hi},
	}
}

// Contains reports whether the data coordinate (x, y) is inside the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return b.Rect().ContainsPoint(r2.Point{X: x, Y: y})
}

// Padded widens each axis independently by frac of its own span.
func (b Bounds) Padded(frac float64) Bounds {
	return Bounds{X: b.X.Padded(frac), Y: b.Y.Padded(frac)}
}

// ScreenRect is the square plot area in screen units.
type ScreenRect struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
	Size float64 `json:"size"`
}

// Rect converts the plot area to an r2.Rect.
func (s ScreenRect) Rect() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: s.Left, Y: s.Top},
		r2.Point{X: s.Left + s.Size, Y: s.Top + s.Size},
	)
}

// Contains reports whether p is inside the plot area, edges included.
func (s ScreenRect) Contains(p r2.Point) bool {
	return s.Rect().ContainsPoint(p)
}

// Source is the point collection being plotted.
type Source interface {
	Len() int
	Value(i, dim int) float64
}

// View is everything needed to place a point on screen.
type View struct {
	XDim   int
	YDim   int
	Bounds Bounds
	Screen ScreenRect
}

// Project maps the data coordinate (x, y) into screen space.
func Project(x, y float64, b Bounds, s ScreenRect) r2.Point {
	return r2.Point{
		X: s.Left + b.X.unit(x)*s.Size,
		Y: s.Top + (1-b.Y.unit(y))*s.Size,
	}
}

// Point projects point i of src.
func (v View) Point(src Source, i int) r2.Point {
	return Project(src.Value(i, v.XDim), src.Value(i, v.YDim), v.Bounds, v.Screen)
}

// InBounds reports whether point i of src falls inside the view's data bounds.
func (v View) InBounds(src Source, i int) bool {
	return v.Bounds.Contains(src.Value(i, v.XDim), src.Value(i, v.YDim))
}

// ProjectAll projects every point of src, preserving order.
func (v View) ProjectAll(src Source) []r2.Point {
	out := make([]r2.Point, src.Len())
	for i := range out {
		out[i] = v.Point(src, i)
	}
	return out
}

// DataBounds returns the full extents of the (xDim, yDim) pair over src.
// An empty source yields the zero bounds, which are degenerate on both axes.
func DataBounds(src Source, xDim, yDim int) Bounds {
	n := src.Len()
	if n == 0 {
		return Bounds{}
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = src.Value(i, xDim)
		ys[i] = src.Value(i, yDim)
	}
	return Bounds{X: AxisRange(xs), Y: AxisRange(ys)}
}

// AxisRange returns the min and max of values.
func AxisRange(values []float64) Range {
	if len(values) == 0 {
		return Range{}
	}
	lo, hi := stats.Bounds(values)
	return Range{Min: lo, Max: hi}
}

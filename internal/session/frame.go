package session

import (
	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/hotspot"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/zoom"
)

// Highlight says why a point is drawn emphasized.
type Highlight int

const (
	HighlightNone Highlight = iota
	// HighlightHover marks the point under the plot pointer.
	HighlightHover
	// HighlightGrid marks the row hovered in the grid.
	HighlightGrid
)

func (h Highlight) String() string {
	switch h {
	case HighlightHover:
		return "hover"
	case HighlightGrid:
		return "grid"
	default:
		return "none"
	}
}

// PlotPoint is one drawable point.
type PlotPoint struct {
	Index     int
	ID        string
	Screen    r2.Point
	Highlight Highlight
}

// Frame is a read-only snapshot of everything the drawing layer needs.
type Frame struct {
	XName     string
	YName     string
	XDim      int
	YDim      int
	State     zoom.State
	Bounds    projection.Bounds
	Screen    projection.ScreenRect
	Threshold float64
	Hotspots  []hotspot.Hotspot
	// Zoomed is the hotspot being viewed, nil in the normal state.
	Zoomed     *hotspot.Hotspot
	Points     []PlotPoint
	Hovered    int
	ExternalID string
}

// Frame snapshots the current state. While zoomed only points inside the
// active range are listed and no hotspots are.
func (s *Session) Frame() Frame {
	view := s.View()
	zoomed := s.zoom.Zoomed()
	external := s.bridge.ExternalHoverID()

	f := Frame{
		XName:      s.data.Dimensions[s.xDim],
		YName:      s.data.Dimensions[s.yDim],
		XDim:       s.xDim,
		YDim:       s.yDim,
		State:      s.zoom.State(),
		Bounds:     view.Bounds,
		Screen:     view.Screen,
		Threshold:  s.opts.Threshold,
		Hovered:    s.hovered,
		ExternalID: external,
	}
	if h, ok := s.zoom.Hotspot(); ok {
		f.Zoomed = &h
	} else {
		f.Hotspots = s.hotspots
	}

	f.Points = make([]PlotPoint, 0, s.data.Len())
	for i := 0; i < s.data.Len(); i++ {
		if zoomed && !view.InBounds(s.data, i) {
			continue
		}
		p := PlotPoint{Index: i, ID: s.data.Points[i].ID, Screen: view.Point(s.data, i)}
		switch {
		case i == s.hovered:
			p.Highlight = HighlightHover
		case external != "" && p.ID == external:
			p.Highlight = HighlightGrid
		}
		f.Points = append(f.Points, p)
	}
	return f
}

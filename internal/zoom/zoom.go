// Package zoom holds the two-state view machine: the normal full-data view
// and a zoomed view pinned to one hotspot's padded data bounds.
package zoom

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/hotspot"
	"github.com/yildizm/EmbedScope/internal/projection"
)

// DefaultPadding is the fraction of each axis span added on both sides of a
// hotspot's bounds when zooming in.
const DefaultPadding = 0.1

var (
	// ErrAlreadyZoomed is returned by Activate outside the normal state.
	ErrAlreadyZoomed = errors.New("zoom: already zoomed")
	// ErrNotZoomed is returned by Exit outside the zoomed state.
	ErrNotZoomed = errors.New("zoom: not zoomed")
)

// State is the current view state
type State int

const (
	Normal State = iota
	Zoomed
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Zoomed:
		return "zoomed"
	default:
		return "unknown"
	}
}

// Action is the outcome of routing a pointer press.
type Action int

const (
	ActionNone Action = iota
	ActionActivated
	ActionExited
)

func (a Action) String() string {
	switch a {
	case ActionActivated:
		return "activated"
	case ActionExited:
		return "exited"
	default:
		return "none"
	}
}

// Controller owns the view state. Nothing else may change it.
type Controller struct {
	state   State
	hotspot hotspot.Hotspot
	bounds  projection.Bounds
	padding float64
}

// NewController creates a controller in the normal state. A negative padding
// falls back to DefaultPadding.
func NewController(padding float64) *Controller {
	if padding < 0 {
		padding = DefaultPadding
	}
	return &Controller{state: Normal, padding: padding}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Zoomed reports whether the controller is in the zoomed state
func (c *Controller) Zoomed() bool {
	return c.state == Zoomed
}

// Hotspot returns the hotspot being viewed while zoomed.
func (c *Controller) Hotspot() (hotspot.Hotspot, bool) {
	if c.state != Zoomed {
		return hotspot.Hotspot{}, false
	}
	return c.hotspot, true
}

// Activate zooms into h, storing its padded data bounds as the active range.
func (c *Controller) Activate(h hotspot.Hotspot) error {
	if c.state != Normal {
		return ErrAlreadyZoomed
	}
	c.hotspot = h
	c.bounds = h.DataBounds.Padded(c.padding)
	c.state = Zoomed
	return nil
}

// Exit discards the zoomed range and returns to the normal state.
func (c *Controller) Exit() error {
	if c.state != Zoomed {
		return ErrNotZoomed
	}
	c.hotspot = hotspot.Hotspot{}
	c.bounds = projection.Bounds{}
	c.state = Normal
	return nil
}

// ActiveBounds returns the data range projection should use: the zoomed
// range while zoomed, otherwise the live normal range passed in.
func (c *Controller) ActiveBounds(normal projection.Bounds) projection.Bounds {
	if c.state == Zoomed {
		return c.bounds
	}
	return normal
}

// HandlePress routes a pointer press. Inside the plot in the normal state it
// zooms into the first hotspot under the pointer; outside the plot in the
// zoomed state it zooms out. Anything else is ignored.
func (c *Controller) HandlePress(p r2.Point, plot projection.ScreenRect, hotspots []hotspot.Hotspot) Action {
	if plot.Contains(p) {
		if c.state != Normal {
			return ActionNone
		}
		i, ok := hotspot.Find(hotspots, p)
		if !ok {
			return ActionNone
		}
		if err := c.Activate(hotspots[i]); err != nil {
			return ActionNone
		}
		return ActionActivated
	}

	if c.state == Zoomed {
		if err := c.Exit(); err != nil {
			return ActionNone
		}
		return ActionExited
	}
	return ActionNone
}

// Package session owns every piece of interactive state for one explorer:
// the point collection, the axis pair, the view state, the hotspot list and
// the hover result. Each event runs the same pipeline: apply the input,
// recompute derived ranges and hotspots, then resolve hover. A Session is not
// safe for concurrent use; hosts with several goroutines serialize calls.
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/hotspot"
	"github.com/yildizm/EmbedScope/internal/hover"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/selection"
	"github.com/yildizm/EmbedScope/internal/zoom"
)

var (
	ErrNoData                = errors.New("no dataset")
	ErrInvalidDimension      = errors.New("invalid dimension")
	ErrInvalidThreshold      = errors.New("invalid hotspot threshold")
	ErrInvalidMinClusterSize = errors.New("invalid minimum cluster size")
	ErrInvalidOptions        = errors.New("invalid session options")
)

// Options are the tunables fixed when a session starts, plus the initial
// threshold and cluster size.
type Options struct {
	Screen         projection.ScreenRect
	Threshold      float64
	ThresholdMin   float64
	ThresholdMax   float64 // zero leaves the threshold unbounded above
	ThresholdStep  float64
	MinClusterSize int
	HitRadius      float64
	ZoomPadding    float64
}

// DefaultOptions matches the stock 600px plot at (100, 100).
func DefaultOptions() Options {
	return Options{
		Screen:         projection.ScreenRect{Left: 100, Top: 100, Size: 600},
		Threshold:      40,
		ThresholdMin:   20,
		ThresholdMax:   80,
		ThresholdStep:  5,
		MinClusterSize: hotspot.DefaultMinClusterSize,
		HitRadius:      hover.DefaultHitRadius,
		ZoomPadding:    zoom.DefaultPadding,
	}
}

// Validate checks the options for values the pipeline cannot work with.
func (o Options) Validate() error {
	if !(o.Screen.Size > 0) {
		return fmt.Errorf("%w: plot size must be positive, got %v", ErrInvalidOptions, o.Screen.Size)
	}
	if !(o.HitRadius > 0) {
		return fmt.Errorf("%w: hit radius must be positive, got %v", ErrInvalidOptions, o.HitRadius)
	}
	if o.ZoomPadding < 0 {
		return fmt.Errorf("%w: zoom padding must not be negative, got %v", ErrInvalidOptions, o.ZoomPadding)
	}
	if o.ThresholdMin < 0 || (o.ThresholdMax > 0 && o.ThresholdMax < o.ThresholdMin) {
		return fmt.Errorf("%w: threshold bounds [%v, %v]", ErrInvalidOptions, o.ThresholdMin, o.ThresholdMax)
	}
	if o.ThresholdStep < 0 {
		return fmt.Errorf("%w: threshold step must not be negative, got %v", ErrInvalidOptions, o.ThresholdStep)
	}
	if err := o.checkThreshold(o.Threshold); err != nil {
		return err
	}
	if o.MinClusterSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinClusterSize, o.MinClusterSize)
	}
	return nil
}

func (o Options) checkThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("%w: %v must be positive", ErrInvalidThreshold, t)
	}
	if t < o.ThresholdMin || (o.ThresholdMax > 0 && t > o.ThresholdMax) {
		return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidThreshold, t, o.ThresholdMin, o.ThresholdMax)
	}
	return nil
}

// Session is the explicit context object driving one plot.
type Session struct {
	data    *dataset.Dataset
	version uint64
	xDim    int
	yDim    int
	opts    Options

	normal   projection.Bounds
	hotspots []hotspot.Hotspot
	detector *hotspot.Detector
	zoom     *zoom.Controller
	bridge   *selection.Bridge

	pointer    r2.Point
	hasPointer bool
	hovered    int

	log *logger.Logger
}

// New creates a session over data showing the first two dimensions (the
// first one twice when there is only one). grid may be nil.
func New(data *dataset.Dataset, grid selection.Grid, opts Options, log *logger.Logger) (*Session, error) {
	if data == nil {
		return nil, ErrNoData
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		data:     data,
		version:  1,
		opts:     opts,
		detector: hotspot.NewDetector(log),
		zoom:     zoom.NewController(opts.ZoomPadding),
		bridge:   selection.NewBridge(grid, log.WithComponent("selection")),
		hovered:  -1,
		log:      log,
	}
	s.xDim, s.yDim = defaultPair(data)
	s.Recompute()
	return s, nil
}

func defaultPair(data *dataset.Dataset) (int, int) {
	if data.NumDimensions() > 1 {
		return 0, 1
	}
	return 0, 0
}

// Recompute refreshes the normal data range and, outside zoom, the hotspot
// list. Every input change calls it before hover is resolved again.
func (s *Session) Recompute() {
	s.normal = projection.DataBounds(s.data, s.xDim, s.yDim)
	if s.zoom.Zoomed() {
		s.hotspots = nil
		return
	}
	s.hotspots = s.detector.Detect(s.data, s.normalView(), s.opts.Threshold, s.opts.MinClusterSize, s.version)
}

// SetData swaps in a new point collection. The axis pair is kept when still
// valid, zoom is left since its hotspot's members no longer apply, and the
// grid link forgets the previous push.
func (s *Session) SetData(data *dataset.Dataset) error {
	if data == nil {
		return ErrNoData
	}
	s.data = data
	s.version++
	if !data.ValidDimension(s.xDim) || !data.ValidDimension(s.yDim) {
		s.xDim, s.yDim = defaultPair(data)
	}
	if s.zoom.Zoomed() {
		_ = s.zoom.Exit()
	}
	s.bridge.Reset()
	s.hovered = -1

	s.log.InfoWithFields("dataset replaced", []logger.Field{
		logger.Count(data.Len()),
		logger.F("dimensions", data.NumDimensions()),
		logger.F("version", s.version),
	})

	s.Recompute()
	s.resolveHover()
	return nil
}

// SetDimensions changes the plotted pair. Invalid indices leave the current
// pair untouched. Zoom is kept.
func (s *Session) SetDimensions(x, y int) error {
	if !s.data.ValidDimension(x) {
		return fmt.Errorf("%w: x index %d", ErrInvalidDimension, x)
	}
	if !s.data.ValidDimension(y) {
		return fmt.Errorf("%w: y index %d", ErrInvalidDimension, y)
	}
	if x == s.xDim && y == s.yDim {
		return nil
	}
	s.xDim, s.yDim = x, y
	s.log.Debug("dimensions set to %s, %s", s.data.Dimensions[x], s.data.Dimensions[y])

	s.Recompute()
	s.resolveHover()
	return nil
}

// SetDimensionsByName changes the plotted pair by dimension name.
func (s *Session) SetDimensionsByName(x, y string) error {
	xi, ok := s.data.DimensionIndex(x)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDimension, x)
	}
	yi, ok := s.data.DimensionIndex(y)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDimension, y)
	}
	return s.SetDimensions(xi, yi)
}

// CycleDimension moves the x (axis 0) or y (axis 1) selection by delta,
// wrapping around the declared dimensions.
func (s *Session) CycleDimension(axis, delta int) error {
	n := s.data.NumDimensions()
	x, y := s.xDim, s.yDim
	switch axis {
	case 0:
		x = ((x+delta)%n + n) % n
	case 1:
		y = ((y+delta)%n + n) % n
	default:
		return fmt.Errorf("%w: axis %d", ErrInvalidDimension, axis)
	}
	return s.SetDimensions(x, y)
}

// SetThreshold changes the clustering distance. Values that are not
// positive or fall outside the configured bounds are rejected.
func (s *Session) SetThreshold(t float64) error {
	return s.SetClustering(t, s.opts.MinClusterSize)
}

// StepThreshold moves the threshold by steps increments of the configured
// step.
func (s *Session) StepThreshold(steps int) error {
	return s.SetThreshold(s.opts.Threshold + float64(steps)*s.opts.ThresholdStep)
}

// SetMinClusterSize changes the smallest reported hotspot.
func (s *Session) SetMinClusterSize(n int) error {
	return s.SetClustering(s.opts.Threshold, n)
}

// SetClustering changes threshold and minimum cluster size together. Both
// are checked before either is applied, so a rejected call changes nothing.
func (s *Session) SetClustering(t float64, n int) error {
	if err := s.opts.checkThreshold(t); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinClusterSize, n)
	}
	if t == s.opts.Threshold && n == s.opts.MinClusterSize {
		return nil
	}
	s.opts.Threshold = t
	s.opts.MinClusterSize = n

	s.Recompute()
	s.resolveHover()
	return nil
}

// PointerMove records a pointer sample and resolves hover against it.
func (s *Session) PointerMove(x, y float64) {
	s.pointer = r2.Point{X: x, Y: y}
	s.hasPointer = true
	s.resolveHover()
}

// PointerLeave records that the pointer left the drawing surface.
func (s *Session) PointerLeave() {
	s.hasPointer = false
	s.resolveHover()
}

// Press routes a pointer press to the zoom controller and refreshes
// derived state for whatever view results.
func (s *Session) Press(x, y float64) zoom.Action {
	s.pointer = r2.Point{X: x, Y: y}
	s.hasPointer = true

	action := s.zoom.HandlePress(s.pointer, s.opts.Screen, s.hotspots)
	switch action {
	case zoom.ActionActivated:
		h, _ := s.zoom.Hotspot()
		s.log.InfoWithFields("zoomed into hotspot", []logger.Field{
			logger.Count(h.Size()),
			logger.F("bounds", s.zoom.ActiveBounds(s.normal)),
		})
		s.Recompute()
	case zoom.ActionExited:
		s.log.Info("zoomed out")
		s.Recompute()
	}

	s.resolveHover()
	return action
}

// ExitZoom leaves the zoomed view if active.
func (s *Session) ExitZoom() error {
	if err := s.zoom.Exit(); err != nil {
		return err
	}
	s.Recompute()
	s.resolveHover()
	return nil
}

func (s *Session) resolveHover() {
	idx, ok := -1, false
	if s.hasPointer {
		idx, ok = hover.Resolve(s.pointer, s.data, s.View(), s.zoom.Zoomed(), s.opts.HitRadius)
	}
	if !ok {
		s.hovered = -1
		s.bridge.Clear()
		return
	}
	s.hovered = idx
	s.bridge.Push(idx, s.data.Points[idx].ID)
}

func (s *Session) normalView() projection.View {
	return projection.View{XDim: s.xDim, YDim: s.yDim, Bounds: s.normal, Screen: s.opts.Screen}
}

// View returns the projection for the active data range.
func (s *Session) View() projection.View {
	v := s.normalView()
	v.Bounds = s.zoom.ActiveBounds(s.normal)
	return v
}

// Data returns the current point collection.
func (s *Session) Data() *dataset.Dataset { return s.data }

// Version increases every time the point collection is replaced.
func (s *Session) Version() uint64 { return s.version }

// Dimensions returns the plotted pair.
func (s *Session) Dimensions() (int, int) { return s.xDim, s.yDim }

// Threshold returns the current clustering distance.
func (s *Session) Threshold() float64 { return s.opts.Threshold }

// MinClusterSize returns the smallest reported hotspot.
func (s *Session) MinClusterSize() int { return s.opts.MinClusterSize }

// Options returns the live options, including the current threshold.
func (s *Session) Options() Options { return s.opts }

// NormalBounds returns the full data range of the plotted pair.
func (s *Session) NormalBounds() projection.Bounds { return s.normal }

// State returns the view state.
func (s *Session) State() zoom.State { return s.zoom.State() }

// ZoomedHotspot returns the hotspot being viewed, if zoomed.
func (s *Session) ZoomedHotspot() (hotspot.Hotspot, bool) { return s.zoom.Hotspot() }

// Hotspots returns the current hotspot list. It is empty while zoomed.
func (s *Session) Hotspots() []hotspot.Hotspot { return s.hotspots }

// Hovered returns the point under the pointer.
func (s *Session) Hovered() (int, bool) {
	return s.hovered, s.hovered >= 0
}

// HoveredPoint returns the record under the pointer.
func (s *Session) HoveredPoint() (dataset.Point, bool) {
	if s.hovered < 0 {
		return dataset.Point{}, false
	}
	return s.data.Points[s.hovered], true
}

// ExternalHoverID returns the row id hovered in the grid, or "".
func (s *Session) ExternalHoverID() string { return s.bridge.ExternalHoverID() }

// DetectorRuns reports how often clustering actually ran.
func (s *Session) DetectorRuns() int { return s.detector.Runs() }

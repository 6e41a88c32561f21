package formatter

import (
	"fmt"
	"sort"
	"time"

	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/session"
)

// maxSampleTitles caps the titles listed per hotspot
const maxSampleTitles = 3

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Report is a snapshot of one clustering pass, independent of output format.
type Report struct {
	Source         string                `json:"source,omitempty"`
	GeneratedAt    time.Time             `json:"generated_at"`
	Points         int                   `json:"points"`
	Dimensions     []string              `json:"dimensions"`
	XDim           string                `json:"x_dim"`
	YDim           string                `json:"y_dim"`
	Threshold      float64               `json:"threshold"`
	MinClusterSize int                   `json:"min_cluster_size"`
	Bounds         projection.Bounds     `json:"bounds"`
	Screen         projection.ScreenRect `json:"screen"`
	Clustered      int                   `json:"clustered"`
	Hotspots       []HotspotSummary      `json:"hotspots"`

	// Plot holds every point's screen position for image output
	Plot      []session.PlotPoint `json:"-"`
	// PointSize is the drawn point diameter in image output, 0 for default
	PointSize float64             `json:"-"`
}

// HotspotSummary describes one hotspot in detection order.
type HotspotSummary struct {
	Rank         int               `json:"rank"`
	Size         int               `json:"size"`
	Share        float64           `json:"share"`
	CenterX      float64           `json:"center_x"`
	CenterY      float64           `json:"center_y"`
	Radius       float64           `json:"radius"`
	DataBounds   projection.Bounds `json:"data_bounds"`
	SeedID       string            `json:"seed_id"`
	MemberIDs    []string          `json:"member_ids"`
	SampleTitles []string          `json:"sample_titles,omitempty"`
}

// NewReport summarizes the session's current normal-state view.
func NewReport(s *session.Session, source string) *Report {
	frame := s.Frame()
	data := s.Data()

	r := &Report{
		Source:         source,
		GeneratedAt:    time.Now(),
		Points:         data.Len(),
		Dimensions:     data.Dimensions,
		XDim:           frame.XName,
		YDim:           frame.YName,
		Threshold:      s.Threshold(),
		MinClusterSize: s.MinClusterSize(),
		Bounds:         frame.Bounds,
		Screen:         frame.Screen,
		Hotspots:       make([]HotspotSummary, 0, len(frame.Hotspots)),
		Plot:           frame.Points,
	}

	for i, h := range frame.Hotspots {
		summary := HotspotSummary{
			Rank:       i + 1,
			Size:       h.Size(),
			CenterX:    h.Center.X,
			CenterY:    h.Center.Y,
			Radius:     h.Radius,
			DataBounds: h.DataBounds,
			MemberIDs:  make([]string, 0, h.Size()),
		}
		if r.Points > 0 {
			summary.Share = float64(h.Size()) / float64(r.Points)
		}
		for _, m := range h.Members {
			p := data.Points[m]
			summary.MemberIDs = append(summary.MemberIDs, p.ID)
			if len(summary.SampleTitles) < maxSampleTitles && p.Title != "" {
				summary.SampleTitles = append(summary.SampleTitles, p.Title)
			}
		}
		summary.SeedID = summary.MemberIDs[0]

		r.Clustered += h.Size()
		r.Hotspots = append(r.Hotspots, summary)
	}

	return r
}

// ClusteredShare returns the fraction of points inside any hotspot.
func (r *Report) ClusteredShare() float64 {
	if r.Points == 0 {
		return 0
	}
	return float64(r.Clustered) / float64(r.Points)
}

// BySize returns the hotspots largest first; ties keep detection order.
func (r *Report) BySize() []HotspotSummary {
	sorted := make([]HotspotSummary, len(r.Hotspots))
	copy(sorted, r.Hotspots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})
	return sorted
}

// New returns the formatter for format.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "csv":
		return NewCSV(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "svg":
		return NewSVG(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

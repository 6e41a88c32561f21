package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/EmbedScope/internal/formatter"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/session"
	"github.com/yildizm/EmbedScope/internal/zoom"
)

// Content types for non-JSON report formats
var reportContentTypes = map[string]string{
	"text":     "text/plain; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"md":       "text/markdown; charset=utf-8",
	"svg":      "image/svg+xml",
}

// ViewState is the read model of the session
type ViewState struct {
	XDim           string            `json:"x_dim"`
	YDim           string            `json:"y_dim"`
	State          string            `json:"state"`
	Bounds         projection.Bounds `json:"bounds"`
	Threshold      float64           `json:"threshold"`
	MinClusterSize int               `json:"min_cluster_size"`
	Hotspots       int               `json:"hotspots"`
	Zoomed         *ZoomedHotspot    `json:"zoomed,omitempty"`
	Hovered        *HoveredPoint     `json:"hovered,omitempty"`
	GridSelected   string            `json:"grid_selected,omitempty"`
	GridHover      string            `json:"grid_hover,omitempty"`
}

// ZoomedHotspot describes the hotspot being viewed
type ZoomedHotspot struct {
	Size       int               `json:"size"`
	CenterX    float64           `json:"center_x"`
	CenterY    float64           `json:"center_y"`
	DataBounds projection.Bounds `json:"data_bounds"`
}

// HoveredPoint describes the point under the pointer
type HoveredPoint struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

type dimensionsRequest struct {
	X string `json:"x" binding:"required"`
	Y string `json:"y" binding:"required"`
}

type thresholdRequest struct {
	Threshold      *float64 `json:"threshold"`
	MinClusterSize *int     `json:"min_cluster_size"`
}

type pointerRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Action string  `json:"action"` // move (default), press or leave
}

type gridHoverRequest struct {
	// ID is the hovered row; empty means the pointer left the grid
	ID string `json:"id"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "EmbedScope API is running",
	})
}

func (s *Server) dimensions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.session.Data()
	x, y := s.session.Dimensions()
	success(c, gin.H{
		"dimensions": data.Dimensions,
		"x":          data.Dimensions[x],
		"y":          data.Dimensions[y],
	})
}

// hotspots reports the current clustering. ?format= picks a formatter;
// json answers inside the usual envelope.
func (s *Server) hotspots(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format == "" {
		format = "text"
	}
	f, err := formatter.New(format, false)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	report := formatter.NewReport(s.session, s.source)
	s.mu.Unlock()

	if format == "json" {
		success(c, report)
		return
	}

	out, err := f.Format(report)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "failed to format report")
		return
	}
	c.Data(http.StatusOK, reportContentTypes[format], out)
}

func (s *Server) view(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	success(c, s.viewState())
}

func (s *Server) setDimensions(c *gin.Context) {
	var req dimensionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "x and y dimension names are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.SetDimensionsByName(req.X, req.Y); err != nil {
		if errors.Is(err, session.ErrInvalidDimension) {
			badRequest(c, err.Error())
			return
		}
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, s.viewState())
}

func (s *Server) setThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Threshold == nil && req.MinClusterSize == nil) {
		badRequest(c, "threshold or min_cluster_size is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	threshold, minSize := s.session.Threshold(), s.session.MinClusterSize()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if req.MinClusterSize != nil {
		minSize = *req.MinClusterSize
	}
	if err := s.session.SetClustering(threshold, minSize); err != nil {
		badRequest(c, err.Error())
		return
	}
	success(c, s.viewState())
}

func (s *Server) pointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid pointer event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	action := zoom.ActionNone
	switch req.Action {
	case "", "move":
		s.session.PointerMove(req.X, req.Y)
	case "press":
		action = s.session.Press(req.X, req.Y)
	case "leave":
		s.session.PointerLeave()
	default:
		badRequest(c, "action must be move, press or leave")
		return
	}

	success(c, gin.H{
		"zoom": action.String(),
		"view": s.viewState(),
	})
}

func (s *Server) gridHover(c *gin.Context) {
	var req gridHoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid grid hover event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == "" {
		s.grid.LeaveRow()
	} else if !s.grid.HoverID(req.ID) {
		notFound(c, "no row with id "+req.ID)
		return
	}
	success(c, s.viewState())
}

// viewState snapshots the session. Callers hold the lock.
func (s *Server) viewState() ViewState {
	f := s.session.Frame()
	v := ViewState{
		XDim:           f.XName,
		YDim:           f.YName,
		State:          f.State.String(),
		Bounds:         f.Bounds,
		Threshold:      f.Threshold,
		MinClusterSize: s.session.MinClusterSize(),
		Hotspots:       len(f.Hotspots),
		GridHover:      f.ExternalID,
	}
	if f.Zoomed != nil {
		v.Zoomed = &ZoomedHotspot{
			Size:       f.Zoomed.Size(),
			CenterX:    f.Zoomed.Center.X,
			CenterY:    f.Zoomed.Center.Y,
			DataBounds: f.Zoomed.DataBounds,
		}
	}
	if i, ok := s.session.Hovered(); ok {
		p := s.session.Data().Points[i]
		v.Hovered = &HoveredPoint{Index: i, ID: p.ID, Title: p.Title, URL: p.URL}
	}
	if id, ok := s.grid.Selected(); ok {
		v.GridSelected = id
	}
	return v
}

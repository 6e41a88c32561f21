package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testData puts ten points around screen (400, 400) between two outliers
func testData(t *testing.T) *dataset.Dataset {
	t.Helper()
	points := []dataset.Point{{ID: "p0", Title: "low", Dims: []float64{0, 0, 0}}}
	for k := 0; k < 10; k++ {
		v := 0.001 * float64(k)
		points = append(points, dataset.Point{
			ID:    fmt.Sprintf("p%d", k+1),
			Title: fmt.Sprintf("group %d", k),
			URL:   fmt.Sprintf("https://example.com/%d", k),
			Dims:  []float64{0.5 + v, 0.5 - v, 0.5},
		})
	}
	points = append(points, dataset.Point{ID: "p11", Title: "high", Dims: []float64{1, 1, 1}})

	d, err := dataset.New([]string{"a", "b", "c"}, points)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(testData(t), session.DefaultOptions(), "points.csv", logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, srv *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid JSON from %s %s: %v", method, path, err)
		}
	}
	return w, env
}

func decodeView(t *testing.T, raw json.RawMessage) ViewState {
	t.Helper()
	var v ViewState
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("invalid view: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w, _ := do(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestDimensions(t *testing.T) {
	srv := newTestServer(t)
	w, env := do(t, srv, http.MethodGet, "/api/v1/dimensions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var got struct {
		Dimensions []string `json:"dimensions"`
		X          string   `json:"x"`
		Y          string   `json:"y"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Dimensions) != 3 || got.X != "a" || got.Y != "b" {
		t.Errorf("dimensions = %+v", got)
	}
}

func TestHotspots(t *testing.T) {
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodGet, "/api/v1/hotspots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report struct {
		Hotspots []struct {
			Size   int    `json:"size"`
			SeedID string `json:"seed_id"`
		} `json:"hotspots"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Hotspots) != 1 || report.Hotspots[0].Size != 10 || report.Hotspots[0].SeedID != "p1" {
		t.Errorf("hotspots = %+v", report.Hotspots)
	}

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"csv", "text/csv", "member_ids"},
		{"markdown", "text/markdown", "# Hotspot Report"},
		{"svg", "image/svg+xml", "<svg"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, _ := do(t, srv, http.MethodGet, "/api/v1/hotspots?format="+tt.format, nil)
			if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), tt.contentType) {
				t.Fatalf("status %d content type %q", w.Code, w.Header().Get("Content-Type"))
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}

	if w, _ := do(t, srv, http.MethodGet, "/api/v1/hotspots?format=xml", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", w.Code)
	}
}

func TestSetDimensions(t *testing.T) {
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodPut, "/api/v1/view/dimensions", map[string]string{"x": "c", "y": "a"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if v := decodeView(t, env.Data); v.XDim != "c" || v.YDim != "a" {
		t.Errorf("view dims = %s, %s", v.XDim, v.YDim)
	}

	w, _ = do(t, srv, http.MethodPut, "/api/v1/view/dimensions", map[string]string{"x": "nope", "y": "a"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown dimension status = %d", w.Code)
	}
	w, _ = do(t, srv, http.MethodPut, "/api/v1/view/dimensions", map[string]string{"x": "a"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing y status = %d", w.Code)
	}

	// the rejected calls left the pair alone
	_, env = do(t, srv, http.MethodGet, "/api/v1/view", nil)
	if v := decodeView(t, env.Data); v.XDim != "c" || v.YDim != "a" {
		t.Errorf("view dims = %s, %s after rejected calls", v.XDim, v.YDim)
	}
}

func TestSetThreshold(t *testing.T) {
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodPut, "/api/v1/view/threshold", map[string]interface{}{"threshold": 60, "min_cluster_size": 12})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	v := decodeView(t, env.Data)
	if v.Threshold != 60 || v.MinClusterSize != 12 || v.Hotspots != 0 {
		t.Errorf("view = %+v", v)
	}

	tests := []struct {
		name string
		body interface{}
	}{
		{"out of range", map[string]interface{}{"threshold": 500}},
		{"negative", map[string]interface{}{"threshold": -5}},
		{"zero cluster size", map[string]interface{}{"min_cluster_size": 0}},
		{"empty", map[string]interface{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w, _ := do(t, srv, http.MethodPut, "/api/v1/view/threshold", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d", w.Code)
			}
		})
	}
}

func TestSetThresholdRejectsWholeRequest(t *testing.T) {
	srv := newTestServer(t)

	bodies := []map[string]interface{}{
		{"threshold": 60, "min_cluster_size": 0},
		{"threshold": 500, "min_cluster_size": 3},
	}
	for _, body := range bodies {
		if w, _ := do(t, srv, http.MethodPut, "/api/v1/view/threshold", body); w.Code != http.StatusBadRequest {
			t.Errorf("%v: status = %d, want 400", body, w.Code)
		}
	}

	_, env := do(t, srv, http.MethodGet, "/api/v1/view", nil)
	v := decodeView(t, env.Data)
	if v.Threshold != 40 || v.MinClusterSize != 10 || v.Hotspots != 1 {
		t.Errorf("rejected requests changed the view: %+v", v)
	}
}

func TestPointerZoomAndHover(t *testing.T) {
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"x": 402, "y": 402})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res struct {
		Zoom string    `json:"zoom"`
		View ViewState `json:"view"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Zoom != "none" || res.View.Hovered == nil {
		t.Fatalf("move result = %+v", res)
	}
	if res.View.GridSelected != res.View.Hovered.ID {
		t.Errorf("grid selected %q, hovered %q", res.View.GridSelected, res.View.Hovered.ID)
	}

	_, env = do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"x": 400, "y": 400, "action": "press"})
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Zoom != "activated" || res.View.State != "zoomed" || res.View.Zoomed == nil || res.View.Zoomed.Size != 10 {
		t.Fatalf("press result = %+v", res)
	}
	if res.View.Hotspots != 0 {
		t.Error("no hotspots are reported while zoomed")
	}

	_, env = do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"x": 10, "y": 10, "action": "press"})
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Zoom != "exited" || res.View.State != "normal" {
		t.Errorf("exit result = %+v", res)
	}

	_, env = do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"action": "leave"})
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.View.Hovered != nil || res.View.GridSelected != "" {
		t.Errorf("leave result = %+v", res)
	}

	if w, _ := do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"action": "drag"}); w.Code != http.StatusBadRequest {
		t.Errorf("unknown action status = %d", w.Code)
	}
}

func TestGridHover(t *testing.T) {
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodPost, "/api/v1/view/grid-hover", map[string]string{"id": "p11"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if v := decodeView(t, env.Data); v.GridHover != "p11" {
		t.Errorf("grid hover = %q, want p11", v.GridHover)
	}

	if w, _ := do(t, srv, http.MethodPost, "/api/v1/view/grid-hover", map[string]string{"id": "missing"}); w.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d", w.Code)
	}

	_, env = do(t, srv, http.MethodPost, "/api/v1/view/grid-hover", map[string]string{"id": ""})
	if v := decodeView(t, env.Data); v.GridHover != "" {
		t.Errorf("grid hover = %q after leave", v.GridHover)
	}
}

func TestSetData(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/v1/view/pointer", map[string]interface{}{"x": 400, "y": 400, "action": "press"})

	data, err := dataset.New([]string{"x"}, []dataset.Point{{ID: "only", Dims: []float64{1}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := srv.SetData(data); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}

	_, env := do(t, srv, http.MethodGet, "/api/v1/view", nil)
	v := decodeView(t, env.Data)
	if v.XDim != "x" || v.YDim != "x" || v.State != "normal" {
		t.Errorf("view after reload = %+v", v)
	}
	if err := srv.SetData(nil); err == nil {
		t.Error("expected error for nil data")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	w, _ := do(t, srv, http.MethodOptions, "/api/v1/view", nil)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight = %d %v", w.Code, w.Header())
	}
}

func TestSetAxes(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.SetAxes("", "c"); err != nil {
		t.Fatalf("SetAxes() error = %v", err)
	}
	_, env := do(t, srv, http.MethodGet, "/api/v1/view", nil)
	if v := decodeView(t, env.Data); v.XDim != "a" || v.YDim != "c" {
		t.Errorf("view dims = %s, %s", v.XDim, v.YDim)
	}
	if err := srv.SetAxes("zz", ""); err == nil {
		t.Error("expected error for unknown dimension")
	}
}

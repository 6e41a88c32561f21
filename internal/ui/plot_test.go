package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/ui/components"
)

// span returns the runes of row in [from, to)
func span(c *components.Canvas, row, from, to int) string {
	return string([]rune(c.Line(row))[from:to])
}

func TestCellGrid(t *testing.T) {
	g := cellGrid{width: 8, height: 16}

	if col, row := g.cell(r2.Point{X: 404, Y: 408}); col != 50 || row != 25 {
		t.Errorf("cell() = (%d, %d), want (50, 25)", col, row)
	}
	if p := g.screen(50, 25); p.X != 404 || p.Y != 408 {
		t.Errorf("screen() = %v, want (404, 408)", p)
	}
	if cols, rows := g.canvasSize(projection.ScreenRect{Left: 100, Top: 100, Size: 600}); cols != 100 || rows != 50 {
		t.Errorf("canvasSize() = %dx%d, want 100x50", cols, rows)
	}
	// a point on a cell corner sits half a diagonal from the center
	if r := g.hitRadius(); r <= math.Hypot(4, 8) {
		t.Errorf("hitRadius() = %v, must exceed half the cell diagonal", r)
	}
}

func TestDrawFrame(t *testing.T) {
	m := newTestModel(t)
	c := components.NewCanvas(m.canvas.Cols, m.canvas.Rows)

	drawFrame(c, m.cells, m.Session().Frame(), "")
	text := c.String()

	for _, want := range []string{"a vs b", "0.00", "0.20", "1.00", "Hotspot Size: 40px", "10", "│"} {
		if !strings.Contains(text, want) {
			t.Errorf("canvas missing %q", want)
		}
	}
	if strings.Contains(text, "ZOOMED") || strings.Contains(text, zoomedHint) {
		t.Error("normal frame should not carry zoom labels")
	}

	// the hotspot count sits on the seed's cell
	if got := span(c, 25, 49, 51); got != "10" {
		t.Errorf("count cells = %q, want 10", got)
	}
	if got := c.Get(50, 25).Kind; got != components.KindHotspotCount {
		t.Errorf("count kind = %v", got)
	}
}

func TestDrawFrameZoomedHidesHotspots(t *testing.T) {
	m := newTestModel(t)
	m.Update(click(50, 25+canvasTop))

	c := components.NewCanvas(m.canvas.Cols, m.canvas.Rows)
	drawFrame(c, m.cells, m.Session().Frame(), "")

	for col := 0; col < c.Cols; col++ {
		for row := 0; row < c.Rows; row++ {
			if k := c.Get(col, row).Kind; k == components.KindHotspot || k == components.KindHotspotCount {
				t.Fatalf("hotspot drawn at (%d, %d) while zoomed", col, row)
			}
		}
	}
	if !strings.Contains(c.String(), "(ZOOMED)") {
		t.Error("zoomed title missing")
	}
}

func TestDrawFrameHighlights(t *testing.T) {
	m := newTestModel(t)
	m.Update(motion(12, 43+canvasTop)) // p0 at screen (100, 700)

	p, ok := m.Session().HoveredPoint()
	if !ok || p.ID != "p0" {
		t.Fatalf("HoveredPoint() = %v, %v, want p0", p.ID, ok)
	}

	c := components.NewCanvas(m.canvas.Cols, m.canvas.Rows)
	drawFrame(c, m.cells, m.Session().Frame(), "tip")

	if got := c.Get(12, 43); got.Kind != components.KindPointHover || got.Rune != pointRune {
		t.Errorf("hovered cell = %+v", got)
	}
	if got := span(c, 42, 14, 17); got != "tip" {
		t.Errorf("tooltip = %q, want tip", got)
	}
}

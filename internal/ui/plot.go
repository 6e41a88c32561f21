package ui

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/session"
	"github.com/yildizm/EmbedScope/internal/ui/components"
)

const (
	axisTicks  = 6
	pointRune  = '•'
	ringRune   = '·'
	zoomedHint = "Click outside the plot area to zoom out"
)

// cellGrid maps between screen units and terminal cells. Each cell stands
// for the screen point at its center.
type cellGrid struct {
	width  float64
	height float64
}

// cell returns the cell holding screen point p
func (g cellGrid) cell(p r2.Point) (int, int) {
	return int(math.Floor(p.X / g.width)), int(math.Floor(p.Y / g.height))
}

// screen returns the screen point at the center of cell (col, row)
func (g cellGrid) screen(col, row int) r2.Point {
	return r2.Point{
		X: float64(col)*g.width + g.width/2,
		Y: float64(row)*g.height + g.height/2,
	}
}

// hitRadius reaches every point drawn in a cell from the cell's center.
// Hover matches strictly inside the radius, hence the extra unit.
func (g cellGrid) hitRadius() float64 {
	return math.Hypot(g.width, g.height)/2 + 1
}

// canvasSize returns the cells needed to show the plot with its margins
func (g cellGrid) canvasSize(s projection.ScreenRect) (int, int) {
	cols := int(math.Ceil((2*s.Left + s.Size) / g.width))
	rows := int(math.Ceil((2*s.Top + s.Size) / g.height))
	return cols, rows
}

// drawFrame renders one frame onto a cleared canvas. tooltip labels the
// plot-hovered point.
func drawFrame(c *components.Canvas, g cellGrid, f session.Frame, tooltip string) {
	c.Clear()

	drawAxes(c, g, f)
	drawTitle(c, g, f)

	for _, h := range f.Hotspots {
		drawRing(c, g, h.Center, h.Radius)
	}

	var highlighted []session.PlotPoint
	for _, p := range f.Points {
		if p.Highlight != session.HighlightNone {
			highlighted = append(highlighted, p)
			continue
		}
		col, row := g.cell(p.Screen)
		c.Set(col, row, pointRune, components.KindPoint)
	}

	for _, h := range f.Hotspots {
		col, row := g.cell(h.Center)
		c.TextCentered(col, row, fmt.Sprintf("%d", h.Size()), components.KindHotspotCount)
	}

	// highlighted points go last so nothing hides them
	for _, p := range highlighted {
		col, row := g.cell(p.Screen)
		kind := components.KindPointGrid
		if p.Highlight == session.HighlightHover {
			kind = components.KindPointHover
		}
		c.Set(col, row, pointRune, kind)
		if p.Highlight == session.HighlightHover && tooltip != "" {
			drawTooltip(c, col, row, tooltip)
		}
	}

	if f.Zoomed != nil {
		c.TextCentered(c.Cols/2, c.Rows-2, zoomedHint, components.KindHint)
	}
	c.TextCentered(c.Cols/2, c.Rows-1, fmt.Sprintf("Hotspot Size: %.0fpx", f.Threshold), components.KindLabel)
}

func drawTitle(c *components.Canvas, g cellGrid, f session.Frame) {
	title := fmt.Sprintf("%s vs %s", f.XName, f.YName)
	if f.Zoomed != nil {
		title += " (ZOOMED)"
	}
	_, row := g.cell(r2.Point{Y: f.Screen.Top / 2})
	c.TextCentered(c.Cols/2, row, title, components.KindTitle)
}

// drawAxes draws the bottom and left axes with labelled ticks
func drawAxes(c *components.Canvas, g cellGrid, f session.Frame) {
	s := f.Screen
	left, top := g.cell(r2.Point{X: s.Left, Y: s.Top})
	right, bottom := g.cell(r2.Point{X: s.Left + s.Size, Y: s.Top + s.Size})

	for col := left; col <= right; col++ {
		c.Set(col, bottom, '─', components.KindAxis)
	}
	for row := top; row <= bottom; row++ {
		c.Set(left, row, '│', components.KindAxis)
	}
	c.Set(left, bottom, '└', components.KindAxis)

	for _, v := range f.Bounds.X.Ticks(axisTicks) {
		col, _ := g.cell(projection.Project(v, f.Bounds.Y.Min, f.Bounds, s))
		c.Set(col, bottom, '┬', components.KindAxis)
		c.TextCentered(col, bottom+1, fmt.Sprintf("%.2f", v), components.KindLabel)
	}
	for _, v := range f.Bounds.Y.Ticks(axisTicks) {
		_, row := g.cell(projection.Project(f.Bounds.X.Min, v, f.Bounds, s))
		c.Set(left, row, '┤', components.KindAxis)
		c.TextRight(left-1, row, fmt.Sprintf("%.2f", v), components.KindLabel)
	}

	c.TextCentered((left+right)/2, bottom+2, f.XName, components.KindLabel)
	c.Text(left, top-1, f.YName, components.KindLabel)
}

// drawRing outlines a circle of radius r around center
func drawRing(c *components.Canvas, g cellGrid, center r2.Point, r float64) {
	// enough samples to touch every cell on the circumference
	steps := max(int(2*math.Pi*r/math.Min(g.width, g.height))*2, 16)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := r2.Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
		col, row := g.cell(p)
		c.Set(col, row, ringRune, components.KindHotspot)
	}
}

// drawTooltip places text above and right of the point, kept on canvas
func drawTooltip(c *components.Canvas, col, row int, text string) {
	text = components.Fit(text, min(len([]rune(text)), c.Cols))
	width := len([]rune(text))
	x := col + 2
	if x+width > c.Cols {
		x = max(c.Cols-width, 0)
	}
	y := row - 1
	if y < 0 {
		y = row + 1
	}
	c.Text(x, y, text, components.KindTooltip)
}

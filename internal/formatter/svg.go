package formatter

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/yildizm/EmbedScope/internal/projection"
	"github.com/yildizm/EmbedScope/internal/session"
)

const (
	axisTicks   = 6
	pointRadius = 3
	tickLength  = 5
)

// Point colors by highlight source
var pointFill = map[session.Highlight]string{
	session.HighlightNone:  "steelblue",
	session.HighlightHover: "orange",
	session.HighlightGrid:  "green",
}

// svgFormatter renders the current view as a standalone SVG image
type svgFormatter struct{}

// NewSVG creates a new SVG formatter
func NewSVG() Formatter {
	return &svgFormatter{}
}

func (f *svgFormatter) Format(report *Report) ([]byte, error) {
	screen := report.Screen
	if !(screen.Size > 0) {
		return nil, fmt.Errorf("cannot render a plot of size %v", screen.Size)
	}

	width := px(2*screen.Left + screen.Size)
	height := px(2*screen.Top + screen.Size)

	var b bytes.Buffer
	canvas := svg.New(&b)
	canvas.Start(width, height, `font-family="Helvetica,Arial,sans-serif" font-size="12px"`)
	canvas.Title(fmt.Sprintf("%s vs %s", report.XDim, report.YDim))
	canvas.Rect(0, 0, width, height, "fill:white")

	f.renderAxes(canvas, report)
	f.renderHotspots(canvas, report)
	f.renderPoints(canvas, report)

	canvas.Text(width/2, px(screen.Top/2), fmt.Sprintf("%s vs %s", report.XDim, report.YDim),
		`text-anchor="middle" font-size="16px"`)
	canvas.Text(width/2, height-px(screen.Top/4), fmt.Sprintf("Hotspot Size: %.0fpx", report.Threshold),
		`text-anchor="middle" fill="#666"`)
	canvas.End()

	return b.Bytes(), nil
}

// renderAxes draws both axes with evenly spaced labelled ticks
func (f *svgFormatter) renderAxes(canvas *svg.SVG, report *Report) {
	s := report.Screen
	left, top := px(s.Left), px(s.Top)
	right, bottom := px(s.Left+s.Size), px(s.Top+s.Size)

	canvas.Group(`stroke="#888" stroke-width="1"`)
	canvas.Line(left, bottom, right, bottom)
	canvas.Line(left, top, left, bottom)
	canvas.Gend()

	for _, v := range report.Bounds.X.Ticks(axisTicks) {
		x := px(projection.Project(v, report.Bounds.Y.Min, report.Bounds, s).X)
		canvas.Line(x, bottom, x, bottom+tickLength, "stroke:#888")
		canvas.Text(x, bottom+tickLength, fmt.Sprintf("%.2f", v), `text-anchor="middle" dy="1em" fill="#666"`)
	}
	for _, v := range report.Bounds.Y.Ticks(axisTicks) {
		y := px(projection.Project(report.Bounds.X.Min, v, report.Bounds, s).Y)
		canvas.Line(left-tickLength, y, left, y, "stroke:#888")
		canvas.Text(left-tickLength-2, y, fmt.Sprintf("%.2f", v), `text-anchor="end" dy=".3em" fill="#666"`)
	}

	canvas.Text((left+right)/2, bottom+40, report.XDim, `text-anchor="middle"`)
	canvas.Text(left-50, (top+bottom)/2, report.YDim, `text-anchor="middle"`)
}

// renderHotspots draws each hotspot ring with its member count
func (f *svgFormatter) renderHotspots(canvas *svg.SVG, report *Report) {
	for _, h := range report.Hotspots {
		x, y := px(h.CenterX), px(h.CenterY)
		canvas.Circle(x, y, px(h.Radius), "fill:rgb(255,0,0);fill-opacity:0.2;stroke:red")
		canvas.Text(x, y, fmt.Sprintf("%d", h.Size), `text-anchor="middle" dy=".3em" fill="black"`)
	}
}

// renderPoints draws every point inside the plot
func (f *svgFormatter) renderPoints(canvas *svg.SVG, report *Report) {
	radius := pointRadius
	if report.PointSize > 0 {
		radius = max(px(report.PointSize/2), 1)
	}
	for _, p := range report.Plot {
		canvas.Circle(px(p.Screen.X), px(p.Screen.Y), radius, "fill:"+pointFill[p.Highlight])
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

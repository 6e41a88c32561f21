package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind tags what a canvas cell shows so it can be styled on render
type Kind int

const (
	KindEmpty Kind = iota
	KindAxis
	KindLabel
	KindTitle
	KindPoint
	KindPointHover
	KindPointGrid
	KindHotspot
	KindHotspotCount
	KindTooltip
	KindHint
)

// Cell is one terminal character of the canvas
type Cell struct {
	Rune rune
	Kind Kind
}

// Canvas is a fixed grid of character cells
type Canvas struct {
	Cols  int
	Rows  int
	cells [][]Cell
}

// NewCanvas creates a blank canvas
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: max(cols, 0), Rows: max(rows, 0)}
	c.cells = make([][]Cell, c.Rows)
	for r := range c.cells {
		c.cells[r] = make([]Cell, c.Cols)
	}
	c.Clear()
	return c
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for r := range c.cells {
		for col := range c.cells[r] {
			c.cells[r][col] = Cell{Rune: ' ', Kind: KindEmpty}
		}
	}
}

// Contains reports whether (col, row) is on the canvas
func (c *Canvas) Contains(col, row int) bool {
	return col >= 0 && col < c.Cols && row >= 0 && row < c.Rows
}

// Set writes one cell. Off-canvas writes are dropped.
func (c *Canvas) Set(col, row int, r rune, kind Kind) {
	if !c.Contains(col, row) {
		return
	}
	c.cells[row][col] = Cell{Rune: r, Kind: kind}
}

// Get returns the cell at (col, row), blank when off-canvas
func (c *Canvas) Get(col, row int) Cell {
	if !c.Contains(col, row) {
		return Cell{Rune: ' '}
	}
	return c.cells[row][col]
}

// Text writes s starting at (col, row), clipped to the canvas
func (c *Canvas) Text(col, row int, s string, kind Kind) {
	for _, r := range s {
		c.Set(col, row, r, kind)
		col++
	}
}

// TextCentered writes s centered on col
func (c *Canvas) TextCentered(col, row int, s string, kind Kind) {
	c.Text(col-len([]rune(s))/2, row, s, kind)
}

// TextRight writes s so that it ends on col
func (c *Canvas) TextRight(col, row int, s string, kind Kind) {
	c.Text(col-len([]rune(s))+1, row, s, kind)
}

// Line returns one row as plain text
func (c *Canvas) Line(row int) string {
	if row < 0 || row >= c.Rows {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.cells[row] {
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

// String returns the canvas as plain text, one line per row
func (c *Canvas) String() string {
	lines := make([]string, c.Rows)
	for r := range lines {
		lines[r] = c.Line(r)
	}
	return strings.Join(lines, "\n")
}

// Render styles runs of same-kind cells. Kinds without a style are written
// plain.
func (c *Canvas) Render(styles map[Kind]lipgloss.Style) string {
	lines := make([]string, c.Rows)
	for r, row := range c.cells {
		var b strings.Builder
		start := 0
		for col := 1; col <= len(row); col++ {
			if col < len(row) && row[col].Kind == row[start].Kind {
				continue
			}
			run := make([]rune, 0, col-start)
			for _, cell := range row[start:col] {
				run = append(run, cell.Rune)
			}
			if style, ok := styles[row[start].Kind]; ok {
				b.WriteString(style.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = col
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

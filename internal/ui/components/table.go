package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/EmbedScope/internal/selection"
)

// Lines above the first data row: title, header, separator
const tableHeaderLines = 3

// Column describes one table column
type Column struct {
	Title string
	Width int
}

// Table is the point grid. It satisfies selection.Grid through the embedded
// MemoryGrid and adds rendering plus a keyboard hover cursor.
type Table struct {
	*selection.MemoryGrid

	Title   string
	Columns []Column
	Width   int
	Height  int
	cells   [][]string
}

// NewTable creates an empty table
func NewTable(title string, columns []Column, width, height int) *Table {
	return &Table{
		MemoryGrid: selection.NewMemoryGrid(nil),
		Title:      title,
		Columns:    columns,
		Width:      width,
		Height:     height,
	}
}

// SetRows replaces the rows. ids and cells are parallel.
func (t *Table) SetRows(ids []string, cells [][]string) {
	t.MemoryGrid.SetRows(ids)
	t.cells = cells
}

// VisibleRows returns how many data rows fit
func (t *Table) VisibleRows() int {
	return max(t.Height-tableHeaderLines-1, 1)
}

// Top returns the first rendered row
func (t *Table) Top() int {
	top := t.TopRow()
	if limit := t.Len() - t.VisibleRows(); top > limit {
		top = limit
	}
	return max(top, 0)
}

// RowAt maps a line offset inside the rendered table to a row
func (t *Table) RowAt(line int) (int, bool) {
	i := line - tableHeaderLines
	if i < 0 || i >= t.VisibleRows() {
		return -1, false
	}
	row := t.Top() + i
	if row >= t.Len() {
		return -1, false
	}
	return row, true
}

// MoveUp moves the hover cursor up one row
func (t *Table) MoveUp() {
	t.moveCursor(-1)
}

// MoveDown moves the hover cursor down one row
func (t *Table) MoveDown() {
	t.moveCursor(1)
}

func (t *Table) moveCursor(delta int) {
	if t.Len() == 0 {
		return
	}
	row := t.Hovered()
	if row < 0 {
		row = t.Top()
	} else {
		row += delta
	}
	row = min(max(row, 0), t.Len()-1)
	t.HoverRow(row)

	// keep the cursor on screen
	if row < t.Top() || row >= t.Top()+t.VisibleRows() {
		first := row
		if delta > 0 {
			first = row - t.VisibleRows() + 1
		}
		if id, ok := t.RowID(max(first, 0)); ok {
			t.ScrollToID(id)
		}
	}
}

// Render renders the visible rows
func (t *Table) Render(styles TableStyles) string {
	var content []string

	content = append(content, styles.Title.Render(t.Title))

	titles := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
	}
	content = append(content, styles.Header.Render(t.line(titles)))
	content = append(content, styles.Muted.Render(strings.Repeat("─", max(t.Width, 0))))

	top := t.Top()
	end := min(top+t.VisibleRows(), t.Len())
	selected, _ := t.Selected()
	for row := top; row < end; row++ {
		id, _ := t.RowID(row)
		text := t.line(t.rowCells(row))
		switch {
		case row == t.Hovered():
			content = append(content, styles.Hovered.Render(text))
		case id == selected && selected != "":
			content = append(content, styles.Selected.Render(text))
		default:
			content = append(content, styles.Row.Render(text))
		}
	}

	if t.Len() > t.VisibleRows() {
		content = append(content, styles.Muted.Render(fmt.Sprintf("(%d-%d of %d)", top+1, end, t.Len())))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func (t *Table) rowCells(row int) []string {
	if row < 0 || row >= len(t.cells) {
		return nil
	}
	return t.cells[row]
}

// line lays cells out in their columns and clips to the table width
func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, col := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(Fit(cell, col.Width))
	}
	return Fit(b.String(), t.Width)
}

// TableStyles are the styles a table renders with
type TableStyles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Hovered  lipgloss.Style
	Muted    lipgloss.Style
}

// Fit pads or truncates s to exactly width runes
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > width {
		if width <= 3 {
			return string(r[:width])
		}
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Excerpt keeps the first n lines of text, marking anything cut
func Excerpt(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if n < 1 || len(lines) <= n {
		return strings.Join(lines, " ")
	}
	return strings.Join(lines[:n], " ") + "..."
}

package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvas(t *testing.T) {
	c := NewCanvas(10, 3)

	c.Set(-1, 0, 'x', KindPoint)
	c.Set(10, 0, 'x', KindPoint)
	c.Text(7, 1, "hello", KindLabel)
	c.TextCentered(5, 0, "abc", KindTitle)
	c.TextRight(9, 2, "end", KindHint)

	want := "    abc   \n       hel\n       end"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
	if got := c.Get(8, 1); got.Rune != 'e' || got.Kind != KindLabel {
		t.Errorf("Get(8, 1) = %+v", got)
	}
	if got := c.Get(20, 20); got.Rune != ' ' || got.Kind != KindEmpty {
		t.Errorf("off-canvas Get = %+v", got)
	}

	// unstyled render matches the plain text
	if got := c.Render(nil); got != want {
		t.Errorf("Render(nil) = %q", got)
	}
	styled := c.Render(map[Kind]lipgloss.Style{KindTitle: lipgloss.NewStyle()})
	if !strings.Contains(styled, "abc") {
		t.Errorf("styled render lost text: %q", styled)
	}

	c.Clear()
	if strings.TrimSpace(c.String()) != "" {
		t.Error("Clear() should blank the canvas")
	}
}

func TestNewCanvasNegative(t *testing.T) {
	c := NewCanvas(-3, -1)
	if c.Cols != 0 || c.Rows != 0 || c.String() != "" {
		t.Errorf("negative canvas = %dx%d", c.Cols, c.Rows)
	}
}

func newTable(n, height int) *Table {
	tbl := NewTable("Points", []Column{{Title: "id", Width: 4}, {Title: "title", Width: 8}}, 20, height)
	ids := make([]string, n)
	cells := make([][]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("r%d", i)
		cells[i] = []string{ids[i], fmt.Sprintf("row %d", i)}
	}
	tbl.SetRows(ids, cells)
	return tbl
}

func TestTableRowAt(t *testing.T) {
	tbl := newTable(10, 8) // four visible rows

	tests := []struct {
		line int
		row  int
		ok   bool
	}{
		{line: 0, row: -1, ok: false},
		{line: 2, row: -1, ok: false},
		{line: 3, row: 0, ok: true},
		{line: 6, row: 3, ok: true},
		{line: 7, row: -1, ok: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("line %d", tt.line), func(t *testing.T) {
			row, ok := tbl.RowAt(tt.line)
			if row != tt.row || ok != tt.ok {
				t.Errorf("RowAt(%d) = %d, %v, want %d, %v", tt.line, row, ok, tt.row, tt.ok)
			}
		})
	}

	tbl.ScrollToID("r5")
	if row, _ := tbl.RowAt(3); row != 5 {
		t.Errorf("after scroll RowAt(3) = %d, want 5", row)
	}

	// scrolling past the end keeps the last page full
	tbl.ScrollToID("r9")
	if tbl.Top() != 6 {
		t.Errorf("Top() = %d, want 6", tbl.Top())
	}
}

func TestTableCursor(t *testing.T) {
	tbl := newTable(10, 8)
	var entered, left []string
	tbl.OnRowEnter(func(id string) { entered = append(entered, id) })
	tbl.OnRowLeave(func(id string) { left = append(left, id) })

	tbl.MoveUp()
	if tbl.Hovered() != 0 {
		t.Fatalf("first move hovers the top row, got %d", tbl.Hovered())
	}
	for i := 0; i < 5; i++ {
		tbl.MoveDown()
	}
	if tbl.Hovered() != 5 {
		t.Errorf("Hovered() = %d, want 5", tbl.Hovered())
	}
	if tbl.Top() != 2 {
		t.Errorf("Top() = %d, want 2 to keep the cursor visible", tbl.Top())
	}
	if len(entered) != 6 || len(left) != 5 || entered[5] != "r5" {
		t.Errorf("entered %v left %v", entered, left)
	}

	for i := 0; i < 20; i++ {
		tbl.MoveDown()
	}
	if tbl.Hovered() != 9 {
		t.Errorf("cursor should stop on the last row, got %d", tbl.Hovered())
	}

	tbl.SetRows([]string{"a"}, [][]string{{"a", "A"}})
	if tbl.Hovered() != -1 || left[len(left)-1] != "r9" {
		t.Error("SetRows should leave the hovered row")
	}
}

func TestTableRender(t *testing.T) {
	tbl := newTable(10, 8)
	tbl.SelectByID("r1")

	out := tbl.Render(TableStyles{})
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[0], "Points") {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "id   title") {
		t.Errorf("header line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "r0   row 0") {
		t.Errorf("first row = %q", lines[3])
	}
	if !strings.Contains(out, "(1-4 of 10)") {
		t.Errorf("missing scroll info:\n%s", out)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 5, "ab..."},
		{"abcdef", 2, "ab"},
		{"a\nb", 3, "a b"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.width); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"one", 4, "one"},
		{"1\n2\n3\n4", 4, "1 2 3 4"},
		{"1\n2\n3\n4\n5", 4, "1 2 3 4..."},
		{"1\n2\n", 1, "1..."},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

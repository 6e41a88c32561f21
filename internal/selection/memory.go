package selection

// MemoryGrid is a headless Grid over a list of row ids. It backs the HTTP
// API and the report command, where no widget exists.
type MemoryGrid struct {
	ids      []string
	rows     map[string]int
	selected int
	top      int
	hovered  int
	onEnter  func(id string)
	onLeave  func(id string)
}

// NewMemoryGrid creates a grid with one row per id, in order.
func NewMemoryGrid(ids []string) *MemoryGrid {
	g := &MemoryGrid{selected: -1, hovered: -1}
	g.SetRows(ids)
	return g
}

// SetRows replaces the rows. Selection, scroll and hover are reset; a hovered
// row fires a leave first.
func (g *MemoryGrid) SetRows(ids []string) {
	if g.hovered >= 0 {
		g.LeaveRow()
	}
	g.ids = append([]string(nil), ids...)
	g.rows = make(map[string]int, len(ids))
	for i, id := range g.ids {
		if _, dup := g.rows[id]; !dup {
			g.rows[id] = i
		}
	}
	g.selected = -1
	g.top = 0
}

// Len returns the number of rows.
func (g *MemoryGrid) Len() int {
	return len(g.ids)
}

func (g *MemoryGrid) RowID(row int) (string, bool) {
	if row < 0 || row >= len(g.ids) {
		return "", false
	}
	return g.ids[row], true
}

func (g *MemoryGrid) OnRowEnter(fn func(id string)) {
	g.onEnter = fn
}

func (g *MemoryGrid) OnRowLeave(fn func(id string)) {
	g.onLeave = fn
}

func (g *MemoryGrid) SelectByID(id string) bool {
	row, ok := g.rows[id]
	if !ok {
		return false
	}
	g.selected = row
	return true
}

func (g *MemoryGrid) ScrollToID(id string) bool {
	row, ok := g.rows[id]
	if !ok {
		return false
	}
	g.top = row
	return true
}

func (g *MemoryGrid) ClearSelection() {
	g.selected = -1
}

// Selected returns the selected row's id.
func (g *MemoryGrid) Selected() (string, bool) {
	return g.RowID(g.selected)
}

// TopRow returns the row last scrolled to.
func (g *MemoryGrid) TopRow() int {
	return g.top
}

// HoverRow simulates the pointer entering row. Hovering a new row leaves the
// previous one first; an unknown row only leaves.
func (g *MemoryGrid) HoverRow(row int) {
	if row == g.hovered {
		return
	}
	if g.hovered >= 0 {
		g.LeaveRow()
	}
	id, ok := g.RowID(row)
	if !ok {
		return
	}
	g.hovered = row
	if g.onEnter != nil {
		g.onEnter(id)
	}
}

// HoverID hovers the row with id. It reports false when absent.
func (g *MemoryGrid) HoverID(id string) bool {
	row, ok := g.rows[id]
	if !ok {
		return false
	}
	g.HoverRow(row)
	return true
}

// LeaveRow simulates the pointer leaving the hovered row.
func (g *MemoryGrid) LeaveRow() {
	if g.hovered < 0 {
		return
	}
	id := g.ids[g.hovered]
	g.hovered = -1
	if g.onLeave != nil {
		g.onLeave(id)
	}
}

// Hovered returns the hovered row, or -1.
func (g *MemoryGrid) Hovered() int {
	return g.hovered
}

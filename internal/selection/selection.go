// Package selection links plot hover with an external data grid.
//
// The push path forwards the plot's hovered point to the grid, only when it
// changes. The pull path records which row the grid itself reports as
// hovered. Neither path renders anything.
package selection

import (
	"github.com/yildizm/EmbedScope/internal/logger"
)

// Grid is the narrow view of a tabular grid the bridge depends on.
type Grid interface {
	// RowID returns the id shown on row, if the row exists.
	RowID(row int) (string, bool)
	// OnRowEnter registers the callback fired when a row becomes hovered.
	OnRowEnter(fn func(id string))
	// OnRowLeave registers the callback fired when a row stops being hovered.
	OnRowLeave(fn func(id string))
	// SelectByID selects the row with id. It reports false when absent.
	SelectByID(id string) bool
	// ScrollToID brings the row with id into view. It reports false when absent.
	ScrollToID(id string) bool
	// ClearSelection removes any selection.
	ClearSelection()
}

// Bridge holds the two pieces of cross-component state: the last point
// pushed to the grid and the id the grid reports as hovered.
type Bridge struct {
	grid       Grid
	log        *logger.Logger
	pushed     int
	hasPushed  bool
	externalID string
}

// NewBridge wires the bridge to grid's hover events.
func NewBridge(grid Grid, log *logger.Logger) *Bridge {
	b := &Bridge{grid: grid, log: log, pushed: -1}
	if grid != nil {
		grid.OnRowEnter(b.rowEnter)
		grid.OnRowLeave(b.rowLeave)
	}
	return b
}

// Push forwards the hovered point (index and id) to the grid when it differs
// from the last one pushed. An id missing from the grid is logged and
// otherwise ignored.
func (b *Bridge) Push(index int, id string) {
	if b.hasPushed && b.pushed == index {
		return
	}
	b.pushed = index
	b.hasPushed = true

	if b.grid == nil {
		return
	}
	if !b.grid.SelectByID(id) {
		b.log.WarnWithFields("row not found in grid", []logger.Field{
			logger.F("id", id),
			logger.F("index", index),
		})
		return
	}
	b.grid.ScrollToID(id)
}

// Clear tells the grid nothing is hovered. Repeated calls are no-ops.
func (b *Bridge) Clear() {
	if b.hasPushed && b.pushed == -1 {
		return
	}
	b.pushed = -1
	b.hasPushed = true

	if b.grid != nil {
		b.grid.ClearSelection()
	}
}

// Pushed returns the last index pushed to the grid.
func (b *Bridge) Pushed() (int, bool) {
	if b.pushed < 0 {
		return -1, false
	}
	return b.pushed, true
}

// ExternalHoverID returns the id of the row hovered in the grid, or "".
func (b *Bridge) ExternalHoverID() string {
	return b.externalID
}

// Reset forgets the last push so the next Push or Clear always reaches the
// grid. Used after the point collection is replaced.
func (b *Bridge) Reset() {
	b.pushed = -1
	b.hasPushed = false
	b.externalID = ""
}

func (b *Bridge) rowEnter(id string) {
	b.externalID = id
	b.log.Debug("grid row entered: %s", id)
}

func (b *Bridge) rowLeave(id string) {
	// A late leave for a row already replaced by another enter is stale.
	if b.externalID == id {
		b.externalID = ""
	}
}

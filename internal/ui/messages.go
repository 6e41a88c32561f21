package ui

import (
	"github.com/yildizm/EmbedScope/internal/dataset"
)

// DataReloadedMsg carries a freshly loaded point collection into the
// program. It is sent from the file watcher goroutine.
type DataReloadedMsg struct {
	Data *dataset.Dataset
}

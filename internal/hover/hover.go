// Package hover finds the point under the pointer.
package hover

import (
	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/projection"
)

// DefaultHitRadius is the pointer tolerance in screen units.
const DefaultHitRadius = 6.0

// Resolve returns the first point index, in ascending order, whose projection
// under view lies strictly closer than hitRadius to pointer. While zoomed,
// points outside view.Bounds are not drawn and so cannot be hovered.
func Resolve(pointer r2.Point, src projection.Source, view projection.View, zoomed bool, hitRadius float64) (int, bool) {
	for i := 0; i < src.Len(); i++ {
		if zoomed && !view.InBounds(src, i) {
			continue
		}
		if view.Point(src, i).Sub(pointer).Norm() < hitRadius {
			return i, true
		}
	}
	return -1, false
}

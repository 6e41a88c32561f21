// Package hotspot groups points that sit close together on screen.
//
// Grouping is greedy and order dependent: each unassigned point, in input
// order, seeds a group by absorbing every later unassigned point closer than
// the threshold. Absorbed points stay claimed even when their seed's group
// turns out too small. Seeds only look forward, so a failed seed is never
// picked up by a later group.
package hotspot

import (
	"github.com/golang/geo/r2"
	"github.com/yildizm/EmbedScope/internal/projection"
)

// DefaultMinClusterSize is the smallest group reported as a hotspot.
const DefaultMinClusterSize = 10

// Hotspot is a dense group of points under the current projection.
type Hotspot struct {
	// Center is the seed point's screen position.
	Center r2.Point
	// Radius is the threshold the group was built with; it doubles as the
	// marker size and the click target.
	Radius float64
	// Members holds point indices, seed first, in ascending order.
	Members []int
	// DataBounds spans the members in data space, not screen space.
	DataBounds projection.Bounds
}

// Size returns the number of member points.
func (h Hotspot) Size() int {
	return len(h.Members)
}

// Hit reports whether the screen position p falls on the hotspot marker.
func (h Hotspot) Hit(p r2.Point) bool {
	return p.Sub(h.Center).Norm() <= h.Radius
}

// Detect partitions the points of src projected through view. view.Bounds
// must be the full (normal) data range; the result is a pure function of the
// arguments.
func Detect(src projection.Source, view projection.View, threshold float64, minClusterSize int) []Hotspot {
	n := src.Len()
	if n == 0 {
		return nil
	}

	screen := view.ProjectAll(src)
	assigned := make([]bool, n)

	var hotspots []Hotspot
	for seed := 0; seed < n; seed++ {
		if assigned[seed] {
			continue
		}

		members := []int{seed}
		for j := seed + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			if screen[seed].Sub(screen[j]).Norm() < threshold {
				members = append(members, j)
				assigned[j] = true
			}
		}

		if len(members) < minClusterSize {
			continue
		}
		assigned[seed] = true

		hotspots = append(hotspots, Hotspot{
			Center:     screen[seed],
			Radius:     threshold,
			Members:    members,
			DataBounds: memberBounds(src, view, members),
		})
	}

	return hotspots
}

// memberBounds returns the data-space bounding box of members.
func memberBounds(src projection.Source, view projection.View, members []int) projection.Bounds {
	pts := make([]r2.Point, len(members))
	for k, i := range members {
		pts[k] = r2.Point{X: src.Value(i, view.XDim), Y: src.Value(i, view.YDim)}
	}
	return projection.BoundsFromRect(r2.RectFromPoints(pts...))
}

// Find returns the first hotspot whose marker contains p, in list order.
func Find(hotspots []Hotspot, p r2.Point) (int, bool) {
	for i := range hotspots {
		if hotspots[i].Hit(p) {
			return i, true
		}
	}
	return -1, false
}

package driver

import (
	"sync"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/elements"
)

// HighwayGraph is the shared connectivity graph (spec.md §3
// "HighwayConnectivity"): a map from endpoint node position to the
// segments that meet there, used for intersection/marking decisions by the
// highways processor and the street_signs supplement.
type HighwayGraph struct {
	mu       sync.RWMutex
	segments map[coordsys.XZPoint][]segment
}

type segment struct {
	wayID uint64
	other coordsys.XZPoint
	class string
	name  string
}

// NewHighwayGraph returns an empty graph.
func NewHighwayGraph() *HighwayGraph {
	return &HighwayGraph{segments: make(map[coordsys.XZPoint][]segment)}
}

// AddSegment records that a and b are connected by wayID, of the given
// highway class, optionally carrying the street name used by the
// street_signs supplement.
func (g *HighwayGraph) AddSegment(wayID uint64, a, b coordsys.XZPoint, class, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.segments[a] = append(g.segments[a], segment{wayID: wayID, other: b, class: class, name: name})
	g.segments[b] = append(g.segments[b], segment{wayID: wayID, other: a, class: class, name: name})
}

// IntersectionsNear returns every recorded endpoint within radius of p.
func (g *HighwayGraph) IntersectionsNear(p coordsys.XZPoint, radius int32) []coordsys.XZPoint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []coordsys.XZPoint
	for pt := range g.segments {
		dx := pt.X - p.X
		dz := pt.Z - p.Z
		if dx*dx+dz*dz <= radius*radius {
			out = append(out, pt)
		}
	}
	return out
}

// NamedIntersections returns every endpoint where three or more segments
// meet and those segments carry two or more distinct non-empty names
// (SPEC_FULL.md §4.8.S "street_signs"). A point where only two segments
// meet is not reported, whatever their names.
func (g *HighwayGraph) NamedIntersections() []elements.NamedIntersection {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []elements.NamedIntersection
	for pt, segs := range g.segments {
		if len(segs) < 3 { // an intersection needs >2 meeting segments
			continue
		}
		seen := make(map[string]bool)
		var names []string
		for _, s := range segs {
			if s.name == "" || seen[s.name] {
				continue
			}
			seen[s.name] = true
			names = append(names, s.name)
		}
		if len(names) >= 2 {
			out = append(out, elements.NamedIntersection{At: pt, Names: names})
		}
	}
	return out
}

var _ elements.HighwayGraph = (*HighwayGraph)(nil)

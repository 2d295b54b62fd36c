package driver

import (
	"sync"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

// FloodFillCache is a unit-local mapping from element id to the interior
// cells a flood fill already found for it, per spec.md §3 "FloodFillCache":
// created and consumed within one processing unit, never shared across
// units.
type FloodFillCache struct {
	mu      sync.Mutex
	results map[uint64][]coordsys.XZPoint
}

// NewFloodFillCache returns an empty cache.
func NewFloodFillCache() *FloodFillCache {
	return &FloodFillCache{results: make(map[uint64][]coordsys.XZPoint)}
}

// ErrFloodFillTimeout is returned when a fill's wall-clock budget from
// spec.md §5 is exceeded; the result carries whatever was found before the
// deadline so the caller can fall back to it (e.g. perimeter-only
// rendering).
type ErrFloodFillTimeout struct{ ElementID uint64 }

func (e *ErrFloodFillTimeout) Error() string { return "flood fill timed out" }

// Fill runs a 4-connected BFS from seed, bounded by inside, caching the
// result under elementID. If the same element is filled again through the
// same cache (that is, within the same unit), the cached result is returned
// instantly rather than re-walked.
//
// A per-element wall-clock timeout caps runaway fills over very large
// closed ways (spec.md §9 "Flood-fill cost"); on expiry it returns the
// partial result plus ErrFloodFillTimeout so the caller can fall back to
// perimeter-only rendering for that element.
func (c *FloodFillCache) Fill(elementID uint64, seed coordsys.XZPoint, inside func(coordsys.XZPoint) bool, timeout time.Duration) ([]coordsys.XZPoint, error) {
	c.mu.Lock()
	if cached, ok := c.results[elementID]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	deadline := time.Now().Add(timeout)
	visited := map[coordsys.XZPoint]bool{seed: true}
	queue := []coordsys.XZPoint{seed}
	var out []coordsys.XZPoint
	if !inside(seed) {
		return nil, nil
	}

	dirs := [4][2]int32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	timedOut := false
	checkEvery := 4096
	steps := 0
	for len(queue) > 0 {
		steps++
		if steps%checkEvery == 0 && time.Now().After(deadline) {
			timedOut = true
			break
		}
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for _, d := range dirs {
			np := coordsys.XZPoint{X: p.X + d[0], Z: p.Z + d[1]}
			if visited[np] {
				continue
			}
			visited[np] = true
			if inside(np) {
				queue = append(queue, np)
			}
		}
	}

	c.mu.Lock()
	c.results[elementID] = out
	c.mu.Unlock()

	if timedOut {
		return out, &ErrFloodFillTimeout{ElementID: elementID}
	}
	return out, nil
}

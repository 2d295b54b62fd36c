package driver

import (
	"sync"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

// FootprintBitmap is the shared, frozen-after-construction building
// footprint every decoration processor (trees, tourism markers, natural
// scatter) consults to skip cells that lie under a roof (spec.md §3
// "BuildingFootprintBitmap"). BuildFootprint marks every cell once, globally,
// during phase 3 precompute; units only ever call Contains afterwards
// (spec.md §4.9 phase 3, §9 "frozen after construction"). The mutex remains
// because Contains is read concurrently from every unit's goroutine.
type FootprintBitmap struct {
	mu    sync.RWMutex
	cells map[coordsys.XZPoint]struct{}
}

// NewFootprintBitmap returns an empty bitmap over the world's XZ extent.
func NewFootprintBitmap() *FootprintBitmap {
	return &FootprintBitmap{cells: make(map[coordsys.XZPoint]struct{})}
}

// Mark records that (x,z) lies inside a building.
func (f *FootprintBitmap) Mark(x, z int32) {
	f.mu.Lock()
	f.cells[coordsys.XZPoint{X: x, Z: z}] = struct{}{}
	f.mu.Unlock()
}

// Contains reports whether (x,z) lies inside any building.
func (f *FootprintBitmap) Contains(x, z int32) bool {
	f.mu.RLock()
	_, ok := f.cells[coordsys.XZPoint{X: x, Z: z}]
	f.mu.RUnlock()
	return ok
}

// Len returns the number of marked cells, for progress/diagnostics.
func (f *FootprintBitmap) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.cells)
}

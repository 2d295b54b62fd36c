// Package elements implements the per-category rasterizers of spec.md §4.8:
// one file per OSM category, each turning a classified, clipped osm.Element
// into block writes against a worldstore.WorldStore using the override
// policy (§4.4) to encode priority.
package elements

import (
	"log/slog"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

// Ground is the narrow elevation accessor processors need.
type Ground interface {
	Level(localX, localZ int32) int32
}

// Footprint is the shared building-footprint bitmap (spec.md §3): processors
// consult it to skip decorations over roofs/inside buildings. The driver
// marks every building cell once, before any unit runs; processors only
// read it.
type Footprint interface {
	Contains(x, z int32) bool
	Mark(x, z int32)
}

// HighwayGraph is the shared connectivity graph (spec.md §3): the driver
// records every highway segment once, before any unit runs, and the
// street_signs supplement reads them back.
type HighwayGraph interface {
	AddSegment(wayID uint64, a, b coordsys.XZPoint, class, name string)
	IntersectionsNear(p coordsys.XZPoint, radius int32) []coordsys.XZPoint
	NamedIntersections() []NamedIntersection
}

// NamedIntersection is one point where three or more highway segments meet
// under at least two distinct names, used by the street_signs supplement
// (SPEC_FULL.md §4.8.S).
type NamedIntersection struct {
	At    coordsys.XZPoint
	Names []string
}

// ErrFloodFillTimeout describes an element whose interior took longer than
// its budget to fill (spec.md §5 "Cancellation & timeouts"). The driver's
// FloodFill implementation reports timeouts with its own
// driver.ErrFloodFillTimeout type instead, so processors here treat any
// non-nil error from Fill as a timeout.
type ErrFloodFillTimeout struct{ ElementID uint64 }

func (e *ErrFloodFillTimeout) Error() string { return "flood fill timeout" }

// FloodFill fills the interior of a closed shape starting at seed, calling
// inside to test candidate cells, and returns every interior cell found (or
// a partial result plus a timeout error if the per-element wall clock
// budget from spec.md §5 is exceeded).
type FloodFill interface {
	Fill(elementID uint64, seed coordsys.XZPoint, inside func(coordsys.XZPoint) bool, timeout time.Duration) ([]coordsys.XZPoint, error)
}

// Context bundles everything a processor needs: the unit's own WorldStore,
// the shared read-only globals, and the run's feature flags.
type Context struct {
	Store     *worldstore.WorldStore
	Ground    Ground
	Footprint Footprint
	Highways  HighwayGraph
	FloodFill FloodFill
	Bbox      coordsys.XZBBox
	Log       *slog.Logger

	Interior       bool
	Roof           bool
	FillGround     bool
	FloodFillLimit time.Duration
}

// setGround is a small convenience wrapping Store.SetBlock with the
// ctx's ground accessor, used by every processor below.
func (c *Context) setGround(b blockcat.Block, x, yOffset, z int32, whitelist, blacklist []blockcat.Block) bool {
	return c.Store.SetBlock(c.Ground, b, x, yOffset, z, whitelist, blacklist)
}

func (c *Context) setAbs(b blockcat.Block, x, y, z int32, whitelist, blacklist []blockcat.Block) bool {
	return c.Store.SetBlockAbsolute(b, x, y, z, whitelist, blacklist)
}

// groundClaim lists the ground-layer blocks (grass/dirt/sand/stone/snow) a
// surface-level write could whitelist to replace ground but not another
// feature's claim. No processor in this package passes it: they write
// surface blocks with neither a whitelist nor a blacklist.
var groundClaim = []blockcat.Block{
	blockcat.GrassBlock, blockcat.Dirt, blockcat.Sand, blockcat.Stone, blockcat.Snow,
}

// Processor rasterizes one classified, clipped element into ctx's store.
type Processor func(ctx *Context, el osm.Element)

package elements

import (
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/detrand"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// fillArea flood-fills a closed ring's interior (skipping any holes) and
// calls decorate for each surviving cell; the caller decides what block(s)
// to place. Shared by landuse/natural/leisure/tourism, which differ only in
// their tag->block mapping and decoration density (spec.md §4.8).
func fillArea(ctx *Context, el osm.Element, decorate func(p coordsys.XZPoint)) {
	if len(el.Geom.Rings) == 0 || len(el.Geom.Rings[0]) < 3 {
		return
	}
	outer := el.Geom.Rings[0]
	holes := el.Geom.Rings[1:]

	inside := func(p coordsys.XZPoint) bool {
		if !ctx.Bbox.Contains(p) || !PointInRing(p, outer) {
			return false
		}
		for _, h := range holes {
			if PointInRing(p, h) {
				return false
			}
		}
		return true
	}

	minX, minZ, maxX, maxZ := RingBBox(outer)
	seed := coordsys.XZPoint{X: (minX + maxX) / 2, Z: (minZ + maxZ) / 2}
	if !inside(seed) {
		seed = firstInteriorCell(outer, minX, minZ, maxX, maxZ)
	}

	timeout := ctx.FloodFillLimit
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	cells, err := ctx.FloodFill.Fill(el.ID, seed, inside, timeout)
	if err != nil {
		cells = WalkRingPerimeter(outer)
	}
	for _, p := range cells {
		if ctx.Footprint.Contains(p.X, p.Z) {
			continue
		}
		decorate(p)
	}
}

// scatterDensity returns true at roughly 1-in-n cells, deterministically,
// for decoration placement (spec.md §4.8 "deterministic density").
func scatterDensity(p coordsys.XZPoint, elementID uint64, n int) bool {
	if n <= 0 {
		return false
	}
	return detrand.CoordRNG(p.X, p.Z, elementID).IntN(n) == 0
}

var smallFlora = []blockcat.Block{blockcat.TallGrass, blockcat.Poppy, blockcat.Dandelion}

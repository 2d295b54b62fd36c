package elements

import (
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessWaterArea fills a lake/pond/multipolygon's outer ring (minus any
// inner-ring islands) with water at ground level, and beds the two cells
// below in dirt/gravel (spec.md §4.8 "Water areas").
func ProcessWaterArea(ctx *Context, el osm.Element) {
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
		ctx.setGround(blockcat.Water, p.X, 0, p.Z, nil, nil)
		ctx.setGround(blockcat.Dirt, p.X, -1, p.Z, nil, nil)
		ctx.setGround(blockcat.Gravel, p.X, -2, p.Z, nil, nil)
	}
}

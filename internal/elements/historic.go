package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessHistoric places a small decorated structure (monument/memorial/
// ruin) sharing the buildings processor's material selection, per
// SPEC_FULL.md §4.8.S "historic".
func ProcessHistoric(ctx *Context, el osm.Element) {
	material := buildingMaterial(el)
	block := blockcat.New(material)

	if len(el.Geom.Rings) > 0 && len(el.Geom.Rings[0]) >= 3 {
		outer := el.Geom.Rings[0]
		floorY := lowestGround(ctx, outer)
		for _, p := range WalkRingPerimeter(outer) {
			for dy := int32(0); dy < 3; dy++ {
				ctx.setAbs(block, p.X, floorY+dy, p.Z, nil, nil)
			}
		}
		return
	}

	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) {
		return
	}
	ground := ctx.Ground.Level(p.X, p.Z)
	for dy := int32(0); dy < 3; dy++ {
		ctx.setAbs(block, p.X, ground+dy, p.Z, nil, nil)
	}
	ctx.setAbs(blockcat.Slab(material, blockcat.SlabTop), p.X, ground+3, p.Z, nil, nil)
}

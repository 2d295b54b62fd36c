package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/detrand"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessTree places a trunk and canopy for a `natural=tree` point, skipping
// trees whose base cell lies in the building-footprint bitmap (spec.md §4.8
// "Trees").
func ProcessTree(ctx *Context, el osm.Element) {
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) || ctx.Footprint.Contains(p.X, p.Z) {
		return
	}
	species := el.Tags["species"]
	if species == "" {
		species = el.Tags["leaf_type"]
	}
	if _, ok := blockcat.Logs[species]; !ok {
		species = speciesFor(p, el.ID)
	}
	plantTree(ctx, p, species)
}

// speciesFor deterministically picks a wood species by coordinate when the
// element carries no explicit species tag (spec.md §4.8 "pick species from
// tag if present else deterministic by coordinate").
func speciesFor(p coordsys.XZPoint, elementID uint64) string {
	rng := detrand.CoordRNG(p.X, p.Z, elementID)
	return blockcat.WoodTypes[rng.IntN(len(blockcat.WoodTypes))]
}

// plantTree writes a 4-7 log trunk and a canopy template for species at p,
// ground-relative (spec.md §4.8 "trunk of 4-7 log blocks and a canopy
// template by species").
func plantTree(ctx *Context, p coordsys.XZPoint, species string) {
	log, ok := blockcat.Logs[species]
	if !ok {
		log = blockcat.Logs["oak"]
	}
	leaves, ok := blockcat.Leaves[species]
	if !ok {
		leaves = blockcat.Leaves["oak"]
	}

	rng := detrand.CoordRNG(p.X, p.Z, uint64(p.X)<<32|uint64(uint32(p.Z)))
	trunkHeight := int32(4 + rng.IntN(4)) // [4,7]

	for dy := int32(0); dy < trunkHeight; dy++ {
		ctx.setGround(log, p.X, dy, p.Z, nil, nil)
	}

	canopyBase := trunkHeight - 2
	for dx := int32(-2); dx <= 2; dx++ {
		for dz := int32(-2); dz <= 2; dz++ {
			for dy := int32(0); dy <= 2; dy++ {
				if dx == 0 && dz == 0 && dy < 2 {
					continue // trunk occupies the center at the lower canopy layers
				}
				r2 := dx*dx + dz*dz + (dy-1)*(dy-1)
				if r2 > 5 {
					continue
				}
				ctx.setGround(leaves, p.X+dx, canopyBase+dy, p.Z+dz, nil,
					[]blockcat.Block{log})
			}
		}
	}
}

package driver

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/ground"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

// snowlineBlocks is how close to the selection's highest elevation a column
// must sit before its surface becomes snow instead of grass (spec.md §4.9
// step 5: "the biome surface block (grass/sand/snow)" — sand is already
// claimed earlier by the natural processor's own beach/sand handling, so
// this only ever resolves grass vs. snow for columns that reach this step
// unclaimed).
const snowlineBlocks = 12

// GenerateGroundLayer lays bedrock/stone/dirt/surface under every column in
// bbox, deferring to whatever a processor already placed there (spec.md
// §4.9 step 5: "unless an earlier write already claimed that cell").
func GenerateGroundLayer(store *worldstore.WorldStore, g *ground.Ground, bbox coordsys.XZBBox) {
	for x := bbox.MinX; x <= bbox.MaxX; x++ {
		for z := bbox.MinZ; z <= bbox.MaxZ; z++ {
			lvl := g.Level(x, z)
			store.SetBlockAbsolute(blockcat.Bedrock, x, coordsys.YMin, z, nil, nil)
			for y := coordsys.YMin + 1; y <= lvl-3; y++ {
				store.SetBlockAbsolute(blockcat.Stone, x, y, z, nil, nil)
			}
			for y := lvl - 2; y <= lvl-1; y++ {
				store.SetBlockAbsolute(blockcat.Dirt, x, y, z, nil, nil)
			}
			store.SetBlockAbsolute(surfaceBlock(g, lvl), x, lvl, z, nil, nil)
		}
	}
}

func surfaceBlock(g *ground.Ground, lvl int32) blockcat.Block {
	if g.Enabled() && g.MaxLevel() > g.MinLevel() && g.MaxLevel()-lvl <= snowlineBlocks {
		return blockcat.Snow
	}
	return blockcat.GrassBlock
}

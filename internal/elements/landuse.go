package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/detrand"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var landuseSurface = map[string]blockcat.Block{
	"forest":       blockcat.GrassBlock,
	"farmland":     blockcat.Farmland,
	"meadow":       blockcat.GrassBlock,
	"grass":        blockcat.GrassBlock,
	"residential":  blockcat.GrassBlock,
	"industrial":   blockcat.New("gray_concrete"),
	"cemetery":     blockcat.GrassBlock,
	"construction": blockcat.New("coarse_dirt"),
	"military":     blockcat.New("coarse_dirt"),
	"railway":      blockcat.Gravel,
}

// ProcessLanduse replaces a closed way's surface per its `landuse` tag and
// applies decorations for forest/meadow/farmland (spec.md §4.8 "Landuse,
// natural, leisure, tourism").
func ProcessLanduse(ctx *Context, el osm.Element) {
	tag := el.Tags["landuse"]
	surface, ok := landuseSurface[tag]
	if !ok {
		surface = blockcat.GrassBlock
	}

	switch tag {
	case "forest":
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
			if scatterDensity(p, el.ID, 40) {
				plantTree(ctx, p, speciesFor(p, el.ID))
			}
		})
	case "farmland":
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
			if (p.X+p.Z)%3 == 0 {
				ctx.setGround(blockcat.WheatCrop, p.X, 1, p.Z, nil, nil)
			}
		})
	case "meadow", "grass":
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
			if scatterDensity(p, el.ID, 12) {
				rng := detrand.CoordRNG(p.X, p.Z, el.ID)
				ctx.setGround(smallFlora[rng.IntN(len(smallFlora))], p.X, 1, p.Z, nil, nil)
			}
		})
	default:
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
		})
	}
}

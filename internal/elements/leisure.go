package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var leisureSurface = map[string]blockcat.Block{
	"park":          blockcat.GrassBlock,
	"garden":        blockcat.GrassBlock,
	"pitch":         blockcat.GrassBlock,
	"playground":    blockcat.New("coarse_dirt"),
	"swimming_pool": blockcat.Water,
}

// ProcessLeisure replaces a closed way's surface per its `leisure` tag,
// scattering flowers on parks/gardens (spec.md §4.8).
func ProcessLeisure(ctx *Context, el osm.Element) {
	tag := el.Tags["leisure"]
	surface, ok := leisureSurface[tag]
	if !ok {
		surface = blockcat.GrassBlock
	}
	decorate := tag == "park" || tag == "garden"

	fillArea(ctx, el, func(p coordsys.XZPoint) {
		ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
		if decorate && scatterDensity(p, el.ID, 15) {
			ctx.setGround(smallFlora[(p.X+p.Z)%int32(len(smallFlora))], p.X, 1, p.Z, nil, nil)
		}
	})
}

package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var naturalSurface = map[string]blockcat.Block{
	"wood":    blockcat.GrassBlock,
	"scrub":   blockcat.GrassBlock,
	"beach":   blockcat.Sand,
	"heath":   blockcat.GrassBlock,
	"sand":    blockcat.Sand,
	"rock":    blockcat.Stone,
	"wetland": blockcat.New("mud"),
}

// ProcessNatural replaces a closed way's surface per its `natural` tag
// (`natural=water` is handled by the water_area processor, not here), with
// tree decoration for wood/scrub (spec.md §4.8).
func ProcessNatural(ctx *Context, el osm.Element) {
	tag := el.Tags["natural"]
	if tag == "water" {
		return
	}
	surface, ok := naturalSurface[tag]
	if !ok {
		surface = blockcat.GrassBlock
	}

	density := 0
	switch tag {
	case "wood":
		density = 20
	case "scrub":
		density = 60
	}

	fillArea(ctx, el, func(p coordsys.XZPoint) {
		ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
		if density > 0 && scatterDensity(p, el.ID, density) {
			plantTree(ctx, p, speciesFor(p, el.ID))
		}
	})
}

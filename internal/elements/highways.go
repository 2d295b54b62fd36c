package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// highwayWidths is the tag-driven width table from spec.md §4.8 "Highways".
var highwayWidths = map[string]int32{
	"motorway": 8, "primary": 6, "secondary": 5, "tertiary": 4,
	"residential": 3, "service": 2, "footway": 2, "path": 1,
}

// streetlightSpacing is the fixed cell interval streetlights are placed at
// along a highway's centerline.
const streetlightSpacing = 12

func highwayWidth(tag string) int32 {
	if w, ok := highwayWidths[tag]; ok {
		return w
	}
	return 3
}

func highwayMaterial(tag string) blockcat.Block {
	switch tag {
	case "path", "track":
		return blockcat.Gravel
	case "footway", "pedestrian", "steps":
		return blockcat.New("stone_bricks")
	default:
		return blockcat.New("gray_concrete")
	}
}

// ProcessHighway rasterizes a linestring as a width-dilated strip of road
// material and places streetlights along it (spec.md §4.8 "Highways"). The
// connectivity graph itself is built once, globally, before any unit runs
// (spec.md §4.9 phase 3) — this only consumes it indirectly via
// GenerateStreetSigns later in the same unit.
func ProcessHighway(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	tag := el.Tags["highway"]
	width := highwayWidth(tag)
	material := highwayMaterial(tag)
	half := width / 2
	if half < 1 {
		half = 1
	}

	var centerline []coordsys.XZPoint
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		centerline = append(centerline, BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1])...)
	}

	cells := DilatePerpendicular(centerline, half)
	for _, p := range cells {
		ctx.setGround(material, p.X, 0, p.Z, nil, []blockcat.Block{blockcat.Water})
	}

	for i, p := range centerline {
		if i > 0 && i%streetlightSpacing == 0 {
			placeStreetlight(ctx, p, half)
		}
	}
}

func placeStreetlight(ctx *Context, p coordsys.XZPoint, half int32) {
	x, z := p.X+half+1, p.Z
	ctx.setGround(blockcat.Wall("cobblestone"), x, 0, z, nil, nil)
	ctx.setGround(blockcat.Glowstone, x, 3, z, nil, nil)
}

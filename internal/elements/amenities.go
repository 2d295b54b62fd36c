package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var amenityMarker = map[string]blockcat.Block{
	"bench":       blockcat.New("oak_stairs"),
	"fountain":    blockcat.Water,
	"waste_basket": blockcat.New("cauldron"),
	"parking":     blockcat.New("gray_concrete"),
}

// ProcessAmenity places a small marker block for a point amenity, or
// resurfaces a closed-way amenity such as `amenity=parking` (spec.md §4.8).
func ProcessAmenity(ctx *Context, el osm.Element) {
	tag := el.Tags["amenity"]
	if len(el.Geom.Rings) > 0 {
		surface := blockcat.New("gray_concrete")
		if tag != "parking" {
			surface = blockcat.GrassBlock
		}
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(surface, p.X, 0, p.Z, nil, nil)
		})
		return
	}
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) || ctx.Footprint.Contains(p.X, p.Z) {
		return
	}
	marker, ok := amenityMarker[tag]
	if !ok {
		marker = blockcat.New("lantern")
	}
	ctx.setGround(marker, p.X, 0, p.Z, nil, nil)
}

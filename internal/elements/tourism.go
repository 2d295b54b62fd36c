package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessTourism marks a tourism-tagged area (campsite, picnic_site, zoo...)
// with a light surface replacement, or a single marker block for a point
// feature such as `tourism=viewpoint` (spec.md §4.8 "tourisms").
func ProcessTourism(ctx *Context, el osm.Element) {
	if len(el.Geom.Rings) > 0 {
		fillArea(ctx, el, func(p coordsys.XZPoint) {
			ctx.setGround(blockcat.GrassBlock, p.X, 0, p.Z, nil, nil)
		})
		return
	}
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) || ctx.Footprint.Contains(p.X, p.Z) {
		return
	}
	ctx.setGround(blockcat.New("oak_fence"), p.X, 0, p.Z, nil, nil)
	ctx.setGround(blockcat.New("lantern"), p.X, 1, p.Z, nil, nil)
}

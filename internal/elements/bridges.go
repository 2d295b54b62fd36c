package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessBridge rasterizes a `bridge=yes` way as an elevated deck one block
// above the surrounding ground, with its own width/material table, and
// pillar supports every few cells down to ground level (spec.md §4.8
// "Bridges and railways handled analogously with their own tag-driven width
// and material tables").
func ProcessBridge(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	width := highwayWidth(el.Tags["highway"])
	if width == 0 {
		width = 3
	}
	half := width / 2
	if half < 1 {
		half = 1
	}
	deck := blockcat.New("stone_brick_slab")

	var centerline []coordsys.XZPoint
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		centerline = append(centerline, BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1])...)
	}
	cells := DilatePerpendicular(centerline, half)
	for _, p := range cells {
		ctx.setGround(deck, p.X, 1, p.Z, nil, nil)
	}

	pillar := blockcat.New("stone_bricks")
	for i, p := range centerline {
		if i%4 != 0 {
			continue
		}
		ground := ctx.Ground.Level(p.X, p.Z)
		for y := ground; y < ground+1; y++ {
			ctx.setAbs(pillar, p.X, y, p.Z, nil, nil)
		}
	}
}

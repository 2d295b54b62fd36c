package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessPower rasterizes a power line as six-block cobblestone-wall poles at
// every 20th vertex, starting with the first (no wire is drawn between
// them), and a point feature as a single pole, per SPEC_FULL.md §4.8.S
// "power".
func ProcessPower(ctx *Context, el osm.Element) {
	pole := blockcat.New("cobblestone_wall")
	if len(el.Geom.Line) >= 2 {
		const poleSpacing = 20
		for i, p := range el.Geom.Line {
			if i%poleSpacing != 0 {
				continue
			}
			for dy := int32(0); dy < 6; dy++ {
				ctx.setGround(pole, p.X, dy, p.Z, nil, nil)
			}
		}
		return
	}
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) {
		return
	}
	for dy := int32(0); dy < 6; dy++ {
		ctx.setGround(pole, p.X, dy, p.Z, nil, nil)
	}
}

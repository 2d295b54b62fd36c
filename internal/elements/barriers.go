package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var barrierMaterial = map[string]blockcat.Block{
	"wall":     blockcat.Wall("stone_brick"),
	"fence":    blockcat.Fences["oak"],
	"hedge":    blockcat.Leaves["oak"],
	"retaining_wall": blockcat.Wall("cobblestone"),
}

// ProcessBarrier rasterizes a linestring tagged `barrier=*` as a one-block
// wide wall at ground height (spec.md §4.8 "Barriers").
func ProcessBarrier(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	material, ok := barrierMaterial[el.Tags["barrier"]]
	if !ok {
		material = blockcat.Fences["oak"]
	}
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		for _, p := range BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1]) {
			ctx.setGround(material, p.X, 1, p.Z, nil, nil)
		}
	}
}

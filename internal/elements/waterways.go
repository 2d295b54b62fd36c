package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

var waterwayWidths = map[string]int32{
	"river": 4, "canal": 3, "stream": 2, "drain": 1, "ditch": 1,
}

func waterwayWidth(tag string) int32 {
	if w, ok := waterwayWidths[tag]; ok {
		return w
	}
	return 2
}

// ProcessWaterway widens a river/stream centerline by its tag-driven width
// and places the water surface one block below ground level, so the bed
// sits in ground and the surface at ground-1 (spec.md §4.8 "Waterways").
// A cell already paved with highway material (gray concrete, stone bricks
// or gravel) is left untouched whatever the highway's class (the highways
// processor claimed that strip at a higher priority, standing in for a
// bridge).
func ProcessWaterway(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	width := waterwayWidth(el.Tags["waterway"])
	half := width / 2
	if half < 1 {
		half = 1
	}

	var centerline []coordsys.XZPoint
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		centerline = append(centerline, BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1])...)
	}
	cells := DilatePerpendicular(centerline, half)

	roadClaim := []blockcat.Block{blockcat.New("gray_concrete"), blockcat.New("stone_bricks"), blockcat.Gravel}
	for _, p := range cells {
		if ctx.Store.CheckForBlock(ctx.Ground, p.X, 0, p.Z, roadClaim) {
			continue // bridge: a highway already claimed this cell
		}
		ctx.setGround(blockcat.Water, p.X, -1, p.Z, nil, nil)
		ctx.setGround(blockcat.Dirt, p.X, -2, p.Z, nil, nil)
	}
}

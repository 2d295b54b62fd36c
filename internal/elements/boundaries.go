package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// boundaryPostSpacing is the wide interval fence posts are placed at along
// an administrative boundary (SPEC_FULL.md §4.8.S "boundaries": lowest
// priority, cosmetic only, never blocks other processors).
const boundaryPostSpacing = 16

// ProcessBoundary places a sparse marker line of fence posts along an
// administrative boundary way. Because it runs last (priority 16) and
// writes with neither a whitelist nor a blacklist, the override policy
// (spec.md §4.4) means it only ever fills cells every other processor left
// as air.
func ProcessBoundary(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	post := blockcat.Fences["oak"]
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		for j, p := range BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1]) {
			if j%boundaryPostSpacing != 0 {
				continue
			}
			ctx.setGround(post, p.X, 1, p.Z, nil, nil)
		}
	}
}

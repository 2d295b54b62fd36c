package elements

import "github.com/OCharnyshevich/arnisgo/internal/blockcat"

// GenerateStreetSigns places a named-street sign at every intersection the
// shared HighwayConnectivity graph recorded with two or more differently
// named segments (SPEC_FULL.md §4.8.S "street_signs"). Unlike the other
// processors this isn't dispatched per-element: it runs once per unit after
// every highway in that unit's share has been rasterized, since it needs
// the graph's accumulated state rather than a single element's geometry.
func GenerateStreetSigns(ctx *Context) {
	for _, isect := range ctx.Highways.NamedIntersections() {
		if len(isect.Names) < 2 {
			continue
		}
		p := isect.At
		if !ctx.Bbox.Contains(p) {
			continue
		}
		ground := ctx.Ground.Level(p.X, p.Z)
		line1, line2 := "", ""
		if len(isect.Names) > 0 {
			line1 = isect.Names[0]
		}
		if len(isect.Names) > 1 {
			line2 = isect.Names[1]
		}
		ctx.setGround(blockcat.Fences["oak"], p.X+1, 0, p.Z, nil, nil)
		ctx.Store.SetSign("oak", line1, line2, "", "", p.X+1, ground+1, p.Z, 0)
	}
}

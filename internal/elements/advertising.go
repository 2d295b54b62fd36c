package elements

import "github.com/OCharnyshevich/arnisgo/internal/osm"

// ProcessAdvertising places a billboard/sign for an `advertising=*` point
// feature, reusing the §4.4 set_sign primitive (SPEC_FULL.md §4.8.S
// "advertising").
func ProcessAdvertising(ctx *Context, el osm.Element) {
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) {
		return
	}
	ground := ctx.Ground.Level(p.X, p.Z)
	name := el.Tags["name"]
	if name == "" {
		name = el.Tags["advertising"]
	}
	ctx.Store.SetSign("oak", name, "", "", "", p.X, ground+1, p.Z, 0)
}

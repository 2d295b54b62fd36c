package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessRailway rasterizes a rail linestring as a gravel bed with a rail
// block on top, per spec.md §4.8 "Bridges and railways handled analogously".
func ProcessRailway(ctx *Context, el osm.Element) {
	if len(el.Geom.Line) < 2 {
		return
	}
	var centerline []coordsys.XZPoint
	for i := 0; i+1 < len(el.Geom.Line); i++ {
		centerline = append(centerline, BresenhamLine(el.Geom.Line[i], el.Geom.Line[i+1])...)
	}
	bed := DilatePerpendicular(centerline, 1)
	for _, p := range bed {
		ctx.setGround(blockcat.Gravel, p.X, 0, p.Z, nil, nil)
	}
	for _, p := range centerline {
		ctx.setGround(blockcat.Rail, p.X, 1, p.Z, nil, nil)
	}
}

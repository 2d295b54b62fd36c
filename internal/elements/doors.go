package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// ProcessDoor and ProcessEntrance both place a door block at a node lying on
// a building's wall (spec.md §4.8 "Doors are placed where an entrance node
// lies on the polygon"); entrance nodes run first (priority 1) so the
// buildings processor's wall material doesn't need special-casing the door
// cell. Doors (priority 15, for standalone `door=*` nodes not tied to an
// entrance) run after buildings and write with neither a whitelist nor a
// blacklist, so a door lands only where the cell one above ground is still
// air; a door node on an existing wall leaves the wall in place.
func ProcessEntrance(ctx *Context, el osm.Element) { placeDoor(ctx, el) }
func ProcessDoor(ctx *Context, el osm.Element)     { placeDoor(ctx, el) }

func placeDoor(ctx *Context, el osm.Element) {
	p := el.Geom.Point
	if !ctx.Bbox.Contains(p) {
		return
	}
	wood := "oak"
	door, ok := blockcat.Doors[wood]
	if !ok {
		return
	}
	ctx.setGround(door, p.X, 1, p.Z, nil, nil)
}

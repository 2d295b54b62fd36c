package elements

import "github.com/OCharnyshevich/arnisgo/internal/osm"

// Registry maps each category to the processor that rasterizes it. The
// driver walks a unit's priority-sorted elements and dispatches through
// this table (spec.md §4.8 "Element processors... each consumes one
// ProcessedElement"); street_signs is generated separately by
// GenerateStreetSigns once a unit's highways are done, not dispatched here.
var Registry = map[osm.Category]Processor{
	osm.CategoryEntrance:    ProcessEntrance,
	osm.CategoryBuilding:    ProcessBuilding,
	osm.CategoryHighway:     ProcessHighway,
	osm.CategoryRailway:     ProcessRailway,
	osm.CategoryBridge:      ProcessBridge,
	osm.CategoryWaterway:    ProcessWaterway,
	osm.CategoryWaterArea:   ProcessWaterArea,
	osm.CategoryBarrier:     ProcessBarrier,
	osm.CategoryLanduse:     ProcessLanduse,
	osm.CategoryLeisure:     ProcessLeisure,
	osm.CategoryNatural:     ProcessNatural,
	osm.CategoryAmenity:     ProcessAmenity,
	osm.CategoryTourism:     ProcessTourism,
	osm.CategoryPower:       ProcessPower,
	osm.CategoryHistoric:    ProcessHistoric,
	osm.CategoryTree:        ProcessTree,
	osm.CategoryDoor:        ProcessDoor,
	osm.CategoryAdvertising: ProcessAdvertising,
	osm.CategoryBoundary:    ProcessBoundary,
}

// Dispatch runs el's processor if one is registered for its category,
// logging and continuing on any panic so a single malformed element never
// aborts the rest of the unit (spec.md §4.8 "Processor failure is
// non-fatal: log the offending element id and continue").
func Dispatch(ctx *Context, el osm.Element) {
	proc, ok := Registry[el.Category]
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil && ctx.Log != nil {
			ctx.Log.Error("element processor panicked", "element", el.ID, "category", el.Category, "recover", r)
		}
	}()
	proc(ctx, el)
}

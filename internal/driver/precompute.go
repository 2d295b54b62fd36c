package driver

import (
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/elements"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// BuildFootprint walks every building element's outer ring once, globally,
// and marks its interior cells (spec.md §4.9 phase 3: "Build ... Building-
// FootprintBitmap ... shared-by-readers thereafter"). Units never mutate
// the bitmap during rasterization; per-unit elements seeing the same
// building twice (it straddles a unit boundary) is why Mark must be
// idempotent, not why it's called again here.
func BuildFootprint(els []osm.Element, selection coordsys.XZBBox) *FootprintBitmap {
	fp := NewFootprintBitmap()
	for _, el := range els {
		if el.Category != osm.CategoryBuilding || len(el.Geom.Rings) == 0 || len(el.Geom.Rings[0]) < 3 {
			continue
		}
		outer := el.Geom.Rings[0]
		minX, minZ, maxX, maxZ := elements.RingBBox(outer)
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				p := coordsys.XZPoint{X: x, Z: z}
				if !selection.Contains(p) {
					continue
				}
				if elements.PointInRing(p, outer) {
					fp.Mark(x, z)
				}
			}
		}
	}
	return fp
}

// BuildHighwayGraph records every highway element's segments once, globally
// (spec.md §4.9 phase 3: "Build ... HighwayConnectivity ... shared-by-readers
// thereafter"), so street_signs sees one consistent intersection count
// rather than units double-counting segments they each independently saw.
func BuildHighwayGraph(els []osm.Element) *HighwayGraph {
	hg := NewHighwayGraph()
	for _, el := range els {
		if el.Category != osm.CategoryHighway || len(el.Geom.Line) < 2 {
			continue
		}
		tag := el.Tags["highway"]
		name := el.Tags["name"]
		for i := 0; i+1 < len(el.Geom.Line); i++ {
			hg.AddSegment(el.ID, el.Geom.Line[i], el.Geom.Line[i+1], tag, name)
		}
	}
	return hg
}

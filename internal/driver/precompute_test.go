package driver

import (
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

func TestBuildFootprintMarksBuildingInterior(t *testing.T) {
	selection, err := coordsys.NewXZBBox(0, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	square := osm.Ring{
		{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 4, Z: 4}, {X: 0, Z: 4}, {X: 0, Z: 0},
	}
	els := []osm.Element{
		{ID: 1, Category: osm.CategoryBuilding, Geom: osm.Geometry{Rings: []osm.Ring{square}}},
	}
	fp := BuildFootprint(els, selection)
	if !fp.Contains(2, 2) {
		t.Error("expected the building's interior to be marked")
	}
	if fp.Contains(8, 8) {
		t.Error("expected a cell outside the building to be unmarked")
	}
}

func TestBuildFootprintSkipsNonBuildingElements(t *testing.T) {
	selection, err := coordsys.NewXZBBox(0, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	els := []osm.Element{
		{ID: 1, Category: osm.CategoryHighway, Geom: osm.Geometry{Line: []coordsys.XZPoint{{X: 0, Z: 0}, {X: 5, Z: 5}}}},
	}
	fp := BuildFootprint(els, selection)
	if fp.Len() != 0 {
		t.Errorf("expected no marks from a non-building element, got %d", fp.Len())
	}
}

func TestBuildHighwayGraphRecordsSegments(t *testing.T) {
	els := []osm.Element{
		{
			ID:       5,
			Category: osm.CategoryHighway,
			Tags:     osm.Tags{"highway": "residential", "name": "Main St"},
			Geom: osm.Geometry{Line: []coordsys.XZPoint{
				{X: 0, Z: 0}, {X: 10, Z: 0}, {X: 20, Z: 0},
			}},
		},
	}
	hg := BuildHighwayGraph(els)
	near := hg.IntersectionsNear(coordsys.XZPoint{X: 10, Z: 0}, 1)
	if len(near) == 0 {
		t.Error("expected the midpoint endpoint to be recorded as a segment junction")
	}
}

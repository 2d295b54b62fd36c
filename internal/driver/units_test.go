package driver

import (
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

func TestPlanUnitsSingleRegion(t *testing.T) {
	selection, err := coordsys.NewXZBBox(0, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	units := PlanUnits(selection)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	u := units[0]
	if u.Region.X != 0 || u.Region.Z != 0 {
		t.Errorf("region = %+v, want (0,0)", u.Region)
	}
	if u.Bbox.MinX != 0 || u.Bbox.MaxX != 10 {
		t.Errorf("bbox not clipped to selection: %+v", u.Bbox)
	}
}

func TestPlanUnitsSpansMultipleRegions(t *testing.T) {
	selection, err := coordsys.NewXZBBox(-10, -10, coordsys.RegionSize-10, coordsys.RegionSize-10)
	if err != nil {
		t.Fatal(err)
	}
	units := PlanUnits(selection)
	if len(units) != 4 {
		t.Fatalf("got %d units, want 4 (2x2 region grid)", len(units))
	}
	seen := map[coordsys.RegionPos]bool{}
	for _, u := range units {
		seen[u.Region] = true
		if u.Bbox.MinX < selection.MinX || u.Bbox.MaxX > selection.MaxX {
			t.Errorf("unit bbox %+v escapes selection %+v", u.Bbox, selection)
		}
	}
	for _, rp := range []coordsys.RegionPos{{X: -1, Z: -1}, {X: -1, Z: 0}, {X: 0, Z: -1}, {X: 0, Z: 0}} {
		if !seen[rp] {
			t.Errorf("missing region %+v", rp)
		}
	}
}

func TestPlanUnitsExpandedBboxIsBuffered(t *testing.T) {
	selection, err := coordsys.NewXZBBox(0, 0, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	units := PlanUnits(selection)
	u := units[0]
	if u.ExpandedBbox.MinX != u.Bbox.MinX-unitBufferBlocks {
		t.Errorf("expanded bbox MinX = %d, want %d", u.ExpandedBbox.MinX, u.Bbox.MinX-unitBufferBlocks)
	}
	if u.ExpandedBbox.MaxX != u.Bbox.MaxX+unitBufferBlocks {
		t.Errorf("expanded bbox MaxX = %d, want %d", u.ExpandedBbox.MaxX, u.Bbox.MaxX+unitBufferBlocks)
	}
}

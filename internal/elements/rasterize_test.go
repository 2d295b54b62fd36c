package elements

import (
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

func TestBresenhamLineHorizontal(t *testing.T) {
	line := BresenhamLine(coordsys.XZPoint{X: 0, Z: 0}, coordsys.XZPoint{X: 4, Z: 0})
	if len(line) != 5 {
		t.Fatalf("got %d cells, want 5", len(line))
	}
	for i, p := range line {
		if p.X != int32(i) || p.Z != 0 {
			t.Errorf("cell %d = %+v, want {%d,0}", i, p, i)
		}
	}
}

func TestBresenhamLineEndpointsIncluded(t *testing.T) {
	a := coordsys.XZPoint{X: -3, Z: 5}
	b := coordsys.XZPoint{X: 7, Z: -2}
	line := BresenhamLine(a, b)
	if line[0] != a {
		t.Errorf("first cell = %+v, want %+v", line[0], a)
	}
	if line[len(line)-1] != b {
		t.Errorf("last cell = %+v, want %+v", line[len(line)-1], b)
	}
}

func TestDilatePerpendicularWidensAndDedupes(t *testing.T) {
	centerline := []coordsys.XZPoint{{X: 0, Z: 0}, {X: 1, Z: 0}}
	out := DilatePerpendicular(centerline, 1)

	seen := make(map[coordsys.XZPoint]int)
	for _, p := range out {
		seen[p]++
		if seen[p] > 1 {
			t.Fatalf("duplicate cell %+v in dilated output", p)
		}
	}
	if seen[coordsys.XZPoint{X: 0, Z: 1}] == 0 {
		t.Error("expected a cell perpendicular to the centerline to be included")
	}
}

func TestPointInRingInsideAndOutside(t *testing.T) {
	square := osm.Ring{
		{X: 0, Z: 0}, {X: 10, Z: 0}, {X: 10, Z: 10}, {X: 0, Z: 10}, {X: 0, Z: 0},
	}
	if !PointInRing(coordsys.XZPoint{X: 5, Z: 5}, square) {
		t.Error("expected center point to be inside the square")
	}
	if PointInRing(coordsys.XZPoint{X: 50, Z: 50}, square) {
		t.Error("expected a far-away point to be outside the square")
	}
}

func TestPointInRingDegenerateRingIsNeverInside(t *testing.T) {
	if PointInRing(coordsys.XZPoint{X: 0, Z: 0}, osm.Ring{{X: 0, Z: 0}, {X: 1, Z: 1}}) {
		t.Error("expected a 2-point ring to never contain anything")
	}
}

func TestRingBBox(t *testing.T) {
	ring := osm.Ring{{X: -2, Z: 3}, {X: 5, Z: -1}, {X: 1, Z: 7}}
	minX, minZ, maxX, maxZ := RingBBox(ring)
	if minX != -2 || maxX != 5 || minZ != -1 || maxZ != 7 {
		t.Errorf("RingBBox = (%d,%d,%d,%d), want (-2,-1,5,7)", minX, minZ, maxX, maxZ)
	}
}

package driver

import (
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

func TestHighwayGraphIntersectionsNear(t *testing.T) {
	g := NewHighwayGraph()
	a := coordsys.XZPoint{X: 0, Z: 0}
	b := coordsys.XZPoint{X: 10, Z: 0}
	c := coordsys.XZPoint{X: 100, Z: 100}
	g.AddSegment(1, a, b, "residential", "Main St")
	g.AddSegment(2, a, c, "residential", "Side St")

	near := g.IntersectionsNear(coordsys.XZPoint{X: 0, Z: 0}, 20)
	found := map[coordsys.XZPoint]bool{}
	for _, p := range near {
		found[p] = true
	}
	if !found[a] || !found[b] {
		t.Errorf("expected a and b within radius, got %+v", near)
	}
	if found[c] {
		t.Errorf("expected c to be out of radius, got %+v", near)
	}
}

func TestHighwayGraphNamedIntersectionsRequiresDistinctNames(t *testing.T) {
	g := NewHighwayGraph()
	hub := coordsys.XZPoint{X: 5, Z: 5}
	g.AddSegment(1, hub, coordsys.XZPoint{X: 0, Z: 5}, "residential", "Main St")
	g.AddSegment(2, hub, coordsys.XZPoint{X: 10, Z: 5}, "residential", "Main St")
	g.AddSegment(3, hub, coordsys.XZPoint{X: 5, Z: 0}, "residential", "Oak Ave")

	named := g.NamedIntersections()
	if len(named) != 1 {
		t.Fatalf("got %d named intersections, want 1", len(named))
	}
	if named[0].At != hub {
		t.Errorf("intersection at %+v, want %+v", named[0].At, hub)
	}
	if len(named[0].Names) != 2 {
		t.Errorf("names = %v, want 2 distinct names", named[0].Names)
	}
}

func TestHighwayGraphNoIntersectionBelowThreeSegments(t *testing.T) {
	g := NewHighwayGraph()
	hub := coordsys.XZPoint{X: 5, Z: 5}
	g.AddSegment(1, hub, coordsys.XZPoint{X: 0, Z: 5}, "residential", "Main St")
	g.AddSegment(2, hub, coordsys.XZPoint{X: 5, Z: 0}, "residential", "Oak Ave")

	if named := g.NamedIntersections(); len(named) != 0 {
		t.Errorf("expected no intersection with only 2 segments meeting, got %+v", named)
	}
}

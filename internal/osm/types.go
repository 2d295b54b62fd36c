// Package osm implements the OSM parser and clipper (spec.md §4.7): it turns
// raw Overpass-shaped JSON into an ordered, priority-sorted, bbox-clipped
// sequence of ProcessedElement values in world XZ coordinates, ready for the
// element processors in internal/elements.
package osm

import "github.com/OCharnyshevich/arnisgo/internal/coordsys"

// Kind distinguishes the three OSM primitive shapes.
type Kind int

const (
	KindNode Kind = iota
	KindWay
	KindRelation
)

// Category is the processor dispatch tag assigned during classification
// (spec.md §6.1, extended by SPEC_FULL.md §4.8.S).
type Category int

const (
	CategoryUnknown Category = iota
	CategoryEntrance
	CategoryBuilding
	CategoryHighway
	CategoryRailway
	CategoryBridge
	CategoryWaterway
	CategoryWaterArea
	CategoryBarrier
	CategoryLanduse
	CategoryLeisure
	CategoryNatural
	CategoryAmenity
	CategoryTourism
	CategoryPower
	CategoryHistoric
	CategoryTree
	CategoryDoor
	CategoryAdvertising
	CategoryStreetSign
	CategoryBoundary
)

// Priority returns the sort key for a category: lower runs first, claiming
// cells before later categories see them (spec.md §6.1, SPEC_FULL.md §4.8.S).
func (c Category) Priority() int {
	switch c {
	case CategoryEntrance:
		return 1
	case CategoryBuilding:
		return 2
	case CategoryHighway:
		return 3
	case CategoryRailway:
		return 4
	case CategoryBridge:
		return 5
	case CategoryWaterway:
		return 6
	case CategoryWaterArea:
		return 7
	case CategoryBarrier:
		return 8
	case CategoryLanduse:
		return 9
	case CategoryLeisure:
		return 10
	case CategoryNatural:
		return 11
	case CategoryAmenity:
		return 12
	case CategoryTourism:
		return 13
	case CategoryPower:
		return 131 // 13b
	case CategoryHistoric:
		return 132 // 13c
	case CategoryTree:
		return 14
	case CategoryDoor:
		return 15
	case CategoryAdvertising:
		return 151 // 15b
	case CategoryStreetSign:
		return 152 // 15c
	case CategoryBoundary:
		return 16
	default:
		return 1000
	}
}

// Tags is an unordered OSM key/value string map.
type Tags map[string]string

// Ring is a closed sequence of world-XZ points; the first ring of a polygon
// is its outer boundary, subsequent rings are holes (spec.md §4.7 step 3).
type Ring []coordsys.XZPoint

// Geometry is the already-projected, already-clipped world-XZ shape carried
// by a ProcessedElement: either a point, an open/closed line, or a set of
// rings (outer first, then inner holes) for an area.
type Geometry struct {
	Point coordsys.XZPoint // valid when len(Line)==0 and len(Rings)==0
	Line  []coordsys.XZPoint
	Rings []Ring
}

// Empty reports whether the geometry carries nothing to rasterize, which
// happens when clipping removes an element entirely (spec.md §4.7 step 6).
func (g Geometry) Empty() bool {
	return g.Line == nil && g.Rings == nil && g.Point == (coordsys.XZPoint{})
}

// BBox returns the smallest XZBBox enclosing the geometry.
func (g Geometry) BBox() (coordsys.XZBBox, bool) {
	first := true
	var minX, maxX, minZ, maxZ int32
	consider := func(p coordsys.XZPoint) {
		if first {
			minX, maxX, minZ, maxZ = p.X, p.X, p.Z, p.Z
			first = false
			return
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	if len(g.Line) == 0 && len(g.Rings) == 0 {
		consider(g.Point)
	}
	for _, p := range g.Line {
		consider(p)
	}
	for _, r := range g.Rings {
		for _, p := range r {
			consider(p)
		}
	}
	if first {
		return coordsys.XZBBox{}, false
	}
	bb, err := coordsys.NewXZBBox(minX, minZ, maxX, maxZ)
	if err != nil {
		return coordsys.XZBBox{}, false
	}
	return bb, true
}

// Element is a ProcessedElement: a tagged union over node/way/relation,
// carrying a stable id, category, tags, and projected+clipped geometry
// (spec.md §3).
type Element struct {
	ID       uint64
	Kind     Kind
	Category Category
	Tags     Tags
	Geom     Geometry

	// RelationTags is filled only when wayToElement is given a relation's
	// tags; Parse never does so. Elements built from a multipolygon relation
	// carry the relation's tags in Tags, and RelationTags stays empty.
	RelationTags Tags
}

// ByPriority sorts elements by category priority, stable so elements of the
// same category keep their original relative order (spec.md §4.7 step 7).
type ByPriority []Element

func (b ByPriority) Len() int           { return len(b) }
func (b ByPriority) Less(i, j int) bool { return b[i].Category.Priority() < b[j].Category.Priority() }
func (b ByPriority) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

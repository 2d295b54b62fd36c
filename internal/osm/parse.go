package osm

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

// rawElement mirrors one entry of an Overpass-API JSON `elements` array
// (spec.md §4.7 "Input: decoded OSM JSON or XML").
type rawElement struct {
	Type    string            `json:"type"`
	ID      uint64            `json:"id"`
	Lat     *float64          `json:"lat,omitempty"`
	Lon     *float64          `json:"lon,omitempty"`
	Nodes   []uint64          `json:"nodes,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	Members []rawMember       `json:"members,omitempty"`
}

type rawMember struct {
	Type string `json:"type"`
	Ref  uint64 `json:"ref"`
	Role string `json:"role"`
}

type rawDocument struct {
	Elements []rawElement `json:"elements"`
}

// ParseError wraps a decode failure, surfaced as spec.md §7's
// OsmParseError.
type ParseError struct{ Cause error }

func (e *ParseError) Error() string { return fmt.Sprintf("osm parse: %v", e.Cause) }
func (e *ParseError) Unwrap() error { return e.Cause }

// Parse decodes raw Overpass-shaped JSON, projects every node into world XZ,
// classifies and clips ways/relations, and returns the priority-sorted
// element sequence spec.md §4.7 describes. bufferBlocks extends the bbox
// before clipping so elements straddling the boundary are not lost (§4.7
// "clipped to the selection bbox, extended by a small buffer").
func Parse(raw []byte, proj *Projector, selection coordsys.XZBBox, bufferBlocks int32) ([]Element, error) {
	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Cause: err}
	}

	nodeLL := make(map[uint64][2]float64, len(doc.Elements))
	nodeXZ := make(map[uint64]coordsys.XZPoint, len(doc.Elements))
	nodeTags := make(map[uint64]Tags)
	var rawNodes, rawWays, rawRelations []rawElement

	for _, e := range doc.Elements {
		switch e.Type {
		case "node":
			if e.Lat != nil && e.Lon != nil {
				nodeLL[e.ID] = [2]float64{*e.Lat, *e.Lon}
				nodeXZ[e.ID] = proj.Project(*e.Lat, *e.Lon)
			}
			if len(e.Tags) > 0 {
				nodeTags[e.ID] = e.Tags
			}
			rawNodes = append(rawNodes, e)
		case "way":
			rawWays = append(rawWays, e)
		case "relation":
			rawRelations = append(rawRelations, e)
		}
	}

	clipBBox := selection.Expand(bufferBlocks)
	ways := make(map[uint64]rawElement, len(rawWays))
	for _, w := range rawWays {
		ways[w.ID] = w
	}

	var out []Element

	for _, n := range rawNodes {
		if len(n.Tags) == 0 {
			continue
		}
		p, ok := nodeXZ[n.ID]
		if !ok || !clipBBox.Contains(p) {
			continue
		}
		cat := Classify(n.Tags, KindNode)
		if cat == CategoryUnknown {
			continue
		}
		out = append(out, Element{
			ID: n.ID, Kind: KindNode, Category: cat, Tags: n.Tags,
			Geom: Geometry{Point: p},
		})
	}

	for _, w := range rawWays {
		el, ok := wayToElement(w, nodeXZ, clipBBox, nil)
		if ok {
			out = append(out, el)
		}
	}

	for _, r := range rawRelations {
		out = append(out, relationToElements(r, ways, nodeXZ, clipBBox)...)
	}

	sort.Stable(ByPriority(out))
	return out, nil
}

// wayToElement projects a way's node refs, classifies it, and clips it
// either as a polygon (closed way) or a polyline (open way), per spec.md
// §4.7 steps 1-4. relTags, if non-nil, is attached as the owning relation's
// tags (step 5).
func wayToElement(w rawElement, nodeXZ map[uint64]coordsys.XZPoint, clipBBox coordsys.XZBBox, relTags Tags) (Element, bool) {
	if len(w.Tags) == 0 && len(relTags) == 0 {
		return Element{}, false
	}
	pts := make([]coordsys.XZPoint, 0, len(w.Nodes))
	for _, ref := range w.Nodes {
		if p, ok := nodeXZ[ref]; ok {
			pts = append(pts, p)
		}
	}
	if len(pts) < 2 {
		return Element{}, false
	}

	tags := w.Tags
	if tags == nil {
		tags = Tags{}
	}
	cat := Classify(tags, KindWay)
	if cat == CategoryUnknown {
		return Element{}, false
	}

	closed := len(pts) >= 4 && pts[0] == pts[len(pts)-1]
	isAreaCategory := cat == CategoryBuilding || cat == CategoryWaterArea || cat == CategoryLanduse ||
		cat == CategoryLeisure || cat == CategoryNatural

	var geom Geometry
	if closed && isAreaCategory {
		ring := ClipPolygon(Ring(pts[:len(pts)-1]), clipBBox)
		if len(ring) < 3 {
			return Element{}, false
		}
		geom = Geometry{Rings: []Ring{ring}}
	} else {
		segments := ClipLine(pts, clipBBox)
		if len(segments) == 0 {
			return Element{}, false
		}
		longest := segments[0]
		for _, s := range segments[1:] {
			if len(s) > len(longest) {
				longest = s
			}
		}
		geom = Geometry{Line: longest}
	}
	if geom.Empty() {
		return Element{}, false
	}
	return Element{ID: w.ID, Kind: KindWay, Category: cat, Tags: tags, Geom: geom, RelationTags: relTags}, true
}

// relationToElements expands a multipolygon relation into one Element per
// outer ring (each carrying its inner rings as holes), preserving
// relation-level tags on every member per spec.md §4.7 step 5.
func relationToElements(r rawElement, ways map[uint64]rawElement, nodeXZ map[uint64]coordsys.XZPoint, clipBBox coordsys.XZBBox) []Element {
	if len(r.Tags) == 0 {
		return nil
	}
	cat := Classify(r.Tags, KindRelation)
	if cat == CategoryUnknown {
		return nil
	}

	var outerRings []Ring
	var innerRings []Ring
	for _, m := range r.Members {
		if m.Type != "way" {
			continue
		}
		w, ok := ways[m.Ref]
		if !ok {
			continue
		}
		pts := make([]coordsys.XZPoint, 0, len(w.Nodes))
		for _, ref := range w.Nodes {
			if p, ok := nodeXZ[ref]; ok {
				pts = append(pts, p)
			}
		}
		if len(pts) < 3 {
			continue
		}
		if pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		ring := ClipPolygon(Ring(pts), clipBBox)
		if len(ring) < 3 {
			continue
		}
		if m.Role == "inner" {
			innerRings = append(innerRings, ring)
		} else {
			outerRings = append(outerRings, ring)
		}
	}
	if len(outerRings) == 0 {
		return nil
	}

	out := make([]Element, 0, len(outerRings))
	for _, outer := range outerRings {
		rings := append([]Ring{outer}, innerRings...)
		out = append(out, Element{
			ID: r.ID, Kind: KindRelation, Category: cat, Tags: r.Tags,
			Geom: Geometry{Rings: rings},
		})
	}
	return out
}

package osm

import "github.com/OCharnyshevich/arnisgo/internal/coordsys"

// ClipPolygon clips a closed ring to bbox using the Sutherland-Hodgman
// algorithm (spec.md §4.7 step 3), preserving winding order. Returns an
// empty ring if nothing of the polygon survives.
func ClipPolygon(ring Ring, bbox coordsys.XZBBox) Ring {
	if len(ring) == 0 {
		return nil
	}
	out := clipAgainstEdge(ring, func(p coordsys.XZPoint) bool { return p.X >= bbox.MinX },
		func(a, b coordsys.XZPoint) coordsys.XZPoint { return intersectVertical(a, b, bbox.MinX) })
	out = clipAgainstEdge(out, func(p coordsys.XZPoint) bool { return p.X <= bbox.MaxX },
		func(a, b coordsys.XZPoint) coordsys.XZPoint { return intersectVertical(a, b, bbox.MaxX) })
	out = clipAgainstEdge(out, func(p coordsys.XZPoint) bool { return p.Z >= bbox.MinZ },
		func(a, b coordsys.XZPoint) coordsys.XZPoint { return intersectHorizontal(a, b, bbox.MinZ) })
	out = clipAgainstEdge(out, func(p coordsys.XZPoint) bool { return p.Z <= bbox.MaxZ },
		func(a, b coordsys.XZPoint) coordsys.XZPoint { return intersectHorizontal(a, b, bbox.MaxZ) })
	return dedupeClosed(out)
}

// clipAgainstEdge runs one Sutherland-Hodgman pass against a single
// half-plane, described by an inside-test and an edge-intersection function.
func clipAgainstEdge(ring Ring, inside func(coordsys.XZPoint) bool, isect func(a, b coordsys.XZPoint) coordsys.XZPoint) Ring {
	if len(ring) == 0 {
		return nil
	}
	var out Ring
	prev := ring[len(ring)-1]
	prevIn := inside(prev)
	for _, cur := range ring {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, isect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, isect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

func intersectVertical(a, b coordsys.XZPoint, x int32) coordsys.XZPoint {
	if a.X == b.X {
		return coordsys.XZPoint{X: x, Z: a.Z}
	}
	t := float64(x-a.X) / float64(b.X-a.X)
	return coordsys.XZPoint{X: x, Z: a.Z + int32(t*float64(b.Z-a.Z))}
}

func intersectHorizontal(a, b coordsys.XZPoint, z int32) coordsys.XZPoint {
	if a.Z == b.Z {
		return coordsys.XZPoint{X: a.X, Z: z}
	}
	t := float64(z-a.Z) / float64(b.Z-a.Z)
	return coordsys.XZPoint{X: a.X + int32(t*float64(b.X-a.X)), Z: z}
}

func dedupeClosed(ring Ring) Ring {
	if len(ring) < 2 {
		return ring
	}
	out := Ring{ring[0]}
	for _, p := range ring[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// ClipLine clips an open (or closed) polyline against bbox, splitting it
// into the sub-segments that fall inside (spec.md §4.7 step 4: waterway
// linestrings, and every other linear category). Each returned segment is a
// maximal run of points either inside the bbox or on its boundary.
func ClipLine(line []coordsys.XZPoint, bbox coordsys.XZBBox) [][]coordsys.XZPoint {
	if len(line) == 0 {
		return nil
	}
	var segments [][]coordsys.XZPoint
	var cur []coordsys.XZPoint
	flush := func() {
		if len(cur) >= 2 {
			segments = append(segments, cur)
		}
		cur = nil
	}
	for i := 0; i < len(line); i++ {
		p := line[i]
		in := bbox.Contains(p)
		if in {
			if len(cur) == 0 && i > 0 {
				prev := line[i-1]
				if !bbox.Contains(prev) {
					if ip, ok := segmentBBoxEntry(prev, p, bbox); ok {
						cur = append(cur, ip)
					}
				}
			}
			cur = append(cur, p)
		} else {
			if len(cur) > 0 {
				if ip, ok := segmentBBoxEntry(cur[len(cur)-1], p, bbox); ok {
					cur = append(cur, ip)
				}
				flush()
			}
		}
	}
	flush()
	return segments
}

// segmentBBoxEntry finds where segment a->b crosses bbox's boundary,
// clamping to the nearest edge. Used when a linestring crosses in/out of
// the selection.
func segmentBBoxEntry(a, b coordsys.XZPoint, bbox coordsys.XZBBox) (coordsys.XZPoint, bool) {
	best := b
	found := false
	tryEdge := func(p coordsys.XZPoint, onEdge bool) {
		if onEdge && bbox.Contains(p) && !found {
			best = p
			found = true
		}
	}
	if a.X != b.X {
		tryEdge(intersectVertical(a, b, bbox.MinX), true)
		tryEdge(intersectVertical(a, b, bbox.MaxX), true)
	}
	if a.Z != b.Z {
		tryEdge(intersectHorizontal(a, b, bbox.MinZ), true)
		tryEdge(intersectHorizontal(a, b, bbox.MaxZ), true)
	}
	return best, found
}

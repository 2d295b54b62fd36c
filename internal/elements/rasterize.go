package elements

import (
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// BresenhamLine returns every integer cell on the line from a to b
// (spec.md §4.8 "Highways... Rasterize using Bresenham").
func BresenhamLine(a, b coordsys.XZPoint) []coordsys.XZPoint {
	x0, z0, x1, z1 := a.X, a.Z, b.X, b.Z
	dx := abs32(x1 - x0)
	dz := -abs32(z1 - z0)
	sx := int32(1)
	if x0 >= x1 {
		sx = -1
	}
	sz := int32(1)
	if z0 >= z1 {
		sz = -1
	}
	err := dx + dz

	var out []coordsys.XZPoint
	x, z := x0, z0
	for {
		out = append(out, coordsys.XZPoint{X: x, Z: z})
		if x == x1 && z == z1 {
			break
		}
		e2 := 2 * err
		if e2 >= dz {
			err += dz
			x += sx
		}
		if e2 <= dx {
			err += dx
			z += sz
		}
	}
	return out
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// DilatePerpendicular widens a polyline's rasterized cells by halfWidth on
// either side using a disk brush at every sample point, giving rounded ends
// (spec.md §4.8 "dilate perpendicularly by half-width using a disk-brush").
func DilatePerpendicular(centerline []coordsys.XZPoint, halfWidth int32) []coordsys.XZPoint {
	seen := make(map[coordsys.XZPoint]bool)
	var out []coordsys.XZPoint
	r2 := halfWidth * halfWidth
	for _, c := range centerline {
		for dz := -halfWidth; dz <= halfWidth; dz++ {
			for dx := -halfWidth; dx <= halfWidth; dx++ {
				if dx*dx+dz*dz > r2 {
					continue
				}
				p := coordsys.XZPoint{X: c.X + dx, Z: c.Z + dz}
				if !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// PointInRing reports whether p lies inside ring using the ray-casting
// algorithm (standard even-odd rule), used for interior fills when a full
// flood fill isn't necessary (small areas, perimeter-only fallback).
func PointInRing(p coordsys.XZPoint, ring osm.Ring) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Z > p.Z) != (pj.Z > p.Z) {
			x := float64(pj.X-pi.X)*float64(p.Z-pi.Z)/float64(pj.Z-pi.Z) + float64(pi.X)
			if float64(p.X) < x {
				inside = !inside
			}
		}
	}
	return inside
}

// RingBBox returns the integer bounding box enclosing ring.
func RingBBox(ring osm.Ring) (minX, minZ, maxX, maxZ int32) {
	if len(ring) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = ring[0].X, ring[0].X
	minZ, maxZ = ring[0].Z, ring[0].Z
	for _, p := range ring[1:] {
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
	return
}

// WalkRingPerimeter returns every cell on ring's closed perimeter, connecting
// consecutive vertices with Bresenham segments.
func WalkRingPerimeter(ring osm.Ring) []coordsys.XZPoint {
	if len(ring) < 2 {
		return nil
	}
	var out []coordsys.XZPoint
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		out = append(out, BresenhamLine(a, b)...)
	}
	return out
}

package elements

import (
	"strconv"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/detrand"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// interiorLightSpacing is how many flood-filled floor cells apart a light
// block is placed (spec.md §4.8 "place one light block every N cells
// (deterministic)").
const interiorLightSpacing = 49

var buildingMaterials = []string{"stone_bricks", "cobblestone", "smooth_stone", "andesite", "oak_planks", "brick"}

// ProcessBuilding rasterizes a closed polygon as walls, floor, and roof,
// per spec.md §4.8 "Buildings".
func ProcessBuilding(ctx *Context, el osm.Element) {
	if len(el.Geom.Rings) == 0 || len(el.Geom.Rings[0]) < 3 {
		return
	}
	outer := el.Geom.Rings[0]

	heightBlocks := buildingHeight(el)
	material := buildingMaterial(el)
	wallBlock := blockcat.New(material)

	floorY := lowestGround(ctx, outer)

	perimeter := WalkRingPerimeter(outer)
	for _, p := range perimeter {
		for dy := int32(0); dy < heightBlocks; dy++ {
			ctx.setAbs(wallBlock, p.X, floorY+dy, p.Z, nil, nil)
		}
	}

	minX, minZ, maxX, maxZ := RingBBox(outer)
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			p := coordsys.XZPoint{X: x, Z: z}
			if !ctx.Bbox.Contains(p) {
				continue
			}
			if PointInRing(p, outer) {
				ctx.setAbs(wallBlock, x, floorY-1, z, nil, nil)
			}
		}
	}

	roofBlock := blockcat.New(material)
	roofY := floorY + heightBlocks
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			p := coordsys.XZPoint{X: x, Z: z}
			if ctx.Bbox.Contains(p) && PointInRing(p, outer) {
				ctx.setAbs(roofBlock, x, roofY, z, nil, nil)
			}
		}
	}

	if ctx.Interior {
		buildInterior(ctx, el, outer, floorY)
	}
}

func buildingHeight(el osm.Element) int32 {
	if h := el.Tags["height"]; h != "" {
		if v, err := strconv.ParseFloat(h, 64); err == nil && v > 0 {
			return int32(v)
		}
	}
	if lv := el.Tags["building:levels"]; lv != "" {
		if n, err := strconv.Atoi(lv); err == nil && n > 0 {
			return int32(n*3 + 1)
		}
	}
	rng := detrand.ElementRNG(el.ID)
	return 4 + int32(rng.IntN(5)) // [4,8]
}

func buildingMaterial(el osm.Element) string {
	if m := el.Tags["building:material"]; m != "" {
		return m
	}
	rng := detrand.ElementRNGSalted(el.ID, 1)
	return buildingMaterials[rng.IntN(len(buildingMaterials))]
}

// lowestGround returns the minimum ground Y under any cell of ring, the
// floor level per spec.md §4.8 "floor at the lowest ground Y under the
// polygon".
func lowestGround(ctx *Context, ring osm.Ring) int32 {
	minX, minZ, maxX, maxZ := RingBBox(ring)
	lowest := ctx.Ground.Level(minX, minZ)
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if y := ctx.Ground.Level(x, z); y < lowest {
				lowest = y
			}
		}
	}
	return lowest
}

// buildInterior flood-fills the floor with a floor block and scatters light
// blocks every interiorLightSpacing cells (spec.md §4.8 "When interior is
// enabled...").
func buildInterior(ctx *Context, el osm.Element, outer osm.Ring, floorY int32) {
	minX, minZ, maxX, maxZ := RingBBox(outer)
	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
	seed := coordsys.XZPoint{X: cx, Z: cz}
	if !PointInRing(seed, outer) {
		seed = firstInteriorCell(outer, minX, minZ, maxX, maxZ)
	}

	timeout := ctx.FloodFillLimit
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	cells, err := ctx.FloodFill.Fill(el.ID, seed, func(p coordsys.XZPoint) bool {
		return ctx.Bbox.Contains(p) && PointInRing(p, outer)
	}, timeout)
	if err != nil {
		if ctx.Log != nil {
			ctx.Log.Warn("interior flood fill timed out, using partial fill", "element", el.ID)
		}
	}

	floorBlock := blockcat.New("smooth_stone")
	count := 0
	for _, p := range cells {
		ctx.setAbs(floorBlock, p.X, floorY, p.Z, nil, nil)
		count++
		if count%interiorLightSpacing == 0 {
			ctx.setAbs(blockcat.Glowstone, p.X, floorY+3, p.Z, nil, nil)
		}
	}
}

func firstInteriorCell(ring osm.Ring, minX, minZ, maxX, maxZ int32) coordsys.XZPoint {
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			p := coordsys.XZPoint{X: x, Z: z}
			if PointInRing(p, ring) {
				return p
			}
		}
	}
	return coordsys.XZPoint{X: minX, Z: minZ}
}

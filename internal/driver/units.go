package driver

import "github.com/OCharnyshevich/arnisgo/internal/coordsys"

// unitBufferBlocks is the fetch-bbox expansion applied to each unit so
// elements straddling a region boundary still rasterize correctly on both
// sides (spec.md §4.9 "Unit planning").
const unitBufferBlocks = 64

// Unit is one region's worth of generation work, runnable in isolation
// (spec.md GLOSSARY "Processing unit").
type Unit struct {
	Region       coordsys.RegionPos
	Bbox         coordsys.XZBBox // this unit's own, unexpanded region bbox clipped to the selection
	ExpandedBbox coordsys.XZBBox // Bbox plus the fetch buffer, for intersecting elements
}

// PlanUnits divides the selection bbox into one Unit per Minecraft region it
// touches (spec.md §4.9 "Unit planning": 512x512 blocks per unit).
func PlanUnits(selection coordsys.XZBBox) []Unit {
	minRX := coordsys.BlockToRegion(selection.MinX)
	maxRX := coordsys.BlockToRegion(selection.MaxX)
	minRZ := coordsys.BlockToRegion(selection.MinZ)
	maxRZ := coordsys.BlockToRegion(selection.MaxZ)

	var units []Unit
	for rx := minRX; rx <= maxRX; rx++ {
		for rz := minRZ; rz <= maxRZ; rz++ {
			regionMinX := rx * coordsys.RegionSize
			regionMinZ := rz * coordsys.RegionSize
			regionMaxX := regionMinX + coordsys.RegionSize - 1
			regionMaxZ := regionMinZ + coordsys.RegionSize - 1

			clippedMinX := max32(regionMinX, selection.MinX)
			clippedMinZ := max32(regionMinZ, selection.MinZ)
			clippedMaxX := min32(regionMaxX, selection.MaxX)
			clippedMaxZ := min32(regionMaxZ, selection.MaxZ)
			if clippedMinX > clippedMaxX || clippedMinZ > clippedMaxZ {
				continue
			}

			bb, err := coordsys.NewXZBBox(clippedMinX, clippedMinZ, clippedMaxX, clippedMaxZ)
			if err != nil {
				continue
			}
			units = append(units, Unit{
				Region:       coordsys.RegionPos{X: rx, Z: rz},
				Bbox:         bb,
				ExpandedBbox: bb.Expand(unitBufferBlocks),
			})
		}
	}
	return units
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

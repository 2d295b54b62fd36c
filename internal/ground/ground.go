// Package ground implements the elevation subsystem: fetching a raster
// height grid for the selection, filling gaps, smoothing, and mapping
// heights to Minecraft Y levels.
package ground

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

// TileFetcher is the out-of-scope collaborator described in spec.md §6.2:
// given a zoom/tile coordinate it yields decoded RGB bytes, or an error if
// the tile is unavailable. Missing tiles are acceptable and non-fatal.
type TileFetcher interface {
	FetchTile(ctx context.Context, zoom, tileX, tileY int) ([]byte, error)
}

// minZoom/maxZoom bound the zoom search in §4.3; tileBudget caps how many
// tiles a single bbox may require before falling back to a coarser zoom.
const (
	minZoom    = 10
	maxZoom    = 15
	tileBudget = 64
)

// Ground maps local selection XZ to a Minecraft Y level.
type Ground struct {
	enabled bool
	baseY   int32
	bbox    coordsys.XZBBox
	grid    [][]int32 // grid[z][x], sized to bbox's scaled extent; nil if disabled
	minY    int32
	maxY    int32
	log     *slog.Logger
}

// New constructs a Ground subsystem. If enabled, it fetches and processes
// the elevation raster; on total fetch failure it downgrades to disabled
// mode and logs a warning rather than returning an error, per spec.md §4.3.
func New(ctx context.Context, enabled bool, bbox coordsys.XZBBox, userScale float64, baseY int32, fetcher TileFetcher, log *slog.Logger) *Ground {
	g := &Ground{enabled: false, baseY: baseY, bbox: bbox, minY: baseY, maxY: baseY, log: log}
	if !enabled || fetcher == nil {
		return g
	}

	heights, ok := fetchHeights(ctx, bbox, fetcher, log)
	if !ok {
		log.Warn("elevation unavailable, falling back to flat ground", "baseY", baseY)
		return g
	}

	fillGaps(heights)
	blurred := gaussianBlur(heights, 1.5)

	hMin, hMax := math.Inf(1), math.Inf(-1)
	for _, row := range blurred {
		for _, h := range row {
			if h < hMin {
				hMin = h
			}
			if h > hMax {
				hMax = h
			}
		}
	}
	if hMax <= hMin {
		hMax = hMin + 1
	}

	scaledRange := 0.4 * math.Sqrt(userScale) * float64(coordsys.YMax-baseY)

	grid := make([][]int32, len(blurred))
	minY, maxY := int32(baseY), int32(baseY)
	for z, row := range blurred {
		grid[z] = make([]int32, len(row))
		for x, h := range row {
			frac := (h - hMin) / (hMax - hMin)
			y := baseY + int32(math.Round(frac*scaledRange))
			if y < baseY {
				y = baseY
			}
			if y > coordsys.YMax {
				y = coordsys.YMax
			}
			grid[z][x] = y
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	g.enabled = true
	g.grid = grid
	g.minY = minY
	g.maxY = maxY
	return g
}

// Level returns the Y-level at local XZ (relative to the selection's
// north-west corner). Disabled mode returns baseY; a point outside the grid
// takes the level of the nearest edge cell.
func (g *Ground) Level(localX, localZ int32) int32 {
	if !g.enabled || g.grid == nil {
		return g.baseY
	}
	z := int(localZ)
	x := int(localX)
	if z < 0 {
		z = 0
	}
	if z >= len(g.grid) {
		z = len(g.grid) - 1
	}
	row := g.grid[z]
	if len(row) == 0 {
		return g.baseY
	}
	if x < 0 {
		x = 0
	}
	if x >= len(row) {
		x = len(row) - 1
	}
	return row[x]
}

// MinLevel returns the lowest Y level across the whole selection.
func (g *Ground) MinLevel() int32 { return g.minY }

// MaxLevel returns the highest Y level across the whole selection.
func (g *Ground) MaxLevel() int32 { return g.maxY }

// Enabled reports whether real elevation data is in effect.
func (g *Ground) Enabled() bool { return g.enabled }

// fetchHeights picks the smallest zoom in [minZoom,maxZoom] whose tile count
// fits tileBudget, fetches every covering tile, and decodes per-pixel
// heights using the formula in spec.md §4.3. Returns ok=false if no zoom
// level could be fetched at all.
func fetchHeights(ctx context.Context, bbox coordsys.XZBBox, fetcher TileFetcher, log *slog.Logger) ([][]float64, bool) {
	width := int(bbox.Width())
	height := int(bbox.Height())
	if width <= 0 || height <= 0 {
		return nil, false
	}

	for zoom := minZoom; zoom <= maxZoom; zoom++ {
		tilesX := tilesNeeded(width, zoom)
		tilesZ := tilesNeeded(height, zoom)
		if tilesX*tilesZ > tileBudget && zoom != maxZoom {
			continue
		}

		heights := make([][]float64, height)
		for i := range heights {
			heights[i] = make([]float64, width)
			for j := range heights[i] {
				heights[i][j] = math.NaN()
			}
		}

		fetchedAny := false
		for tz := 0; tz < tilesZ; tz++ {
			for tx := 0; tx < tilesX; tx++ {
				raw, err := fetcher.FetchTile(ctx, zoom, tx, tz)
				if err != nil || len(raw) < 3 {
					continue
				}
				fetchedAny = true
				decodeTileInto(heights, raw, tx, tz, width, height)
			}
		}
		if fetchedAny {
			return heights, true
		}
	}
	log.Warn("no elevation tiles fetched at any zoom level")
	return nil, false
}

func tilesNeeded(extent, zoom int) int {
	tileBlocks := 256 >> uint(maxZoom-zoom)
	if tileBlocks < 1 {
		tileBlocks = 1
	}
	n := (extent + tileBlocks - 1) / tileBlocks
	if n < 1 {
		n = 1
	}
	return n
}

// decodeTileInto decodes a tile's raw RGB bytes (assumed 256x256x3) into the
// shared heights grid at the tile's offset, per the §4.3 height formula.
func decodeTileInto(heights [][]float64, raw []byte, tx, tz, width, height int) {
	const tileDim = 256
	baseX := tx * tileDim
	baseZ := tz * tileDim
	pixels := len(raw) / 3
	for i := 0; i < pixels; i++ {
		px := i % tileDim
		pz := i / tileDim
		gx := baseX + px
		gz := baseZ + pz
		if gx >= width || gz >= height {
			continue
		}
		r := float64(raw[i*3])
		gch := float64(raw[i*3+1])
		b := float64(raw[i*3+2])
		h := -10000 + (r*65536+gch*256+b)*0.1
		heights[gz][gx] = h
	}
}

// fillGaps replaces NaN cells with the nearest already-known neighbor's
// value, scanning outward in expanding rings. Cells that remain unreachable
// (a totally empty grid) are left at 0.
func fillGaps(grid [][]float64) {
	h := len(grid)
	if h == 0 {
		return
	}
	w := len(grid[0])

	type cell struct{ z, x int }
	var queue []cell
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			if !math.IsNaN(grid[z][x]) {
				queue = append(queue, cell{z, x})
			}
		}
	}
	if len(queue) == 0 {
		for z := range grid {
			for x := range grid[z] {
				grid[z][x] = 0
			}
		}
		return
	}

	visited := make([][]bool, h)
	for i := range visited {
		visited[i] = make([]bool, w)
	}
	for _, c := range queue {
		visited[c.z][c.x] = true
	}

	dirs := [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		v := grid[c.z][c.x]
		for _, d := range dirs {
			nz, nx := c.z+d[0], c.x+d[1]
			if nz < 0 || nz >= h || nx < 0 || nx >= w || visited[nz][nx] {
				continue
			}
			visited[nz][nx] = true
			grid[nz][nx] = v
			queue = append(queue, cell{nz, nx})
		}
	}
}

// gaussianBlur applies a separable Gaussian blur with the given sigma.
func gaussianBlur(grid [][]float64, sigma float64) [][]float64 {
	h := len(grid)
	if h == 0 {
		return grid
	}
	w := len(grid[0])

	radius := int(math.Ceil(sigma * 3))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	horiz := make([][]float64, h)
	for z := 0; z < h; z++ {
		horiz[z] = make([]float64, w)
		for x := 0; x < w; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				sx := clampInt(x+k, 0, w-1)
				acc += grid[z][sx] * kernel[k+radius]
			}
			horiz[z][x] = acc
		}
	}

	out := make([][]float64, h)
	for z := 0; z < h; z++ {
		out[z] = make([]float64, w)
	}
	for x := 0; x < w; x++ {
		for z := 0; z < h; z++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				sz := clampInt(z+k, 0, h-1)
				acc += horiz[sz][x] * kernel[k+radius]
			}
			out[z][x] = acc
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ErrElevationUnavailable is a sentinel used by callers that want to
// distinguish "ground disabled by request" from "ground degraded after a
// failed fetch"; New itself never returns an error (degradation is silent
// per spec.md §4.3), but collaborators may wrap fetch failures in this type
// before logging them upstream.
type ErrElevationUnavailable struct{ Cause error }

func (e *ErrElevationUnavailable) Error() string {
	return fmt.Sprintf("elevation unavailable: %v", e.Cause)
}
func (e *ErrElevationUnavailable) Unwrap() error { return e.Cause }

// Package driver implements the six-phase generation driver of spec.md §4.9:
// fetch & parse, transform & sort, global precompute, unit planning,
// parallel per-unit rasterization, and level.dat finalization.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/anvil"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/elements"
	"github.com/OCharnyshevich/arnisgo/internal/ground"
	"github.com/OCharnyshevich/arnisgo/internal/leveldat"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
	"github.com/OCharnyshevich/arnisgo/internal/progress"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

// OSMFetcher yields raw OSM JSON for a geographic bbox (spec.md §6.2
// "OSM fetcher"); errors are wrapped as OsmFetchError regardless of their
// underlying {Network, HttpStatus, Parse} cause.
type OSMFetcher interface {
	FetchOSM(ctx context.Context, bbox osm.GeoBBox) ([]byte, error)
}

// SpawnGeo is the user-supplied spawn point in geographic coordinates,
// projected and clamped to the selection once the run's projector exists.
type SpawnGeo struct {
	Lat, Lon float64
}

// Config is one generation run's parameters (spec.md §6.5, SPEC_FULL.md §6.5).
type Config struct {
	WorldDir string
	BBox     osm.GeoBBox
	Scale    float64
	BaseY    int32

	Terrain    bool
	Interior   bool
	Roof       bool
	FillGround bool

	FloodFillTimeout time.Duration
	Spawn            *SpawnGeo
	Workers          int // 0 = spec.md §5 default, max(1, hardware_parallelism-1)

	OSM       OSMFetcher
	Elevation ground.TileFetcher // nil disables terrain regardless of Terrain

	Progress *progress.Sink
	Log      *slog.Logger
}

// Run executes all six phases and returns the completed RunManifest, or an
// error if the run could not even start (bbox/fetch/parse failures).
// Per-unit write failures are recorded in the manifest rather than aborting
// the run (spec.md §7: "RegionWriteError ... fatal for that unit; run
// continues").
func Run(ctx context.Context, cfg Config) (*RunManifest, error) {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	sink := cfg.Progress
	if sink == nil {
		sink = progress.NewSink()
	}

	sink.Publish(progress.Event{Percent: 0, Message: "fetching OSM data"})
	raw, err := cfg.OSM.FetchOSM(ctx, cfg.BBox)
	if err != nil {
		fetchErr := &OsmFetchError{Cause: err}
		sink.Error(fetchErr.Error())
		return nil, fetchErr
	}
	if ctx.Err() != nil {
		return nil, &Cancelled{}
	}

	sink.Publish(progress.Event{Percent: 10, Message: "parsing and projecting elements"})
	proj := osm.NewProjector(cfg.BBox, cfg.Scale)
	selection := proj.WorldBBox()
	els, err := osm.Parse(raw, proj, selection, unitBufferBlocks)
	if err != nil {
		sink.Error(err.Error())
		return nil, err
	}

	sink.Publish(progress.Event{Percent: 20, Message: "building elevation, footprint, and highway globals"})
	g := ground.New(ctx, cfg.Terrain, selection, cfg.Scale, cfg.BaseY, cfg.Elevation, log)
	footprint := BuildFootprint(els, selection)
	highways := BuildHighwayGraph(els)
	spawn := resolveSpawn(cfg.Spawn, proj, selection, g)

	units := PlanUnits(selection)
	manifest := NewRunManifest(cfg.WorldDir, cfg.BBox, cfg.Scale)
	regionDir := filepath.Join(cfg.WorldDir, "region")

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) - 1
	}
	if workers < 1 {
		workers = 1
	}

	sink.Publish(progress.Event{Percent: 30, Message: fmt.Sprintf("generating %d region(s)", len(units))})

	var mu sync.Mutex
	var completed int
	var cancelled bool

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, u := range units {
		u := u
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := runUnit(ctx, cfg, u, els, g, footprint, highways, regionDir, log)

			mu.Lock()
			manifest.RecordRegion(outcome)
			completed++
			pct := 30 + 60*float64(completed)/float64(len(units))
			if outcome.Status == "cancelled" {
				cancelled = true
			}
			mu.Unlock()
			sink.Publish(progress.Event{Percent: pct, Message: fmt.Sprintf("region (%d,%d) %s", u.Region.X, u.Region.Z, outcome.Status)})
		}()
	}
	wg.Wait()

	if cancelled {
		manifest.Finish("cancelled")
		cancelErr := &Cancelled{}
		sink.Error(cancelErr.Error())
		return manifest, cancelErr
	}

	sink.Publish(progress.Event{Percent: 95, Message: "finalizing level.dat"})
	if err := finalizeLevelDat(cfg.WorldDir, spawn); err != nil {
		log.Error("finalize level.dat", "error", err)
	}

	manifest.Finish("done")
	sink.Done(fmt.Sprintf("generated %d region(s)", len(units)))
	return manifest, nil
}

// resolveSpawn projects and clamps a user-supplied spawn point into the
// selection, choosing a Y one block above ground (spec.md §6.4: "clamped to
// bbox"). Returns nil if the user supplied none.
func resolveSpawn(sg *SpawnGeo, proj *osm.Projector, selection coordsys.XZBBox, g *ground.Ground) *leveldat.SpawnPoint {
	if sg == nil {
		return nil
	}
	p := proj.Project(sg.Lat, sg.Lon)
	x := clampI32(p.X, selection.MinX, selection.MaxX)
	z := clampI32(p.Z, selection.MinZ, selection.MaxZ)
	y := g.Level(x, z) + 1
	return &leveldat.SpawnPoint{X: x, Y: y, Z: z}
}

func clampI32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// runUnit processes one Minecraft region's worth of elements end to end:
// filter, clip (by construction, at write time, against u.Bbox), rasterize,
// lay the ground layer, and flush the Anvil region (spec.md §4.9 phase 5).
func runUnit(ctx context.Context, cfg Config, u Unit, els []osm.Element, g *ground.Ground, footprint *FootprintBitmap, highways *HighwayGraph, regionDir string, log *slog.Logger) RegionOutcome {
	cancelledOutcome := RegionOutcome{RegionX: u.Region.X, RegionZ: u.Region.Z, Status: "cancelled", FinishedAt: time.Now()}
	if ctx.Err() != nil {
		return cancelledOutcome
	}

	var unitEls []osm.Element
	for _, el := range els {
		bb, ok := el.Geom.BBox()
		if !ok || !bb.Intersects(u.ExpandedBbox) {
			continue
		}
		unitEls = append(unitEls, el)
	}
	if ctx.Err() != nil {
		return cancelledOutcome
	}

	store := worldstore.New(u.Bbox)
	floodFill := NewFloodFillCache()
	elCtx := &elements.Context{
		Store: store, Ground: g, Footprint: footprint, Highways: highways,
		FloodFill: floodFill, Bbox: u.Bbox, Log: log,
		Interior: cfg.Interior, Roof: cfg.Roof, FillGround: cfg.FillGround,
		FloodFillLimit: cfg.FloodFillTimeout,
	}

	for _, el := range unitEls {
		if ctx.Err() != nil {
			return cancelledOutcome
		}
		elements.Dispatch(elCtx, el)
	}
	elements.GenerateStreetSigns(elCtx)

	if ctx.Err() != nil {
		return cancelledOutcome
	}
	GenerateGroundLayer(store, g, u.Bbox)

	if ctx.Err() != nil {
		return cancelledOutcome
	}

	var writeErr error
	store.ForEachRegion(func(rp coordsys.RegionPos, r *worldstore.Region) {
		if writeErr != nil {
			return
		}
		if err := anvil.SaveRegion(regionDir, rp.X, rp.Z, r); err != nil {
			writeErr = &RegionWriteError{RegionX: rp.X, RegionZ: rp.Z, Cause: err}
		}
	})

	if writeErr != nil {
		log.Error("region write failed", "region", u.Region, "error", writeErr)
		return RegionOutcome{RegionX: u.Region.X, RegionZ: u.Region.Z, Status: "failed", Error: writeErr.Error(), FinishedAt: time.Now()}
	}
	return RegionOutcome{RegionX: u.Region.X, RegionZ: u.Region.Z, Status: "completed", FinishedAt: time.Now()}
}

// finalizeLevelDat patches the world's level.dat with the run's spawn point
// and (for a brand-new world directory) a flat generator (spec.md §4.9 phase
// 6, §6.4).
func finalizeLevelDat(worldDir string, spawn *leveldat.SpawnPoint) error {
	path := filepath.Join(worldDir, "level.dat")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read level.dat: %w", err)
	}
	patched, err := leveldat.Patch(existing, spawn, anvil.DataVersionJava1_20_4)
	if err != nil {
		return fmt.Errorf("patch level.dat: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, patched, 0o644); err != nil {
		return fmt.Errorf("write level.dat: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename level.dat: %w", err)
	}
	return nil
}

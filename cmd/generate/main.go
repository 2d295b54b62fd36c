// Command generate runs one OSM-to-Minecraft world generation (spec.md
// §6.5), wiring the default network collaborators (Overpass, AWS Terrarium
// tiles) and an optional sqlite fetch cache behind the driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/driver"
	"github.com/OCharnyshevich/arnisgo/internal/fetchcache"
	"github.com/OCharnyshevich/arnisgo/internal/ground"
	"github.com/OCharnyshevich/arnisgo/internal/osm"
	"github.com/OCharnyshevich/arnisgo/internal/progress"
	"github.com/OCharnyshevich/arnisgo/internal/runconfig"
)

// Exit codes per spec.md §6.5.
const (
	exitSuccess   = 0
	exitBadArgs   = 2
	exitFetchFail = 3
	exitWriteFail = 4
	exitCancelled = 5
)

func main() {
	os.Exit(run())
}

func run() int {
	p := runconfig.Defaults()
	explicit := map[string]bool{}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.StringVar(&p.WorldDir, runconfig.FlagPath, "", "world directory to write")
	fs.StringVar(&p.BBox, runconfig.FlagBBox, "", "min_lon,min_lat,max_lon,max_lat")
	fs.Float64Var(&p.Scale, runconfig.FlagScale, p.Scale, "blocks per meter")
	groundLevel := fs.Int(runconfig.FlagGroundLevel, int(p.BaseY), "base Y when terrain is disabled or as the terrain baseline")
	fs.BoolVar(&p.Terrain, runconfig.FlagTerrain, false, "enable elevation-driven terrain")
	fs.BoolVar(&p.Interior, runconfig.FlagInterior, false, "generate building interiors")
	fs.BoolVar(&p.Roof, runconfig.FlagRoof, false, "generate roof shapes")
	fs.BoolVar(&p.FillGround, runconfig.FlagFillGround, false, "allow fill-ground behavior in processors")
	fs.BoolVar(&p.Debug, runconfig.FlagDebug, false, "verbose logging")
	fs.Float64Var(&p.FloodFillTimeoutSeconds, runconfig.FlagFloodFillTimeout, p.FloodFillTimeoutSeconds, "per-element flood-fill budget, seconds")
	fs.StringVar(&p.Spawn, runconfig.FlagSpawn, "", "lat,lon spawn point override")
	profilePath := fs.String(runconfig.FlagProfile, "", "YAML batch profile file")
	fs.StringVar(&p.ProgressAddr, runconfig.FlagProgressAddr, "", "host:port to serve live progress over websocket")
	fs.StringVar(&p.CacheDB, runconfig.FlagCacheDB, "", "sqlite fetch-cache database path (empty disables caching)")
	fs.IntVar(&p.Workers, runconfig.FlagWorkers, 0, "worker pool size (0 = hardware_parallelism-1)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return exitBadArgs
	}
	p.BaseY = int32(*groundLevel)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *profilePath != "" {
		profileParams, err := runconfig.LoadProfile(*profilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitBadArgs
		}
		runconfig.Merge(&p, profileParams, explicit)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFor(p.Debug),
	}))

	if p.WorldDir == "" || p.BBox == "" {
		fmt.Fprintln(os.Stderr, "generate: --path and --bbox are required")
		return exitBadArgs
	}
	geoBBox, err := runconfig.ParseBBox(p.BBox)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	}
	var spawn *driver.SpawnGeo
	if lat, lon, ok, err := runconfig.ParseSpawn(p.Spawn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitBadArgs
	} else if ok {
		spawn = &driver.SpawnGeo{Lat: lat, Lon: lon}
	}

	osmFetcher, tileFetcher, closeCache := buildFetchers(geoBBox, p.CacheDB, log)
	if closeCache != nil {
		defer closeCache()
	}

	sink := progress.NewSink()
	if p.ProgressAddr != "" {
		srv := progress.NewServer(sink, log)
		go func() {
			if err := srv.ListenAndServe(p.ProgressAddr); err != nil {
				log.Error("progress server", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var elevation ground.TileFetcher
	if p.Terrain {
		elevation = tileFetcher
	}

	cfg := driver.Config{
		WorldDir: p.WorldDir, BBox: geoBBox, Scale: p.Scale, BaseY: p.BaseY,
		Terrain: p.Terrain, Interior: p.Interior, Roof: p.Roof, FillGround: p.FillGround, Debug: p.Debug,
		FloodFillTimeout: time.Duration(p.FloodFillTimeoutSeconds * float64(time.Second)),
		Spawn:            spawn, Workers: p.Workers,
		OSM: osmFetcher, Elevation: elevation,
		Progress: sink, Log: log,
	}

	if err := os.MkdirAll(p.WorldDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitWriteFail
	}

	manifest, err := driver.Run(ctx, cfg)
	if err != nil {
		switch err.(type) {
		case *driver.OsmFetchError:
			log.Error("fetch failed", "error", err)
			return exitFetchFail
		case *driver.Cancelled:
			log.Warn("generation cancelled")
			return exitCancelled
		default:
			log.Error("generation failed", "error", err)
			return exitFetchFail
		}
	}

	failed := 0
	for _, r := range manifest.Regions {
		if r.Status == "failed" {
			failed++
		}
	}
	if failed > 0 {
		log.Error("some regions failed to write", "count", failed)
		return exitWriteFail
	}

	log.Info("generation complete", "regions", len(manifest.Regions), "world", p.WorldDir)
	return exitSuccess
}

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// buildFetchers returns the default OSM/tile fetchers, wrapped in a sqlite
// cache if cacheDB is non-empty. The returned closer flushes and closes the
// cache database; it is nil when caching is disabled.
func buildFetchers(bbox osm.GeoBBox, cacheDB string, log *slog.Logger) (driver.OSMFetcher, ground.TileFetcher, func()) {
	httpOSM := fetchcache.NewHTTPOSMFetcher()
	httpTiles := fetchcache.NewHTTPTileFetcher(bbox)

	if cacheDB == "" {
		return httpOSM, httpTiles, nil
	}

	cache, err := fetchcache.Open(cacheDB)
	if err != nil {
		log.Warn("fetch cache unavailable, running uncached", "path", cacheDB, "error", err)
		return httpOSM, httpTiles, nil
	}
	cachedOSM := &fetchcache.CachingOSMFetcher{Cache: cache, Upstream: httpOSM}
	cachedTiles := &fetchcache.CachingTileFetcher{Cache: cache, Upstream: httpTiles}
	return cachedOSM, cachedTiles, func() { cache.Close() }
}

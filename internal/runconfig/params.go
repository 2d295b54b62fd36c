// Package runconfig loads and merges generate's parameters from CLI flags
// and an optional YAML batch profile (spec.md §6.5, SPEC_FULL.md §6.5),
// mirroring the teacher's explicit-flags-win config.Merge pattern.
package runconfig

// Params is the full set of parameters one generation run needs, however
// they were sourced (CLI flags and/or a --profile file).
type Params struct {
	WorldDir string
	BBox     string // "min_lon,min_lat,max_lon,max_lat"
	Scale    float64
	BaseY    int32

	Terrain    bool
	Interior   bool
	Roof       bool
	FillGround bool
	Debug      bool

	FloodFillTimeoutSeconds float64
	Spawn                   string // "lat,lon", empty if unset

	ProgressAddr string
	CacheDB      string
	Workers      int
}

// Defaults returns the baseline parameters before flags or a profile are
// applied (spec.md §6.5: scale/ground-level/flags all have sensible
// defaults so only --path and --bbox are mandatory).
func Defaults() Params {
	return Params{
		Scale:                   1.0,
		BaseY:                   -62,
		FloodFillTimeoutSeconds: 20,
	}
}

// FlagNames are the merge keys Merge and the CLI layer agree on.
const (
	FlagPath             = "path"
	FlagBBox             = "bbox"
	FlagScale            = "scale"
	FlagGroundLevel      = "ground-level"
	FlagTerrain          = "terrain"
	FlagInterior         = "interior"
	FlagRoof             = "roof"
	FlagFillGround       = "fill-ground"
	FlagDebug            = "debug"
	FlagFloodFillTimeout = "floodfill-timeout"
	FlagSpawn            = "spawn"
	FlagProfile          = "profile"
	FlagProgressAddr     = "progress-addr"
	FlagCacheDB          = "cache-db"
	FlagWorkers          = "workers"
)

// Merge overlays fromProfile onto cfg for every field whose flag was NOT
// explicitly set on the command line, so a --profile file fills in anything
// the invocation didn't spell out but never overrides an explicit flag
// (mirrors the teacher's internal/server/config.Merge).
func Merge(cfg *Params, fromProfile Params, explicitFlags map[string]bool) {
	if !explicitFlags[FlagPath] && fromProfile.WorldDir != "" {
		cfg.WorldDir = fromProfile.WorldDir
	}
	if !explicitFlags[FlagBBox] && fromProfile.BBox != "" {
		cfg.BBox = fromProfile.BBox
	}
	if !explicitFlags[FlagScale] && fromProfile.Scale != 0 {
		cfg.Scale = fromProfile.Scale
	}
	if !explicitFlags[FlagGroundLevel] && fromProfile.BaseY != 0 {
		cfg.BaseY = fromProfile.BaseY
	}
	if !explicitFlags[FlagTerrain] {
		cfg.Terrain = fromProfile.Terrain
	}
	if !explicitFlags[FlagInterior] {
		cfg.Interior = fromProfile.Interior
	}
	if !explicitFlags[FlagRoof] {
		cfg.Roof = fromProfile.Roof
	}
	if !explicitFlags[FlagFillGround] {
		cfg.FillGround = fromProfile.FillGround
	}
	if !explicitFlags[FlagDebug] {
		cfg.Debug = fromProfile.Debug
	}
	if !explicitFlags[FlagFloodFillTimeout] && fromProfile.FloodFillTimeoutSeconds != 0 {
		cfg.FloodFillTimeoutSeconds = fromProfile.FloodFillTimeoutSeconds
	}
	if !explicitFlags[FlagSpawn] && fromProfile.Spawn != "" {
		cfg.Spawn = fromProfile.Spawn
	}
	if !explicitFlags[FlagProgressAddr] && fromProfile.ProgressAddr != "" {
		cfg.ProgressAddr = fromProfile.ProgressAddr
	}
	if !explicitFlags[FlagCacheDB] && fromProfile.CacheDB != "" {
		cfg.CacheDB = fromProfile.CacheDB
	}
	if !explicitFlags[FlagWorkers] && fromProfile.Workers != 0 {
		cfg.Workers = fromProfile.Workers
	}
}

package fetchcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// Cache is the sqlite-backed local store of fetched OSM responses and
// elevation tiles (SPEC_FULL.md §3.1 "CacheEntry", §2 ambient table), so
// repeated runs over the same area skip network fetches.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) a cache database at path.
func Open(path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("fetchcache: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS osm_cache (
			cache_key TEXT PRIMARY KEY,
			body      BLOB NOT NULL,
			cached_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tile_cache (
			zoom      INTEGER NOT NULL,
			tile_x    INTEGER NOT NULL,
			tile_y    INTEGER NOT NULL,
			body      BLOB NOT NULL,
			cached_at TEXT NOT NULL,
			PRIMARY KEY (zoom, tile_x, tile_y)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

func osmCacheKey(bbox osm.GeoBBox) string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat)
}

// CachingOSMFetcher wraps a driver.OSMFetcher with a sqlite-backed cache
// keyed by bbox, so repeated runs over the same area skip the network.
type CachingOSMFetcher struct {
	Cache    *Cache
	Upstream interface {
		FetchOSM(ctx context.Context, bbox osm.GeoBBox) ([]byte, error)
	}
}

func (f *CachingOSMFetcher) FetchOSM(ctx context.Context, bbox osm.GeoBBox) ([]byte, error) {
	key := osmCacheKey(bbox)
	var body []byte
	err := f.Cache.db.QueryRowContext(ctx, `SELECT body FROM osm_cache WHERE cache_key = ?`, key).Scan(&body)
	if err == nil {
		return body, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("fetchcache: read osm cache: %w", err)
	}

	body, err = f.Upstream.FetchOSM(ctx, bbox)
	if err != nil {
		return nil, err
	}
	if _, err := f.Cache.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO osm_cache (cache_key, body, cached_at) VALUES (?, ?, datetime('now'))`,
		key, body); err != nil {
		return body, fmt.Errorf("fetchcache: write osm cache: %w", err)
	}
	return body, nil
}

// CachingTileFetcher wraps a ground.TileFetcher with a sqlite-backed cache
// keyed by (zoom, tileX, tileY).
type CachingTileFetcher struct {
	Cache    *Cache
	Upstream interface {
		FetchTile(ctx context.Context, zoom, tileX, tileY int) ([]byte, error)
	}
}

func (f *CachingTileFetcher) FetchTile(ctx context.Context, zoom, tileX, tileY int) ([]byte, error) {
	var body []byte
	err := f.Cache.db.QueryRowContext(ctx,
		`SELECT body FROM tile_cache WHERE zoom = ? AND tile_x = ? AND tile_y = ?`,
		zoom, tileX, tileY).Scan(&body)
	if err == nil {
		return body, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("fetchcache: read tile cache: %w", err)
	}

	body, err = f.Upstream.FetchTile(ctx, zoom, tileX, tileY)
	if err != nil {
		return nil, err
	}
	if _, err := f.Cache.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tile_cache (zoom, tile_x, tile_y, body, cached_at) VALUES (?, ?, ?, ?, datetime('now'))`,
		zoom, tileX, tileY, body); err != nil {
		return body, fmt.Errorf("fetchcache: write tile cache: %w", err)
	}
	return body, nil
}

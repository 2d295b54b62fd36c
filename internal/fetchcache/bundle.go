package fetchcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// BundleOSMFetcher serves a pre-exported OSM extract fetched once via
// go-getter (osm+http://, s3://, git:: sources) instead of querying
// Overpass live, for offline/CI runs (SPEC_FULL.md §2 ambient table).
type BundleOSMFetcher struct {
	Source  string // any go-getter source string
	WorkDir string // local directory the bundle is materialized into

	path string
}

// NewBundleOSMFetcher downloads (or copies, for a local path) source into
// workDir once; FetchOSM then always serves the same bytes regardless of
// bbox, since a bundle covers one fixed extract.
func NewBundleOSMFetcher(ctx context.Context, source, workDir string) (*BundleOSMFetcher, error) {
	dst := filepath.Join(workDir, "osm-bundle.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  source,
		Dst:  dst,
		Pwd:  workDir,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetchcache: bundle fetch %q: %w", source, err)
	}
	return &BundleOSMFetcher{Source: source, WorkDir: workDir, path: dst}, nil
}

func (f *BundleOSMFetcher) FetchOSM(ctx context.Context, bbox osm.GeoBBox) ([]byte, error) {
	return os.ReadFile(f.path)
}

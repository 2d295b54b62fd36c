// Package fetchcache provides the default network collaborators behind the
// driver.OSMFetcher and ground.TileFetcher interfaces (spec.md §6.2: these
// are out-of-scope for the core, but a CLI/CI runner needs concrete ones),
// plus sqlite-backed caching decorators and a go-getter bundle fetcher for
// offline/CI runs (SPEC_FULL.md §2 ambient table).
package fetchcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// overpassMirrors mirrors the original tool's failover list so a single
// rate-limited endpoint doesn't fail the whole run (original_source/src/retrieve_data.rs).
var overpassMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

// HTTPOSMFetcher implements driver.OSMFetcher against the Overpass API.
type HTTPOSMFetcher struct {
	Client  *http.Client
	Mirrors []string
}

// NewHTTPOSMFetcher returns a fetcher with a generous timeout, matching the
// original tool's 1800s budget for very large selections.
func NewHTTPOSMFetcher() *HTTPOSMFetcher {
	return &HTTPOSMFetcher{
		Client:  &http.Client{Timeout: 30 * time.Minute},
		Mirrors: overpassMirrors,
	}
}

// FetchOSM queries every mirror in turn until one answers successfully.
func (f *HTTPOSMFetcher) FetchOSM(ctx context.Context, bbox osm.GeoBBox) ([]byte, error) {
	query := overpassQuery(bbox)
	mirrors := f.Mirrors
	if len(mirrors) == 0 {
		mirrors = overpassMirrors
	}

	var lastErr error
	for _, endpoint := range mirrors {
		body, err := f.fetchOne(ctx, endpoint, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all overpass mirrors failed: %w", lastErr)
}

func (f *HTTPOSMFetcher) fetchOne(ctx context.Context, endpoint, query string) ([]byte, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// overpassQuery builds an Overpass QL request for every node/way/relation in
// bbox, with metadata and member geometries resolved (the shape osm.Parse
// expects).
func overpassQuery(bbox osm.GeoBBox) string {
	return fmt.Sprintf(
		"[out:json][timeout:1800];(node(%f,%f,%f,%f);way(%f,%f,%f,%f);relation(%f,%f,%f,%f););out body;>;out skel qt;",
		bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon,
		bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon,
		bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon,
	)
}

package fetchcache

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// terrariumURLTemplate is the AWS Terrarium elevation tile endpoint the
// original tool uses; it needs no API key (original_source/src/elevation_data.rs).
const terrariumURLTemplate = "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png"

// HTTPTileFetcher implements ground.TileFetcher against AWS Terrarium tiles,
// anchored to the run's geographic bbox so the ground package's
// bbox-relative (zoom, tileX, tileZ) indices resolve to absolute slippy-map
// tiles.
type HTTPTileFetcher struct {
	Client     *http.Client
	OriginLon  float64
	OriginLat  float64 // north-west corner: min lon, max lat
	URLPattern string
}

// NewHTTPTileFetcher anchors fetches at bbox's north-west corner.
func NewHTTPTileFetcher(bbox osm.GeoBBox) *HTTPTileFetcher {
	return &HTTPTileFetcher{
		Client:     &http.Client{Timeout: 30 * time.Second},
		OriginLon:  bbox.MinLon,
		OriginLat:  bbox.MaxLat,
		URLPattern: terrariumURLTemplate,
	}
}

// FetchTile fetches the PNG at (zoom, originTile+tileX, originTile+tileZ)
// and decodes it into raw interleaved RGB bytes (256x256x3), the shape
// ground.decodeTileInto expects.
func (f *HTTPTileFetcher) FetchTile(ctx context.Context, zoom, tileX, tileY int) ([]byte, error) {
	originX, originY := lonLatToTile(f.OriginLon, f.OriginLat, zoom)
	absX, absY := originX+tileX, originY+tileY

	pattern := f.URLPattern
	if pattern == "" {
		pattern = terrariumURLTemplate
	}
	u := strings.NewReplacer(
		"{z}", fmt.Sprintf("%d", zoom),
		"{x}", fmt.Sprintf("%d", absX),
		"{y}", fmt.Sprintf("%d", absY),
	).Replace(pattern)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile %s: status %d", u, resp.StatusCode)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tile %s: decode: %w", u, err)
	}
	return rgbBytes(img), nil
}

// rgbBytes flattens an image.Image into row-major interleaved RGB bytes,
// the raw form ground.decodeTileInto expects. No third-party image codec
// appears anywhere in the retrieved pack, so PNG decoding stays on the
// standard library (image/png) rather than a fabricated dependency.
func rgbBytes(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}

// lonLatToTile converts a geographic point to slippy-map tile coordinates
// at the given zoom (standard Web Mercator tiling).
func lonLatToTile(lon, lat float64, zoom int) (int, int) {
	n := math.Exp2(float64(zoom))
	x := int((lon + 180.0) / 360.0 * n)
	latRad := lat * math.Pi / 180.0
	y := int((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n)
	return x, y
}

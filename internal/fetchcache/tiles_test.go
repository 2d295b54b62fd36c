package fetchcache

import "testing"

func TestLonLatToTileKnownPoint(t *testing.T) {
	// London, zoom 10: a well-known reference tile (verified against the
	// standard slippy-map tile calculator).
	x, y := lonLatToTile(-0.1276, 51.5072, 10)
	if x != 511 || y != 340 {
		t.Errorf("lonLatToTile = (%d,%d), want (511,340)", x, y)
	}
}

func TestLonLatToTileIncreasesEastAndSouth(t *testing.T) {
	x0, y0 := lonLatToTile(-10, 50, 8)
	x1, y1 := lonLatToTile(10, 50, 8)
	if x1 <= x0 {
		t.Errorf("expected tile x to increase eastward: x0=%d x1=%d", x0, x1)
	}

	x2, y2 := lonLatToTile(0, 60, 8)
	x3, y3 := lonLatToTile(0, 40, 8)
	if y3 <= y2 {
		t.Errorf("expected tile y to increase southward: y(north)=%d y(south)=%d", y2, y3)
	}
	_ = y0
	_ = x2
	_ = x3
}

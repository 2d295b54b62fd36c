package runconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// GeoBBoxError is the geographic-bbox-parsing counterpart of
// coordsys.InvalidBBoxError (spec.md §7 "InvalidBBox"); it is raised before
// any world XZ bbox exists, so it carries the raw flag value instead of
// world coordinates.
type GeoBBoxError struct {
	Value  string
	Reason string
}

func (e *GeoBBoxError) Error() string {
	return fmt.Sprintf("invalid bbox %q: %s", e.Value, e.Reason)
}

// ParseBBox parses "min_lon,min_lat,max_lon,max_lat" into a GeoBBox,
// returning a GeoBBoxError for a malformed or degenerate box.
func ParseBBox(s string) (osm.GeoBBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return osm.GeoBBox{}, &GeoBBoxError{Value: s, Reason: "want 4 comma-separated values"}
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return osm.GeoBBox{}, &GeoBBoxError{Value: s, Reason: err.Error()}
		}
		vals[i] = v
	}
	bbox := osm.GeoBBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if bbox.MaxLon <= bbox.MinLon || bbox.MaxLat <= bbox.MinLat {
		return osm.GeoBBox{}, &GeoBBoxError{Value: s, Reason: "empty or inverted"}
	}
	return bbox, nil
}

// ParseSpawn parses "lat,lon" into a lat/lon pair; empty input means no
// spawn override.
func ParseSpawn(s string) (lat, lon float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("spawn %q: want \"lat,lon\"", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("spawn %q: %w", s, err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("spawn %q: %w", s, err)
	}
	return lat, lon, true, nil
}

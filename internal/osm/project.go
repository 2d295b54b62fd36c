package osm

import (
	"math"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// lat/lon points (spec.md §3 "Scale factors").
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// GeoBBox is the user-selected bounding box in geographic coordinates.
type GeoBBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Projector converts lat/lon inside a GeoBBox to world XZ, anchoring the
// box's north-west corner at block (0,0) per spec.md §3: X increases east
// (with longitude), Z increases south (with decreasing latitude).
type Projector struct {
	bbox            GeoBBox
	blocksX, blocksZ int32
}

// NewProjector computes the selection's block extent from the haversine
// distance along its two edges and the user scale (spec.md §3 "Scale
// factors": scale = user_scale * meters_per_edge / blocks_per_edge, one
// block nominally one meter at user_scale=1.0).
func NewProjector(bbox GeoBBox, userScale float64) *Projector {
	if userScale <= 0 {
		userScale = 1.0
	}
	metersX := Haversine(bbox.MinLat, bbox.MinLon, bbox.MinLat, bbox.MaxLon)
	metersZ := Haversine(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MinLon)

	blocksX := int32(math.Round(metersX / userScale))
	blocksZ := int32(math.Round(metersZ / userScale))
	if blocksX < 1 {
		blocksX = 1
	}
	if blocksZ < 1 {
		blocksZ = 1
	}
	return &Projector{bbox: bbox, blocksX: blocksX, blocksZ: blocksZ}
}

// WorldBBox returns the selection's world-XZ bounding box, anchored at
// (0,0) in its north-west corner.
func (p *Projector) WorldBBox() coordsys.XZBBox {
	bb, _ := coordsys.NewXZBBox(0, 0, p.blocksX, p.blocksZ)
	return bb
}

// Project maps a lat/lon pair to world XZ.
func (p *Projector) Project(lat, lon float64) coordsys.XZPoint {
	lonSpan := p.bbox.MaxLon - p.bbox.MinLon
	latSpan := p.bbox.MaxLat - p.bbox.MinLat
	var fracX, fracZ float64
	if lonSpan != 0 {
		fracX = (lon - p.bbox.MinLon) / lonSpan
	}
	if latSpan != 0 {
		fracZ = (p.bbox.MaxLat - lat) / latSpan
	}
	return coordsys.XZPoint{
		X: int32(math.Round(fracX * float64(p.blocksX))),
		Z: int32(math.Round(fracZ * float64(p.blocksZ))),
	}
}

package spatial

import (
	"math"
)

// BoundingBox is an axis-aligned box around a center point, in degrees.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

const (
	milesToKm      = 1.60934
	kmPerDegreeLat = 111.32
)

// ComputeBoundingBox returns the bounding box around (lat, lng) for a radius
// given in miles. The longitude delta widens by 1/cos(lat) to account for
// meridian convergence. Undefined at |lat| = 90 where the cosine vanishes;
// callers must stay off the poles.
func ComputeBoundingBox(lat, lng, radiusMiles float64) BoundingBox {
	radiusKm := radiusMiles * milesToKm
	deltaLat := radiusKm / kmPerDegreeLat
	latRad := lat * math.Pi / 180
	deltaLng := radiusKm / (kmPerDegreeLat * math.Cos(latRad))

	return BoundingBox{
		North: lat + deltaLat,
		South: lat - deltaLat,
		East:  lng + deltaLng,
		West:  lng - deltaLng,
	}
}

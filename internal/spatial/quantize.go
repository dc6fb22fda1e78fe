package spatial

import (
	"fmt"
	"math"
)

// QuantizeCoord rounds a coordinate to the given number of decimal places.
func QuantizeCoord(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// CellKey returns a grid-cell identifier for a coordinate pair at the given
// decimal precision. Two points share a key exactly when both coordinates
// round to the same cell, which is what groups "effectively the same"
// queries for dedup purposes.
func CellKey(lat, lng float64, places int) string {
	scale := math.Pow(10, float64(places))
	return fmt.Sprintf("%d_%d", int64(math.Round(lat*scale)), int64(math.Round(lng*scale)))
}

// CacheKey returns the server-side cache key for a nearby-search query:
// coordinates at fixed precision plus the radius, so distinct radii never
// share an entry.
func CacheKey(lat, lng float64, radiusMeters, places int) string {
	return fmt.Sprintf("%.*f_%.*f_%d", places, lat, places, lng, radiusMeters)
}

package models

// CacheEntry is a cached merged nearby-search result for one quantized query.
// Staleness is judged purely by comparing now - CachedAt against the
// configured TTL; entries are overwritten in place, never expired by a
// background sweep.
type CacheEntry struct {
	CacheKey string  `json:"cache_key" db:"cache_key"`
	Places   []Place `json:"places" db:"places"`
	CachedAt int64   `json:"cached_at" db:"cached_at"` // Unix milliseconds
}

// CacheStats summarises the cache table for the admin endpoints.
type CacheStats struct {
	Entries int `json:"entries"`
	Stale   int `json:"stale"`
}

// NearbyQuery is a validated nearby-search request.
type NearbyQuery struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters int     `json:"radius_meters"`
}

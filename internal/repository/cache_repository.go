package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dabidoe/hotspots-backend-go/internal/models"
)

// CacheRepository handles database operations for the places cache
type CacheRepository struct {
	db *sql.DB
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get retrieves a cache entry by key. Returns nil, nil when absent.
func (r *CacheRepository) Get(key string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	var placesJSON string

	err := r.db.QueryRow(
		`SELECT cache_key, places, cached_at FROM places_cache WHERE cache_key = ?`, key,
	).Scan(&entry.CacheKey, &placesJSON, &entry.CachedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(placesJSON), &entry.Places); err != nil {
		return nil, fmt.Errorf("failed to decode cached places: %w", err)
	}
	return &entry, nil
}

// Set writes a cache entry, overwriting any existing entry in place.
// Optional place fields are pointer/omitempty, so absent values are omitted
// from the stored document rather than persisted as null markers.
func (r *CacheRepository) Set(entry *models.CacheEntry) error {
	placesJSON, err := json.Marshal(entry.Places)
	if err != nil {
		return fmt.Errorf("failed to encode places: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO places_cache (cache_key, places, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			places=excluded.places, cached_at=excluded.cached_at`,
		entry.CacheKey, string(placesJSON), entry.CachedAt)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Stats returns entry counts, with stale judged against the cutoff
// timestamp (entries cached at or before the cutoff are stale).
func (r *CacheRepository) Stats(staleCutoff int64) (*models.CacheStats, error) {
	var stats models.CacheStats
	err := r.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(cached_at <= ?), 0) FROM places_cache`, staleCutoff,
	).Scan(&stats.Entries, &stats.Stale)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache stats: %w", err)
	}
	return &stats, nil
}

// PurgeStale deletes entries cached at or before the cutoff and returns how
// many were removed.
func (r *CacheRepository) PurgeStale(staleCutoff int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM places_cache WHERE cached_at <= ?`, staleCutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %w", err)
	}
	return n, nil
}

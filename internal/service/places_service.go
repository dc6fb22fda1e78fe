package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dabidoe/hotspots-backend-go/internal/config"
	"github.com/dabidoe/hotspots-backend-go/internal/models"
	"github.com/dabidoe/hotspots-backend-go/internal/places"
	"github.com/dabidoe/hotspots-backend-go/internal/spatial"
)

// NearbyFetcher fetches one category of places around a center point.
type NearbyFetcher interface {
	FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]models.Place, error)
}

// CacheStore is the document store backing the places cache.
type CacheStore interface {
	Get(key string) (*models.CacheEntry, error)
	Set(entry *models.CacheEntry) error
	Stats(staleCutoff int64) (*models.CacheStats, error)
	PurgeStale(staleCutoff int64) (int64, error)
}

// PlacesService handles business logic for nearby-place lookups: cache
// check, multi-category fan-out, merge, cache write-back.
type PlacesService struct {
	fetcher    NearbyFetcher
	cache      CacheStore
	placeTypes []string
	ttl        time.Duration
	maxResults int
	keyPlaces  int

	now func() time.Time // injectable clock for TTL tests
}

// NewPlacesService creates a new places service
func NewPlacesService(fetcher NearbyFetcher, cache CacheStore, cfg *config.Config) *PlacesService {
	return &PlacesService{
		fetcher:    fetcher,
		cache:      cache,
		placeTypes: cfg.PlaceTypes,
		ttl:        cfg.CacheTTL,
		maxResults: cfg.MaxResults,
		keyPlaces:  cfg.CacheKeyPlaces,
		now:        time.Now,
	}
}

// Nearby returns the merged, deduplicated places for a query. A fresh cache
// entry is served without network calls; a stale or missing entry triggers
// a full refetch and overwrite. Cache backend failures are logged and
// absorbed: the cache is an optimization, never a dependency for
// correctness.
func (s *PlacesService) Nearby(ctx context.Context, q models.NearbyQuery) ([]models.Place, error) {
	key := spatial.CacheKey(q.Lat, q.Lng, q.RadiusMeters, s.keyPlaces)

	entry, err := s.cache.Get(key)
	if err != nil {
		log.Printf("WARN places cache unavailable, fetching directly: %v", err)
		return s.fetchAndMerge(ctx, q)
	}

	if entry != nil && s.now().UnixMilli()-entry.CachedAt < s.ttl.Milliseconds() {
		return entry.Places, nil
	}

	result, err := s.fetchAndMerge(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(&models.CacheEntry{
		CacheKey: key,
		Places:   result,
		CachedAt: s.now().UnixMilli(),
	}); err != nil {
		log.Printf("WARN places cache write failed for %s: %v", key, err)
	}
	return result, nil
}

// fetchAndMerge fans out one fetch per configured category in parallel,
// awaits all, and merges the per-category lists in declared category order
// so the result is deterministic regardless of completion order. Any single
// category failure aborts the whole lookup.
func (s *PlacesService) fetchAndMerge(ctx context.Context, q models.NearbyQuery) ([]models.Place, error) {
	lists := make([][]models.Place, len(s.placeTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, placeType := range s.placeTypes {
		i, placeType := i, placeType
		g.Go(func() error {
			list, err := s.fetcher.FetchNearby(gctx, q.Lat, q.Lng, q.RadiusMeters, placeType)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", placeType, err)
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return places.MergeAll(lists, s.maxResults), nil
}

// CacheStats reports entry and stale counts for the cache table.
func (s *PlacesService) CacheStats() (*models.CacheStats, error) {
	return s.cache.Stats(s.staleCutoff())
}

// PurgeStaleCache deletes entries older than the TTL and returns the count.
func (s *PlacesService) PurgeStaleCache() (int64, error) {
	return s.cache.PurgeStale(s.staleCutoff())
}

func (s *PlacesService) staleCutoff() int64 {
	return s.now().Add(-s.ttl).UnixMilli()
}

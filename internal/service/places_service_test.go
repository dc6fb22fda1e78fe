package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dabidoe/hotspots-backend-go/internal/config"
	"github.com/dabidoe/hotspots-backend-go/internal/models"
)

// stubFetcher serves canned per-category lists and counts calls.
type stubFetcher struct {
	lists map[string][]models.Place
	errs  map[string]error
	calls int
}

func (f *stubFetcher) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]models.Place, error) {
	f.calls++
	if err := f.errs[placeType]; err != nil {
		return nil, err
	}
	return f.lists[placeType], nil
}

// memCache is an in-memory CacheStore.
type memCache struct {
	entries map[string]*models.CacheEntry
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*models.CacheEntry)}
}

func (m *memCache) Get(key string) (*models.CacheEntry, error) { return m.entries[key], nil }
func (m *memCache) Set(e *models.CacheEntry) error {
	m.sets++
	m.entries[e.CacheKey] = e
	return nil
}
func (m *memCache) Stats(cutoff int64) (*models.CacheStats, error) {
	stats := &models.CacheStats{}
	for _, e := range m.entries {
		stats.Entries++
		if e.CachedAt <= cutoff {
			stats.Stale++
		}
	}
	return stats, nil
}
func (m *memCache) PurgeStale(cutoff int64) (int64, error) {
	var n int64
	for k, e := range m.entries {
		if e.CachedAt <= cutoff {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

// failCache errors on every operation.
type failCache struct{}

func (failCache) Get(string) (*models.CacheEntry, error) {
	return nil, errors.New("cache backend unavailable")
}
func (failCache) Set(*models.CacheEntry) error { return errors.New("cache backend unavailable") }
func (failCache) Stats(int64) (*models.CacheStats, error) {
	return nil, errors.New("cache backend unavailable")
}
func (failCache) PurgeStale(int64) (int64, error) { return 0, errors.New("cache backend unavailable") }

func testConfig() *config.Config {
	return &config.Config{
		PlaceTypes:     []string{"tourist_attraction", "park", "point_of_interest"},
		CacheTTL:       24 * time.Hour,
		MaxResults:     60,
		MaxHotspots:    200,
		CacheKeyPlaces: 4,
		GridPlaces:     3,
	}
}

func mkPlaces(prefix string, n int) []models.Place {
	out := make([]models.Place, n)
	for i := range out {
		out[i] = models.Place{ID: fmt.Sprintf("%s%d", prefix, i), Name: prefix, Lat: 40, Lng: -73}
	}
	return out
}

var testQuery = models.NearbyQuery{Lat: 40.758, Lng: -73.9855, RadiusMeters: 1609}

func TestNearbyMergesCategories(t *testing.T) {
	fetcher := &stubFetcher{lists: map[string][]models.Place{
		"tourist_attraction": mkPlaces("attr", 20),
		"park":               append(mkPlaces("attr", 5), mkPlaces("park", 10)...),
		"point_of_interest":  mkPlaces("poi", 10),
	}}
	svc := NewPlacesService(fetcher, newMemCache(), testConfig())

	result, err := svc.Nearby(context.Background(), testQuery)
	if err != nil {
		t.Fatalf("Nearby error: %v", err)
	}
	if len(result) != 40 {
		t.Fatalf("len = %d, want 40 (20 + 10 + 10 after dedup)", len(result))
	}
	if fetcher.calls != 3 {
		t.Errorf("fetch calls = %d, want 3 (one per category)", fetcher.calls)
	}
	seen := map[string]bool{}
	for _, p := range result {
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestNearbyFreshHitSkipsNetwork(t *testing.T) {
	fetcher := &stubFetcher{lists: map[string][]models.Place{
		"tourist_attraction": mkPlaces("a", 3),
	}}
	cache := newMemCache()
	cfg := testConfig()
	svc := NewPlacesService(fetcher, cache, cfg)

	if _, err := svc.Nearby(context.Background(), testQuery); err != nil {
		t.Fatal(err)
	}
	callsAfterMiss := fetcher.calls

	if _, err := svc.Nearby(context.Background(), testQuery); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != callsAfterMiss {
		t.Errorf("fresh hit performed %d extra fetches", fetcher.calls-callsAfterMiss)
	}
	if cache.sets != 1 {
		t.Errorf("cache writes = %d, want 1", cache.sets)
	}
}

func TestNearbyTTLBoundary(t *testing.T) {
	fetcher := &stubFetcher{lists: map[string][]models.Place{
		"tourist_attraction": mkPlaces("a", 2),
	}}
	cache := newMemCache()
	cfg := testConfig()
	svc := NewPlacesService(fetcher, cache, cfg)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	if _, err := svc.Nearby(context.Background(), testQuery); err != nil {
		t.Fatal(err)
	}
	callsAfterWrite := fetcher.calls

	// 1ms before expiry: served from cache.
	svc.now = func() time.Time { return t0.Add(cfg.CacheTTL - time.Millisecond) }
	if _, err := svc.Nearby(context.Background(), testQuery); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != callsAfterWrite {
		t.Errorf("read at TTL-1ms hit the network (%d extra fetches)", fetcher.calls-callsAfterWrite)
	}

	// 1ms past expiry: full refetch and overwrite.
	svc.now = func() time.Time { return t0.Add(cfg.CacheTTL + time.Millisecond) }
	if _, err := svc.Nearby(context.Background(), testQuery); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls == callsAfterWrite {
		t.Error("read at TTL+1ms did not refetch")
	}
	if cache.sets != 2 {
		t.Errorf("cache writes = %d, want 2 (stale entry overwritten)", cache.sets)
	}
}

func TestNearbyDegradesWhenCacheUnavailable(t *testing.T) {
	fetcher := &stubFetcher{lists: map[string][]models.Place{
		"tourist_attraction": mkPlaces("a", 4),
	}}
	svc := NewPlacesService(fetcher, failCache{}, testConfig())

	result, err := svc.Nearby(context.Background(), testQuery)
	if err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("len = %d, want 4 (fetched directly)", len(result))
	}
}

func TestNearbyWriteFailureStillReturnsPlaces(t *testing.T) {
	fetcher := &stubFetcher{lists: map[string][]models.Place{
		"tourist_attraction": mkPlaces("a", 2),
	}}
	// Get succeeds with a miss, Set fails.
	cache := &writeFailCache{memCache: newMemCache()}
	svc := NewPlacesService(fetcher, cache, testConfig())

	result, err := svc.Nearby(context.Background(), testQuery)
	if err != nil {
		t.Fatalf("cache write failure must not surface: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("len = %d, want 2", len(result))
	}
}

type writeFailCache struct{ *memCache }

func (w *writeFailCache) Set(*models.CacheEntry) error { return errors.New("disk full") }

func TestNearbySingleCategoryFailureAbortsBatch(t *testing.T) {
	fetcher := &stubFetcher{
		lists: map[string][]models.Place{
			"tourist_attraction": mkPlaces("a", 5),
			"point_of_interest":  mkPlaces("b", 5),
		},
		errs: map[string]error{"park": errors.New("OVER_QUERY_LIMIT")},
	}
	cache := newMemCache()
	svc := NewPlacesService(fetcher, cache, testConfig())

	if _, err := svc.Nearby(context.Background(), testQuery); err == nil {
		t.Fatal("expected the whole lookup to fail when one category fails")
	}
	if cache.sets != 0 {
		t.Errorf("failed lookup wrote %d cache entries", cache.sets)
	}
}

func TestCacheStatsAndPurge(t *testing.T) {
	cache := newMemCache()
	cfg := testConfig()
	svc := NewPlacesService(&stubFetcher{}, cache, cfg)

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	cache.entries["fresh"] = &models.CacheEntry{CacheKey: "fresh", CachedAt: now.Add(-time.Hour).UnixMilli()}
	cache.entries["stale"] = &models.CacheEntry{CacheKey: "stale", CachedAt: now.Add(-25 * time.Hour).UnixMilli()}

	stats, err := svc.CacheStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 || stats.Stale != 1 {
		t.Fatalf("stats = %+v, want 2 entries / 1 stale", stats)
	}

	purged, err := svc.PurgeStaleCache()
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
}

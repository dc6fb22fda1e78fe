package places

import (
	"context"
	"sync"

	"github.com/dabidoe/hotspots-backend-go/internal/models"
	"github.com/dabidoe/hotspots-backend-go/internal/spatial"
)

// FetchFunc fetches the merged places for a center and radius, typically by
// calling the /places endpoint or the service directly.
type FetchFunc func(ctx context.Context, lat, lng float64, radiusMeters int) ([]models.Place, error)

// Accumulator maintains one session's running set of discovered hotspots
// across repeated, overlapping nearby fetches. The set only grows (bounded
// by the cap) or has entries refreshed in place; it is never cleared for the
// lifetime of the accumulator. A failed fetch preserves the prior state.
//
// Fetches are keyed by a coarse grid cell of the query center so that
// panning around within the same area does not refetch it.
type Accumulator struct {
	mu sync.Mutex

	fetch        FetchFunc
	radiusMeters int
	maxHotspots  int
	gridPlaces   int

	hotspots        []models.Place
	lastFetchedCell string
}

// NewAccumulator creates an accumulator over the given fetch function.
func NewAccumulator(fetch FetchFunc, radiusMeters, maxHotspots, gridPlaces int) *Accumulator {
	return &Accumulator{
		fetch:        fetch,
		radiusMeters: radiusMeters,
		maxHotspots:  maxHotspots,
		gridPlaces:   gridPlaces,
	}
}

// SetPosition handles the initial load and explicit position changes.
// It always fetches, records the quantized center, and merges the batch
// into the running set.
func (a *Accumulator) SetPosition(ctx context.Context, lat, lng float64) error {
	return a.fetchAndMerge(ctx, lat, lng)
}

// ViewportIdle handles the map coming to rest at a new viewport center.
// When the center falls in the same grid cell as the last fetch it is a
// no-op; otherwise it fetches and merges like SetPosition.
func (a *Accumulator) ViewportIdle(ctx context.Context, lat, lng float64) error {
	a.mu.Lock()
	same := a.lastFetchedCell != "" && a.lastFetchedCell == spatial.CellKey(lat, lng, a.gridPlaces)
	a.mu.Unlock()
	if same {
		return nil
	}
	return a.fetchAndMerge(ctx, lat, lng)
}

func (a *Accumulator) fetchAndMerge(ctx context.Context, lat, lng float64) error {
	// Fetch at the quantized center so the query matches the recorded cell.
	qLat := spatial.QuantizeCoord(lat, a.gridPlaces)
	qLng := spatial.QuantizeCoord(lng, a.gridPlaces)

	batch, err := a.fetch(ctx, qLat, qLng, a.radiusMeters)
	if err != nil {
		// Prior accumulation survives a bad follow-up fetch.
		return err
	}

	a.mu.Lock()
	a.hotspots = Merge(a.hotspots, batch, a.maxHotspots)
	a.lastFetchedCell = spatial.CellKey(lat, lng, a.gridPlaces)
	a.mu.Unlock()
	return nil
}

// Hotspots returns a copy of the accumulated set in insertion order.
func (a *Accumulator) Hotspots() []models.Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Place, len(a.hotspots))
	copy(out, a.hotspots)
	return out
}

// LastFetchedCell returns the grid cell of the most recent successful fetch,
// or "" when nothing has been fetched yet.
func (a *Accumulator) LastFetchedCell() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastFetchedCell
}

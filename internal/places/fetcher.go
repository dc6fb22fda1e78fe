package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dabidoe/hotspots-backend-go/internal/models"
)

const nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// ErrMissingAPIKey is returned when no Places API key is configured.
// A missing credential is a fatal configuration error, never an empty result.
var ErrMissingAPIKey = errors.New("GOOGLE_PLACES_API_KEY is not set")

// StatusError is a non-success status reported by the places provider.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places API error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("places API error: %s", e.Status)
}

// nearbySearchResponse is the provider's nearby-search payload.
type nearbySearchResponse struct {
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           *float64 `json:"rating,omitempty"`
		UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
		Types            []string `json:"types,omitempty"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Fetcher queries the Google Places Nearby Search API, one category per call,
// and normalizes the provider's nested response shape into models.Place.
type Fetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFetcher creates a fetcher with the given API key.
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey:  apiKey,
		baseURL: nearbySearchURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFetcherWithBaseURL creates a fetcher pointed at an alternate endpoint.
// Used by tests to target a stub provider.
func NewFetcherWithBaseURL(apiKey, baseURL string) *Fetcher {
	f := NewFetcher(apiKey)
	f.baseURL = baseURL
	return f
}

// FetchNearby fetches places of one category around a center point.
// A ZERO_RESULTS status is success with an empty list; any other non-OK
// status is an error. The ordering of the provider's results is preserved.
func (f *Fetcher) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]models.Place, error) {
	if f.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("type", placeType)
	q.Set("key", f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var nResp nearbySearchResponse
	if err := json.Unmarshal(body, &nResp); err != nil {
		return nil, fmt.Errorf("nearby search decode: %w", err)
	}

	if nResp.Status != "OK" && nResp.Status != "ZERO_RESULTS" {
		return nil, &StatusError{Status: nResp.Status, Message: nResp.ErrorMessage}
	}

	result := make([]models.Place, 0, len(nResp.Results))
	for _, r := range nResp.Results {
		result = append(result, models.Place{
			ID:          r.PlaceID,
			Name:        r.Name,
			Lat:         r.Geometry.Location.Lat,
			Lng:         r.Geometry.Location.Lng,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Types:       r.Types,
		})
	}
	return result, nil
}

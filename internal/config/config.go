package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Google Places
	PlacesAPIKey string
	PlaceTypes   []string

	// Cache / accumulation policy
	CacheTTL       time.Duration
	MaxResults     int // cap on a single merged nearby-search response
	MaxHotspots    int // cap on the session accumulator
	CacheKeyPlaces int // decimal places for the server cache key
	GridPlaces     int // decimal places for the client "same area" grid
}

// DefaultPlaceTypes are the categories queried on every nearby search.
// Kept as configuration rather than an enum so categories can be extended
// without touching the merge or cache logic.
var DefaultPlaceTypes = []string{"tourist_attraction", "park", "point_of_interest"}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/places/places.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	placeTypes := DefaultPlaceTypes
	if raw := os.Getenv("PLACE_TYPES"); raw != "" {
		placeTypes = nil
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				placeTypes = append(placeTypes, t)
			}
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		PlacesAPIKey:   os.Getenv("GOOGLE_PLACES_API_KEY"),
		PlaceTypes:     placeTypes,
		CacheTTL:       time.Duration(envInt("CACHE_TTL_HOURS", 24)) * time.Hour,
		MaxResults:     envInt("MAX_RESULTS", 60),
		MaxHotspots:    envInt("MAX_HOTSPOTS", 200),
		CacheKeyPlaces: 4,
		GridPlaces:     3,
	}
}

func envInt(key string, def int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return def
}

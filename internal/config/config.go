// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// City registry — the fixed set of target cities for every dataset
// --------------------------------------------------------------------------

type City struct {
	Name string
	Lat  float64
	Lon  float64
}

// Label implements pipeline.Labeled.
func (c City) Label() string { return c.Name }

// CityRegistry lists the cities every ingest run targets, in processing
// order. Coordinates are used where a provider accepts them directly
// (hotels, weather) instead of a name lookup.
var CityRegistry = []City{
	{Name: "New York", Lat: 40.7128, Lon: -74.0060},
	{Name: "San Francisco", Lat: 37.7749, Lon: -122.4194},
	{Name: "Chicago", Lat: 41.8781, Lon: -87.6298},
	{Name: "Seattle", Lat: 47.6062, Lon: -122.3321},
	{Name: "Las Vegas", Lat: 36.1699, Lon: -115.1398},
	{Name: "Los Angeles", Lat: 34.0522, Lon: -118.2437},
}

// CityByName returns the registry entry for a name, if present.
func CityByName(name string) (City, bool) {
	for _, c := range CityRegistry {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return City{}, false
}

// --------------------------------------------------------------------------
// Table names — single source of truth for DDL, loads, and the API
// --------------------------------------------------------------------------

const (
	AttractionsTable    = "attractions"
	HotelsTable         = "hotels"
	RestaurantsTable    = "restaurants"
	DestinationsTable   = "destinations"
	TransportationTable = "transportation_data"
	WeatherTable        = "weather_data"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Warehouse
	DatabaseURL     string
	WarehouseSchema string
	DBPoolMinConns  int
	DBPoolMaxConns  int
	DBPoolMaxLife   time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// Provider API keys
	RapidAPIKey        string
	YelpAPIKey         string
	GooglePlacesAPIKey string
	Rome2RioAPIKey     string
	OpenWeatherAPIKey  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("WAREHOUSE_DATABASE_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("WAREHOUSE_DATABASE_URL or DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:     dbURL,
		WarehouseSchema: envOr("WAREHOUSE_SCHEMA", ""),
		DBPoolMinConns:  envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns:  envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:   time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RapidAPIKey:        envOr("RAPID_API_KEY", ""),
		YelpAPIKey:         envOr("YELP_API_KEY", ""),
		GooglePlacesAPIKey: envOr("GOOGLE_PLACES_API_KEY", ""),
		Rome2RioAPIKey:     envOr("ROME2RIO_API_KEY", ""),
		OpenWeatherAPIKey:  envOr("OPENWEATHERMAP_API_KEY", ""),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	DatabaseURL string

	ListenAddr string

	// GiftsAPIURL is the base URL of the upstream gift marketplace API.
	// If empty, the catalog is served entirely from the fallback table.
	GiftsAPIURL string
	GiftsAPIKey string

	// CacheTTL bounds how long a normalized catalog snapshot (and each
	// resolved image reference) stays valid before it is recomputed.
	CacheTTL time.Duration
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		DatabaseURL: os.Getenv("APP_DATABASE_URL"),
		ListenAddr:  getenv("APP_LISTEN_ADDR", ":8080"),
		GiftsAPIURL: getenv("APP_GIFTS_API_URL", ""),
		GiftsAPIKey: getenv("APP_GIFTS_API_KEY", ""),
		CacheTTL:    300 * time.Second,
	}

	if v := os.Getenv("APP_CACHE_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.CacheTTL = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

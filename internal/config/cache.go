package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig defines settings for the catalog response cache.  When Enabled
// is false or no Redis client is available the cache middleware is a no-op.
// Catalog data changes rarely, so the default TTL is generous.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables, falling back to defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          parseDur(getenv("CACHE_TTL", "5m"), 5*time.Minute),
		Prefix:       getenv("CACHE_PREFIX", "catalog"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576"), 1<<20),
	}
}

// Helper functions shared by the loaders in this package.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func atoi(s string, d int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return i
}

func parseDur(s string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return d
	}
	return v
}

package config

import "time"

// CacheConfig defines settings for the response cache middleware.
// Caching only ever applies to GET requests on the public browse
// routes; when Enabled is false or no Redis client is available the
// middleware becomes a pass-through.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment with
// defaults suitable for small responses.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoiDefault(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

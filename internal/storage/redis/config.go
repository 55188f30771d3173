package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// RetentionTTL bounds how long session data (and therefore code
	// reservations) survive in Redis. It must comfortably exceed the
	// session TTL: a code stays unique among active and recent sessions
	// until retention expires, then recycles.
	RetentionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		RetentionTTL: 24 * time.Hour,
	}
}

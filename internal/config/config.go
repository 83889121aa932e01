// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime knobs for the membership service.
type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	ShutdownTimeout time.Duration

	// Edge rate limiting for the HTTP API.
	RateLimitPerSecond int
	RateLimitBurst     int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults. An empty
// DATABASE_URL selects the in-memory record store.
func Load() Config {
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8083"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ShutdownTimeout:    durenvs("SHUTDOWN_TIMEOUT", 15),
		RateLimitPerSecond: atoienv("RATE_LIMIT_PER_SECOND", 100),
		RateLimitBurst:     atoienv("RATE_LIMIT_BURST", 200),
	}
}

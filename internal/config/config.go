// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the HTTP server, datastore, identity
// provider, and the pricing poller.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DatabaseURL string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	PollInterval     time.Duration
	PricingCacheFile string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
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
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func durenvm(key string, defMin int) time.Duration {
	min := atoienv(key, defMin)
	return time.Duration(min) * time.Minute
}

// Load collects configuration from the environment (and an optional .env
// file) with defaults.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),

		DatabaseURL: getenv("DATABASE_URL", ""),

		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:      durenvm("TOKEN_TTL_MIN", 60),
		AdminEmail:    getenv("ADMIN_EMAIL", "owner@kpnaturals.in"),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),

		PollInterval:     durenvs("POLL_INTERVAL_SEC", 30),
		PricingCacheFile: getenv("PRICING_CACHE_FILE", ""),
	}
}

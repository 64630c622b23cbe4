package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL_MIN", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("POLL_INTERVAL_SEC", "")
	t.Setenv("PRICING_CACHE_FILE", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.DatabaseURL != "" {
		t.Fatalf("DatabaseURL default")
	}
	if c.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL default")
	}
	if c.AdminEmail != "owner@kpnaturals.in" {
		t.Fatalf("AdminEmail default")
	}
	if c.PollInterval != 30*time.Second {
		t.Fatalf("PollInterval default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL_MIN", "15")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("POLL_INTERVAL_SEC", "5")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.DatabaseURL != "postgres://localhost/storefront" {
		t.Fatalf("DatabaseURL env")
	}
	if c.JWTSecret != "s3cr3t" {
		t.Fatalf("JWTSecret env")
	}
	if c.TokenTTL != 15*time.Minute {
		t.Fatalf("TokenTTL env")
	}
	if c.AdminEmail != "ops@example.com" {
		t.Fatalf("AdminEmail env")
	}
	if c.PollInterval != 5*time.Second {
		t.Fatalf("PollInterval env")
	}
}

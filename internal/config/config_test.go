package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "BACKEND_URL", "APP_ENV", "HTTP_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.BackendURL != "http://127.0.0.1:8000" {
		t.Fatalf("backend = %q", cfg.BackendURL)
	}
	if cfg.Env != "development" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("timeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND_URL", "http://api.internal:9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_TIMEOUT", "30s")
	cfg := Load()
	if cfg.Port != "8080" || cfg.BackendURL != "http://api.internal:9000" || cfg.Env != "production" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.HTTPTimeout)
	}
}

func TestGetDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	if got := getDuration("HTTP_TIMEOUT", 15*time.Second); got != 15*time.Second {
		t.Fatalf("duration = %v", got)
	}
}

func TestParseBool(t *testing.T) {
	t.Setenv("FLAG", "true")
	if !ParseBool("FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("FLAG", "banana")
	if ParseBool("FLAG", false) {
		t.Fatal("expected default on invalid value")
	}
	t.Setenv("FLAG", "")
	if !ParseBool("FLAG", true) {
		t.Fatal("expected default when unset")
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Server.Port)
	}
	if cfg.Weather.BaseURL != "https://api.open-meteo.com" {
		t.Fatalf("unexpected weather base url: %s", cfg.Weather.BaseURL)
	}
	if cfg.Weather.CacheTTL != 30*time.Minute {
		t.Fatalf("unexpected weather cache ttl: %s", cfg.Weather.CacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WEATHER_LATITUDE", "48.8566")
	t.Setenv("WEATHER_CACHE_TTL", "1h")

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port override, got %s", cfg.Server.Port)
	}
	if cfg.Weather.Latitude != 48.8566 {
		t.Fatalf("expected latitude override, got %f", cfg.Weather.Latitude)
	}
	if cfg.Weather.CacheTTL != time.Hour {
		t.Fatalf("expected ttl override, got %s", cfg.Weather.CacheTTL)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("WEATHER_LATITUDE", "north-ish")
	if _, err := Load("does-not-exist.env"); err == nil {
		t.Fatalf("expected an error for a malformed latitude")
	}
}

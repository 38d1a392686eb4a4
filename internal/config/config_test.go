package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenWeatherAPIKey != "test-key" {
		t.Errorf("unexpected api key %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.BaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.DefaultCity != "London" {
		t.Errorf("unexpected default city %q", cfg.DefaultCity)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("unexpected timeout %v", cfg.HTTPTimeout)
	}
}

func TestLoadMissingAPIKeyIsFatal(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when OPENWEATHER_API_KEY is unset")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid HTTP_TIMEOUT")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WEATHER_DEFAULT_CITY", "Tokyo")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultCity != "Tokyo" {
		t.Errorf("expected default city Tokyo, got %q", cfg.DefaultCity)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.HTTPTimeout)
	}
}

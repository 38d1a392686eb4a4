package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// AppConfig is built once at startup and passed by reference into the
// provider client and server; there is no ambient global state.
type AppConfig struct {
	// OpenWeatherAPIKey is the only required secret. Its absence is a
	// startup-fatal error.
	OpenWeatherAPIKey string `validate:"required"`

	// BaseURL of the OpenWeatherMap API.
	BaseURL string `validate:"required,url"`

	// DefaultCity backs the weather://<city>/current resource.
	DefaultCity string `validate:"required"`

	// HTTPTimeout applies to every outbound provider call.
	HTTPTimeout time.Duration

	// HTTPAddr enables the optional HTTP debug surface when non-empty,
	// e.g. "127.0.0.1:8080".
	HTTPAddr string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		BaseURL:           getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		DefaultCity:       getenvDefault("WEATHER_DEFAULT_CITY", "London"),
		HTTPAddr:          os.Getenv("HTTP_ADDR"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

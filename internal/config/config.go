package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	DB      DBConfig
	Weather WeatherConfig
}

type ServerConfig struct {
	Port     string
	Timezone string
}

type AuthConfig struct {
	SecretKey    string
	CookieSecure bool
}

type DBConfig struct {
	Path string
}

// WeatherConfig points the weather provider at a place; defaults match
// the Open-Meteo public API.
type WeatherConfig struct {
	BaseURL     string
	Latitude    float64
	Longitude   float64
	Location    string
	RefreshSpec string
	CacheTTL    time.Duration
}

// Load reads environment variables, optionally seeded from a .env file,
// and materializes a Config. A missing .env file is fine; configuration
// may come from the environment directly.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	latitude, err := getenvFloat("WEATHER_LATITUDE", 28.6139)
	if err != nil {
		return nil, err
	}
	longitude, err := getenvFloat("WEATHER_LONGITUDE", 77.2090)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getenvDuration("WEATHER_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("PORT", "8080"),
			Timezone: getenvWithDefault("TZ", "UTC"),
		},
		Auth: AuthConfig{
			SecretKey:    getenvWithDefault("SECRET_KEY", "change_me_in_production"),
			CookieSecure: getenvBool("COOKIE_SECURE", false),
		},
		DB: DBConfig{
			Path: getenvWithDefault("DB_PATH", filepath.Join("data", "lunaria.db")),
		},
		Weather: WeatherConfig{
			BaseURL:     getenvWithDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			Latitude:    latitude,
			Longitude:   longitude,
			Location:    getenvWithDefault("WEATHER_LOCATION", "New Delhi"),
			RefreshSpec: getenvWithDefault("WEATHER_REFRESH_CRON", "*/30 * * * *"),
			CacheTTL:    cacheTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}
	if c.Auth.SecretKey == "" {
		return errors.New("SECRET_KEY must be provided")
	}
	if c.DB.Path == "" {
		return errors.New("DB_PATH must be provided")
	}
	if c.Weather.RefreshSpec == "" {
		return errors.New("WEATHER_REFRESH_CRON must be provided")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

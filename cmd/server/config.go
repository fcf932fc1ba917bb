package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/smartcity/weather-lookup/internal/domain"
)

type Config struct {
	DatabaseURL         string
	OpenWeatherAPIKey   string
	OpenWeatherEndpoint string
	DefaultCity         string
	HTTPTimeout         time.Duration
	Port                string
	Env                 string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		OpenWeatherAPIKey:   getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherEndpoint: getEnv("OPENWEATHER_ENDPOINT", ""),
		DefaultCity:         getEnv("DEFAULT_CITY", domain.DefaultCity),
		HTTPTimeout:         getDuration("WEATHER_HTTP_TIMEOUT", 10*time.Second),
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
		return defaultValue
	}
	return d
}

func (c *Config) logLevel() slog.Level {
	if c.Env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

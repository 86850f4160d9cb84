package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SourcePath      string
	SQLitePath      string
	CoordinatesPath string // optional JSON override of the embedded table
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	DateCycleDays   int
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	shutdownTimeoutStr := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	cycleDays, err := parseDateCycleDays()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SourcePath:      envOrDefault("SOURCE_PATH", "data/F-A0010-001.json"),
		SQLitePath:      envOrDefault("SQLITE_PATH", "data/weather.db"),
		CoordinatesPath: os.Getenv("COORDINATES_PATH"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DateCycleDays:   cycleDays,
	}

	if cfg.SourcePath == "" {
		return nil, errors.New("SOURCE_PATH is required")
	}
	if cfg.SQLitePath == "" {
		return nil, errors.New("SQLITE_PATH is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", cfg.LogFormat)
	}

	return cfg, nil
}

// CoordinateTable returns the location → coordinates mapping: the JSON file
// at CoordinatesPath when configured, the embedded county table otherwise.
func (c *Config) CoordinateTable() (map[string]domain.Coordinates, error) {
	if c.CoordinatesPath == "" {
		return domain.DefaultCoordinateTable(), nil
	}

	data, err := os.ReadFile(c.CoordinatesPath)
	if err != nil {
		return nil, fmt.Errorf("read coordinate table: %w", err)
	}
	var table map[string]domain.Coordinates
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse coordinate table %s: %w", c.CoordinatesPath, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("coordinate table %s is empty", c.CoordinatesPath)
	}
	return table, nil
}

func parseDateCycleDays() (int, error) {
	s := os.Getenv("DATE_CYCLE_DAYS")
	if s == "" {
		return domain.DefaultCycleDays, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid DATE_CYCLE_DAYS")
	}
	return n, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Package config loads runtime settings from the environment and the
// optional YAML weights file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables
const (
	EnvDBPath          = "ORDERSEED_DB_PATH"
	EnvHistoricalCount = "ORDERSEED_HISTORICAL_COUNT"
	EnvRecentCount     = "ORDERSEED_RECENT_COUNT"
	EnvWeightsFile     = "ORDERSEED_WEIGHTS_FILE"
	EnvMetricsAddr     = "ORDERSEED_METRICS_ADDR"
	EnvTimezone        = "ORDERSEED_TIMEZONE"
)

const (
	// DefaultDBPath is the database used when ORDERSEED_DB_PATH is unset
	DefaultDBPath = "orderseed.db"

	DefaultHistoricalCount = 10000
	DefaultRecentCount     = 50
)

// ErrInvalidConfig is returned for environment values that cannot be used
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the process configuration
type Config struct {
	DBPath          string
	HistoricalCount int
	RecentCount     int
	WeightsFile     string         // Optional YAML overrides for weights and schedule
	MetricsAddr     string         // Serve /metrics here when set
	Location        *time.Location // Business-hours time zone
}

// Default returns the configuration used when no variable is set
func Default() *Config {
	return &Config{
		DBPath:          DefaultDBPath,
		HistoricalCount: DefaultHistoricalCount,
		RecentCount:     DefaultRecentCount,
		Location:        time.Local,
	}
}

// FromEnv reads the configuration from ORDERSEED_* variables, falling back
// to Default for anything unset
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	cfg.WeightsFile = os.Getenv(EnvWeightsFile)
	cfg.MetricsAddr = os.Getenv(EnvMetricsAddr)

	var err error
	if cfg.HistoricalCount, err = countFromEnv(EnvHistoricalCount, cfg.HistoricalCount); err != nil {
		return nil, err
	}
	if cfg.RecentCount, err = countFromEnv(EnvRecentCount, cfg.RecentCount); err != nil {
		return nil, err
	}

	if tz := os.Getenv(EnvTimezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimezone, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func countFromEnv(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidConfig, name, v)
	}
	return n, nil
}

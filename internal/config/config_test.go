package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{EnvDBPath, EnvHistoricalCount, EnvRecentCount, EnvWeightsFile, EnvMetricsAddr, EnvTimezone} {
		t.Setenv(name, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, 10000, cfg.HistoricalCount)
	assert.Equal(t, 50, cfg.RecentCount)
	assert.Empty(t, cfg.WeightsFile)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBPath, "/tmp/orders.db")
	t.Setenv(EnvHistoricalCount, "250")
	t.Setenv(EnvRecentCount, "0")
	t.Setenv(EnvMetricsAddr, ":9090")
	t.Setenv(EnvTimezone, "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/orders.db", cfg.DBPath)
	assert.Equal(t, 250, cfg.HistoricalCount)
	assert.Equal(t, 0, cfg.RecentCount)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"non-numeric count", EnvHistoricalCount, "lots"},
		{"negative count", EnvRecentCount, "-1"},
		{"unknown timezone", EnvTimezone, "Mars/Olympus_Mons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := FromEnv()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

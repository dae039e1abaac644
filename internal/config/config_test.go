package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.InDelta(t, 2.5, cfg.RevenueMultiplier, 1e-9)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REVENUE_MULTIPLIER", "3.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 3.5, cfg.RevenueMultiplier, 1e-9)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("ASSETS_BASE_URL", "")
	t.Setenv("STATS_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "https://assets.deadlock-api.com", cfg.AssetsBaseURL)
	assert.Equal(t, "https://api.deadlock-api.com", cfg.StatsBaseURL)
	assert.Equal(t, ":8080", cfg.HealthAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STATS_BASE_URL", "http://localhost:3000")
	t.Setenv("DATA_DIR", "/tmp/dumps")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.StatsBaseURL)
	assert.Equal(t, filepath.Join("/tmp/dumps", "items.json"), cfg.ItemDataPath())
}

func TestValidateMissingToken(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.DiscordToken = "token"
	assert.NoError(t, cfg.Validate())
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcrm/fitcrm/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, "fitcrm_clients_v2", cfg.Storage.Slot)
	assert.Equal(t, 150, cfg.Enrichment.BatchLimit)
	assert.Equal(t, 5, cfg.Enrichment.PickCount)
	assert.Equal(t, 180, cfg.Enrichment.TruncateAt)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty data dir", func(c *config.Config) { c.Storage.DataDir = "" }},
		{"bad backend", func(c *config.Config) { c.Storage.Backend = "postgres" }},
		{"empty slot", func(c *config.Config) { c.Storage.Slot = "" }},
		{"empty base url", func(c *config.Config) { c.Enrichment.BaseURL = "" }},
		{"zero timeout", func(c *config.Config) { c.Enrichment.Timeout = 0 }},
		{"zero batch limit", func(c *config.Config) { c.Enrichment.BatchLimit = 0 }},
		{"zero pick count", func(c *config.Config) { c.Enrichment.PickCount = 0 }},
		{"zero truncate", func(c *config.Config) { c.Enrichment.TruncateAt = 0 }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Storage.Slot, cfg.Storage.Slot)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fitcrm.json")
	body := `{
        "storage": {"data_dir": "/tmp/fit-test", "backend": "sqlite"},
        "enrichment": {"timeout": "3s", "pick_count": 3},
        "log": {"level": "debug"}
    }`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fit-test", cfg.Storage.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 3*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, 3, cfg.Enrichment.PickCount)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset keys keep their defaults
	assert.Equal(t, "fitcrm_clients_v2", cfg.Storage.Slot)
	assert.Equal(t, 150, cfg.Enrichment.BatchLimit)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fitcrm.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storage": {"backend": "postgres"}}`), 0600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FITCRM_LOG_LEVEL", "debug")
	t.Setenv("FITCRM_STORAGE_BACKEND", "sqlite")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = filepath.Join(dir, "data")
	cfg.Log.File = filepath.Join(dir, "logs", "fitcrm.log")

	require.NoError(t, cfg.EnsureDirectories())

	info, err := os.Stat(cfg.Storage.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

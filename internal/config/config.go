package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Storage paths and backend selection
	Storage StorageConfig `json:"storage" mapstructure:"storage"`

	// Exercise suggestion provider
	Enrichment EnrichmentConfig `json:"enrichment" mapstructure:"enrichment"`

	// Logging
	Log LogConfig `json:"log" mapstructure:"log"`
}

// StorageConfig for the local record store.
type StorageConfig struct {
	DataDir string `json:"data_dir" mapstructure:"data_dir"` // Base directory for all data
	Backend string `json:"backend" mapstructure:"backend"`   // json or sqlite
	Slot    string `json:"slot" mapstructure:"slot"`         // Collection slot name
}

// EnrichmentConfig for the exercise suggestion fetch.
type EnrichmentConfig struct {
	BaseURL    string        `json:"base_url" mapstructure:"base_url"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	MaxRetries int           `json:"max_retries" mapstructure:"max_retries"`
	BatchLimit int           `json:"batch_limit" mapstructure:"batch_limit"` // Items requested per fetch
	PickCount  int           `json:"pick_count" mapstructure:"pick_count"`   // Suggestions shown
	TruncateAt int           `json:"truncate_at" mapstructure:"truncate_at"` // Description display length
	UserAgent  string        `json:"user_agent" mapstructure:"user_agent"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // text, json
	File   string `json:"file" mapstructure:"file"`     // Log file path (empty = stderr)
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: ".fitcrm",
			Backend: "json",
			Slot:    "fitcrm_clients_v2",
		},
		Enrichment: EnrichmentConfig{
			BaseURL:    "https://wger.de/api/v2",
			Timeout:    10 * time.Second,
			MaxRetries: 2,
			BatchLimit: 150,
			PickCount:  5,
			TruncateAt: 180,
			UserAgent:  "fitcrm/1.0",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	if c.Storage.Backend != "json" && c.Storage.Backend != "sqlite" {
		return fmt.Errorf("invalid storage backend: %s", c.Storage.Backend)
	}

	if c.Storage.Slot == "" {
		return errors.New("storage.slot is required")
	}

	if c.Enrichment.BaseURL == "" {
		return errors.New("enrichment.base_url is required")
	}

	if c.Enrichment.Timeout <= 0 {
		return errors.New("enrichment.timeout must be positive")
	}

	if c.Enrichment.BatchLimit <= 0 {
		return errors.New("enrichment.batch_limit must be positive")
	}

	if c.Enrichment.PickCount <= 0 {
		return errors.New("enrichment.pick_count must be positive")
	}

	if c.Enrichment.TruncateAt <= 0 {
		return errors.New("enrichment.truncate_at must be positive")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Storage.DataDir}

	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

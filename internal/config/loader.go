package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment. An empty configPath
// searches the default locations; a missing file is not an error, the
// defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("fitcrm")
		for _, dir := range defaultSearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("FITCRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers defaults so env-only overrides still merge over a
// complete config.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.slot", cfg.Storage.Slot)
	v.SetDefault("enrichment.base_url", cfg.Enrichment.BaseURL)
	v.SetDefault("enrichment.timeout", cfg.Enrichment.Timeout)
	v.SetDefault("enrichment.max_retries", cfg.Enrichment.MaxRetries)
	v.SetDefault("enrichment.batch_limit", cfg.Enrichment.BatchLimit)
	v.SetDefault("enrichment.pick_count", cfg.Enrichment.PickCount)
	v.SetDefault("enrichment.truncate_at", cfg.Enrichment.TruncateAt)
	v.SetDefault("enrichment.user_agent", cfg.Enrichment.UserAgent)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "fitcrm"),
			filepath.Join(home, ".fitcrm"),
		)
	}
	return paths
}

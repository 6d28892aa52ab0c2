// Package config loads the application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	// DataDir holds the per-patch knowledge snapshots.
	DataDir string `yaml:"data_dir"`
	// Patch pins the pipeline to a specific patch. Empty means resolve the
	// current one from the data directory.
	Patch string `yaml:"patch"`
	// DefaultsPath overrides the embedded build-defaults table.
	DefaultsPath string `yaml:"defaults_path"`

	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	Watcher WatcherConfig `yaml:"watcher"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type WatcherConfig struct {
	Dir string `yaml:"dir"`
}

type IngestConfig struct {
	// BaseURL is the Data Dragon endpoint root.
	BaseURL string `yaml:"base_url"`
	// Locale selects the static-data language.
	Locale string `yaml:"locale"`
	// IndexPath is the sqlite champion search index. Empty disables it.
	IndexPath string `yaml:"index_path"`
}

// Load reads configuration from path, or returns the defaults when path is
// empty. Every key can be overridden through a RIFTCOACH_-prefixed
// environment variable (dots become underscores).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix("RIFTCOACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8088")
	v.SetDefault("ingest.base_url", "https://ddragon.leagueoflegends.com")
	v.SetDefault("ingest.locale", "en_US")
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr cannot be empty")
	}
	if strings.TrimSpace(cfg.Ingest.BaseURL) == "" {
		return fmt.Errorf("ingest.base_url cannot be empty")
	}
	return nil
}

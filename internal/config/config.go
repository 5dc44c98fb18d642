// Package config loads eurodiff settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/euro-diffusion/internal/engine"
)

// Config is the full settings tree.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

type SimulationConfig struct {
	InitialCount int64 `yaml:"initial_count"`
	Portion      int64 `yaml:"representative_portion"`
	MaxDays      int   `yaml:"max_days"`
}

type StorageConfig struct {
	DBPath     string `yaml:"db_path"`     // Empty disables run history
	ExportPath string `yaml:"export_path"` // Empty disables export
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, text, json
}

// Default returns the settings used when no file is given.
func Default() Config {
	p := engine.DefaultParams()
	return Config{
		Simulation: SimulationConfig{
			InitialCount: p.InitialCount,
			Portion:      p.Portion,
			MaxDays:      p.MaxDays,
		},
		Log: LogConfig{Level: "info", Format: "auto"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Storage.DBPath = envOrDefault("EURODIFF_DB_PATH", c.Storage.DBPath)
	c.Storage.ExportPath = envOrDefault("EURODIFF_EXPORT_PATH", c.Storage.ExportPath)
	c.Log.Level = envOrDefault("EURODIFF_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("EURODIFF_LOG_FORMAT", c.Log.Format)
}

// Validate checks simulation parameters and log settings.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log format %q: want auto, text or json", c.Log.Format)
	}
	return nil
}

// Params returns the engine parameters.
func (c Config) Params() engine.Params {
	return engine.Params{
		InitialCount: c.Simulation.InitialCount,
		Portion:      c.Simulation.Portion,
		MaxDays:      c.Simulation.MaxDays,
	}
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

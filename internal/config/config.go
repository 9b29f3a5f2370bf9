// Package config loads engine configuration from defaults, an optional YAML
// file, and UIWALK_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration.
type Config struct {
	// MaxDepth bounds the upward tree walk (cyclic-tree guard).
	MaxDepth int `yaml:"max_depth" envconfig:"MAX_DEPTH"`

	// TimeoutMs bounds each engine operation; a timed-out platform query is
	// abandoned, not retried.
	TimeoutMs int `yaml:"timeout_ms" envconfig:"TIMEOUT_MS"`

	// TreeFile points at a synthetic tree fixture; empty selects the native
	// platform backend.
	TreeFile string `yaml:"tree_file" envconfig:"TREE_FILE"`

	// MetricsAddr exposes Prometheus metrics when serving; empty disables.
	MetricsAddr string `yaml:"metrics_addr" envconfig:"METRICS_ADDR"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the logger and session log files.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
	// Dir enables per-session log files when set.
	Dir string `yaml:"dir" envconfig:"LOG_DIR"`
	// KeepFiles is how many old session logs survive cleanup.
	KeepFiles int `yaml:"keep_files" envconfig:"LOG_KEEP_FILES"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth:  64,
		TimeoutMs: 5000,
		Log: LogConfig{
			Level:     "info",
			KeepFiles: 10,
		},
	}
}

// Load builds the effective configuration. path may be empty (no file).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("uiwalk", &cfg); err != nil {
		return Config{}, fmt.Errorf("env overrides: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	return nil
}

// Timeout returns the per-operation timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

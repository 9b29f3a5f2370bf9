package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/config"
	"github.com/uiwalk/uiwalk/internal/engine"
	"github.com/uiwalk/uiwalk/internal/logging"
	"github.com/uiwalk/uiwalk/internal/platform"
	"github.com/uiwalk/uiwalk/internal/platform/synthetic"
)

// loadConfig resolves the effective configuration: file (if --config given),
// then environment, then explicit flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("tree") {
		cfg.TreeFile, _ = cmd.Flags().GetString("tree")
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
	}
	if cmd.Flags().Changed("timeout-ms") {
		cfg.TimeoutMs, _ = cmd.Flags().GetInt("timeout-ms")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, nil
}

// newLogger builds the logger; with Log.Dir set it writes a per-session
// log file and prunes old ones.
func newLogger(cfg config.Config) (*logging.Logger, error) {
	lc := logging.DefaultConfig()
	if cfg.Log.Level != "" {
		lc.Level = cfg.Log.Level
	}
	if cfg.Log.Dir != "" {
		path, err := logging.SessionFile(cfg.Log.Dir)
		if err != nil {
			return nil, err
		}
		if err := logging.CleanupOldLogs(cfg.Log.Dir, cfg.Log.KeepFiles); err != nil {
			return nil, err
		}
		lc.OutputPaths = []string{path}
	}
	return logging.New(lc)
}

// newAdapter selects the synthetic fixture backend when TreeFile is set,
// otherwise the registered native backend.
func newAdapter(cfg config.Config) (platform.Adapter, error) {
	if cfg.TreeFile != "" {
		return synthetic.LoadFile(cfg.TreeFile)
	}
	return platform.NewAdapter()
}

// newEngine wires config, logger and adapter into an initialized engine.
// The caller owns the returned engine and must UnInit it.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	ad, err := newAdapter(cfg)
	if err != nil {
		return nil, err
	}
	eng := engine.New(ad, engine.Options{
		MaxDepth: cfg.MaxDepth,
		Timeout:  cfg.Timeout(),
		Logger:   log,
	})
	if err := eng.Init(); err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}
	return eng, nil
}

// Parameter extraction helpers for MCP tool arguments.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

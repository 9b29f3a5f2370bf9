package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != 64 {
		t.Errorf("MaxDepth = %d, want 64", cfg.MaxDepth)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout())
	}
	if cfg.Log.Level != "info" || cfg.Log.KeepFiles != 10 {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uiwalk.yaml")
	doc := []byte(`
max_depth: 32
timeout_ms: 250
tree_file: fixtures/app.yaml
log:
  level: debug
  dir: /tmp/uiwalk-logs
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 32 {
		t.Errorf("MaxDepth = %d, want 32", cfg.MaxDepth)
	}
	if cfg.Timeout() != 250*time.Millisecond {
		t.Errorf("Timeout = %v, want 250ms", cfg.Timeout())
	}
	if cfg.TreeFile != "fixtures/app.yaml" {
		t.Errorf("TreeFile = %q", cfg.TreeFile)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Dir != "/tmp/uiwalk-logs" {
		t.Errorf("log config = %+v", cfg.Log)
	}
	// Unset file fields keep their defaults.
	if cfg.Log.KeepFiles != 10 {
		t.Errorf("KeepFiles = %d, want default 10", cfg.Log.KeepFiles)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("UIWALK_MAX_DEPTH", "16")
	t.Setenv("UIWALK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 16 {
		t.Errorf("MaxDepth = %d, want env override 16", cfg.MaxDepth)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("UIWALK_MAX_DEPTH", "0")
	if _, err := Load(""); err == nil {
		t.Error("expected validation error for max_depth 0")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

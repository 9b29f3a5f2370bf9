package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	if err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewDefault(t *testing.T) {
	log := NewDefault()
	if log == nil || log.Logger == nil {
		t.Fatal("NewDefault returned nil logger")
	}
	log.Info("default logger works")
}

func TestSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	path, err := SessionFile(dir)
	if err != nil {
		t.Fatalf("SessionFile: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("session file %q not under %q", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "uiwalk_") || !strings.HasSuffix(base, ".log") {
		t.Errorf("unexpected session file name %q", base)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("log dir not created: %v", err)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"uiwalk_20240101_000000.log",
		"uiwalk_20240102_000000.log",
		"uiwalk_20240103_000000.log",
		"uiwalk_20240104_000000.log",
		"other.log",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CleanupOldLogs(dir, 2); err != nil {
		t.Fatalf("CleanupOldLogs: %v", err)
	}

	left, err := filepath.Glob(filepath.Join(dir, "uiwalk_*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 2 {
		t.Fatalf("kept %d session logs, want 2: %v", len(left), left)
	}
	for _, p := range left {
		base := filepath.Base(p)
		if base != "uiwalk_20240103_000000.log" && base != "uiwalk_20240104_000000.log" {
			t.Errorf("wrong file kept: %s", base)
		}
	}
	// Non-session files are untouched.
	if _, err := os.Stat(filepath.Join(dir, "other.log")); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
}

func TestCleanupOldLogs_MissingDir(t *testing.T) {
	if err := CleanupOldLogs(filepath.Join(t.TempDir(), "nope"), 3); err != nil {
		t.Errorf("missing dir should be fine: %v", err)
	}
}

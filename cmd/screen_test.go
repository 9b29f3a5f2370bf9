package cmd

import (
	"strings"
	"testing"
)

func TestScreenCommand_Fixture(t *testing.T) {
	out, err := runCommand(t, "screen", "--tree", sampleTree)
	if err != nil {
		t.Fatalf("screen failed: %v", err)
	}
	if !strings.Contains(out, "width: 1920") || !strings.Contains(out, "height: 1080") {
		t.Errorf("expected screen dimensions in output, got:\n%s", out)
	}
}

func TestCursorCommand_Fixture(t *testing.T) {
	out, err := runCommand(t, "cursor", "--tree", sampleTree)
	if err != nil {
		t.Fatalf("cursor failed: %v", err)
	}
	if !strings.Contains(out, "x:") || !strings.Contains(out, "y:") {
		t.Errorf("expected cursor coordinates in output, got:\n%s", out)
	}
}

package cmd

import (
	"strings"
	"testing"
)

func TestFindCommand_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "find" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'find' subcommand to be registered")
	}
}

func TestFindCommand_Fixture(t *testing.T) {
	out, err := runCommand(t, "find", "/panel[0]/button[2]", "--tree", sampleTree)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.Contains(out, "Submit") {
		t.Errorf("expected Submit in output, got:\n%s", out)
	}
}

func TestFindCommand_BadLocator(t *testing.T) {
	_, err := runCommand(t, "find", "panel[0]", "--tree", sampleTree)
	if err == nil {
		t.Fatal("expected parse error for locator without leading slash")
	}
}

func TestFindCommand_NoMatch(t *testing.T) {
	_, err := runCommand(t, "find", "/panel[0]/button[9]", "--tree", sampleTree)
	if err == nil {
		t.Fatal("expected error for locator with no matching element")
	}
}

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/uiwalk/uiwalk/internal/model"
)

func capture(t *testing.T, format Format, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	origW, origF := Writer, OutputFormat
	Writer, OutputFormat = &buf, format
	defer func() { Writer, OutputFormat = origW, origF }()

	if err := Print(v); err != nil {
		t.Fatalf("Print: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	res := ResolveResult{
		Locator: "/panel[0]/button[2]",
		Element: model.ElementInfo{
			Role: "button", Name: "Submit", RuntimeID: "42.7",
			Rect: model.Rect{Left: 90, Top: 40, Right: 160, Bottom: 70},
		},
	}
	out := capture(t, FormatJSON, res)

	var back ResolveResult
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back.Locator != res.Locator || back.Element != res.Element {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if strings.Contains(out, "\n  ") {
		t.Error("compact JSON should not be indented")
	}
}

func TestPrintYAML(t *testing.T) {
	out := capture(t, FormatYAML, HighlightResult{
		RuntimeID: "42.7",
		Rect:      model.Rect{Left: 90, Top: 40, Right: 160, Bottom: 70},
	})
	if !strings.Contains(out, "runtime_id: 42.7") {
		t.Errorf("yaml output missing runtime_id: %q", out)
	}
	if !strings.Contains(out, "left: 90") {
		t.Errorf("yaml output missing rect: %q", out)
	}
}

func TestPrint_UnknownFormat(t *testing.T) {
	origF := OutputFormat
	OutputFormat = Format("xml")
	defer func() { OutputFormat = origF }()

	if err := Print(CursorResult{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/uiwalk/uiwalk/internal/config"
)

func TestServeCommand_HasExpectedFlags(t *testing.T) {
	for _, name := range []string{"transport", "port", "metrics-addr"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s on serve command", name)
		}
	}
}

func newTestMCPServer(t *testing.T) *mcpServer {
	t.Helper()
	cfg := config.Default()
	cfg.TreeFile = sampleTree
	srv, err := newMCPServer(cfg)
	if err != nil {
		t.Fatalf("newMCPServer: %v", err)
	}
	t.Cleanup(srv.close)
	return srv
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestMCPServer_EngineStaysInitialized(t *testing.T) {
	srv := newTestMCPServer(t)
	if !srv.eng.Initialized() {
		t.Error("expected engine to be initialized while serving")
	}
}

func TestMCPServer_HandleResolve(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleResolve(context.Background(), toolRequest(map[string]interface{}{
		"x": float64(100), "y": float64(50),
	}))
	if err != nil {
		t.Fatalf("handleResolve: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}
	text := textOf(t, result)
	if !strings.Contains(text, "/panel[0]/button[2]") {
		t.Errorf("expected locator in result, got:\n%s", text)
	}
}

func TestMCPServer_ResolveThenHighlight(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleResolve(context.Background(), toolRequest(map[string]interface{}{
		"x": float64(100), "y": float64(50),
	}))
	if err != nil || result.IsError {
		t.Fatalf("handleResolve failed: %v %v", err, result)
	}

	// Pull the runtime ID back out of the YAML text.
	var id string
	for _, line := range strings.Split(textOf(t, result), "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "runtime_id:"); ok {
			id = strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	if id == "" {
		t.Fatal("no runtime_id in resolve result")
	}

	hl, err := srv.handleHighlight(context.Background(), toolRequest(map[string]interface{}{
		"id": id,
	}))
	if err != nil {
		t.Fatalf("handleHighlight: %v", err)
	}
	if hl.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, hl))
	}
	if text := textOf(t, hl); !strings.Contains(text, "left: 90") {
		t.Errorf("expected Submit bounds in highlight result, got:\n%s", text)
	}
}

func TestMCPServer_HandleResolveNoElement(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleResolve(context.Background(), toolRequest(map[string]interface{}{
		"x": float64(1900), "y": float64(1000),
	}))
	if err != nil {
		t.Fatalf("handleResolve: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for a point with no element")
	}
}

func TestMCPServer_HandleFindBadLocator(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleFind(context.Background(), toolRequest(map[string]interface{}{
		"locator": "button[2]",
	}))
	if err != nil {
		t.Fatalf("handleFind: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for malformed locator")
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"s": "hello",
		"f": float64(42),
		"i": 7,
		"b": true,
	}
	if got := stringParam(params, "s", ""); got != "hello" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "missing", "dflt"); got != "dflt" {
		t.Errorf("stringParam default = %q", got)
	}
	if got := intParam(params, "f", 0); got != 42 {
		t.Errorf("intParam(float64) = %d", got)
	}
	if got := intParam(params, "i", 0); got != 7 {
		t.Errorf("intParam(int) = %d", got)
	}
	if got := intParam(params, "missing", -1); got != -1 {
		t.Errorf("intParam default = %d", got)
	}
	if got := boolParam(params, "b", false); !got {
		t.Error("boolParam = false, want true")
	}
}

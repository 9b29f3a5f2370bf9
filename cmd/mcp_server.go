package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/uiwalk/uiwalk/internal/config"
	"github.com/uiwalk/uiwalk/internal/engine"
	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/output"
	"github.com/uiwalk/uiwalk/internal/version"
)

// mcpServer wraps the MCP server around a long-lived engine.
type mcpServer struct {
	eng        *engine.Engine
	mcp        *mcpserver.MCPServer
	metricsSrv *http.Server
}

// newMCPServer builds an initialized engine and registers all uiwalk tools.
func newMCPServer(cfg config.Config) (*mcpServer, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	ad, err := newAdapter(cfg)
	if err != nil {
		return nil, err
	}

	opts := engine.Options{
		MaxDepth: cfg.MaxDepth,
		Timeout:  cfg.Timeout(),
		Logger:   log,
	}

	s := &mcpServer{}
	if cfg.MetricsAddr != "" {
		opts.Metrics = engine.NewMetrics(prometheus.DefaultRegisterer)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		s.metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	s.eng = engine.New(ad, opts)
	if err := s.eng.Init(); err != nil {
		return nil, err
	}

	s.mcp = mcpserver.NewMCPServer("uiwalk", version.Version)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the requested transport.
func (s *mcpServer) serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *mcpServer) close() {
	s.eng.UnInit()
	if s.metricsSrv != nil {
		s.metricsSrv.Close()
	}
}

func (s *mcpServer) registerTools() {
	// resolve
	s.mcp.AddTool(
		mcp.NewTool("resolve",
			mcp.WithDescription("Resolve the UI element under a screen coordinate to a structural locator. The element is cached by runtime ID for later highlight calls."),
			mcp.WithNumber("x", mcp.Description("Screen X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Screen Y coordinate"), mcp.Required()),
		),
		s.handleResolve,
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find the element a structural locator points at (e.g. /window[0]/panel[1]/button[2])."),
			mcp.WithString("locator", mcp.Description("Structural locator"), mcp.Required()),
		),
		s.handleFind,
	)

	// highlight
	s.mcp.AddTool(
		mcp.NewTool("highlight",
			mcp.WithDescription("Report the current bounding rectangle of a previously resolved element by its runtime ID."),
			mcp.WithString("id", mcp.Description("Runtime ID from an earlier resolve"), mcp.Required()),
		),
		s.handleHighlight,
	)

	// cursor
	s.mcp.AddTool(
		mcp.NewTool("cursor",
			mcp.WithDescription("Report the current cursor position"),
		),
		s.handleCursor,
	)

	// screen
	s.mcp.AddTool(
		mcp.NewTool("screen",
			mcp.WithDescription("Report the screen dimensions and scale factor"),
		),
		s.handleScreen,
	)
}

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func (s *mcpServer) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)

	loc, info, err := s.eng.Resolve(ctx, x, y)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.ResolveResult{Locator: loc.String(), Element: info})), nil
}

func (s *mcpServer) handleFind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	raw := stringParam(params, "locator", "")

	loc, err := model.ParseLocator(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.eng.Find(ctx, loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.ResolveResult{Locator: loc.String(), Element: info})), nil
}

func (s *mcpServer) handleHighlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := model.RuntimeID(stringParam(params, "id", ""))

	rect, err := s.eng.Highlight(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.HighlightResult{RuntimeID: id, Rect: rect})), nil
}

func (s *mcpServer) handleCursor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, y, err := s.eng.CursorPos(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.CursorResult{X: x, Y: y})), nil
}

func (s *mcpServer) handleScreen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	screen, err := s.eng.Screen(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.ScreenResult{Screen: screen})), nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing uiwalk tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes resolve, find,
highlight, cursor and screen as tools. The engine stays initialized for
the lifetime of the server, so runtime IDs returned by resolve remain
valid for later highlight calls.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uiwalk serve --tree fixtures/form.yaml
  uiwalk serve --transport streamable-http --port 8080
  uiwalk serve --metrics-addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.close()

	return srv.serve(transport, port)
}

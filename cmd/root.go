package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/output"
	"github.com/uiwalk/uiwalk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uiwalk",
	Short: "Resolve desktop UI elements to structural locators",
	Long: `uiwalk walks the OS accessibility tree to answer two questions:
which element sits under a screen coordinate, and where is a previously
seen element now. Elements are addressed by structural locators like
/window[0]/panel[1]/button[2] and cached by their durable runtime IDs.

Without a native accessibility backend, point uiwalk at a synthetic tree
fixture with --tree (a YAML file describing roles, names and bounds).`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("tree", "", "Synthetic tree fixture (YAML) instead of the native backend")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Max upward walk depth (0 = default)")
	rootCmd.PersistentFlags().Int("timeout-ms", 0, "Per-operation timeout in milliseconds (0 = default)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}

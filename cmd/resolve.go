package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/output"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <x> <y>",
	Short: "Resolve the element under a screen coordinate",
	Long: `Resolve the UI element under a screen coordinate to a structural
locator, caching it by runtime ID so it can be highlighted later.

Examples:
  uiwalk resolve 100 50 --tree fixtures/form.yaml
  uiwalk resolve 640 480 --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.UnInit()

	loc, info, err := eng.Resolve(cmd.Context(), x, y)
	if err != nil {
		return err
	}
	return output.Print(output.ResolveResult{Locator: loc.String(), Element: info})
}

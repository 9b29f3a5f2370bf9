package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find <locator>",
	Short: "Find the element a structural locator points at",
	Long: `Walk the tree from the root following a structural locator and report
the element it lands on, if any.

Example:
  uiwalk find "/window[0]/panel[1]/button[2]" --tree fixtures/form.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFindLocator,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFindLocator(cmd *cobra.Command, args []string) error {
	loc, err := model.ParseLocator(args[0])
	if err != nil {
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.UnInit()

	info, err := eng.Find(cmd.Context(), loc)
	if err != nil {
		return err
	}
	return output.Print(output.ResolveResult{Locator: loc.String(), Element: info})
}

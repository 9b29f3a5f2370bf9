package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/output"
)

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Report the current cursor position",
	RunE:  runCursor,
}

func init() {
	rootCmd.AddCommand(cursorCmd)
}

func runCursor(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.UnInit()

	x, y, err := eng.CursorPos(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(output.CursorResult{X: x, Y: y})
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/output"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Report the screen dimensions and scale factor",
	RunE:  runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.UnInit()

	screen, err := eng.Screen(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(output.ScreenResult{Screen: screen})
}

package cmd

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/uiwalk/uiwalk/internal/engine"
	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/output"
	"github.com/uiwalk/uiwalk/internal/overlay"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [<x> <y>]",
	Short: "Report the current bounds of a cached element",
	Long: `Report the current bounding rectangle of an element. With coordinates
the element under the point is resolved first and then highlighted; with
--id a runtime ID from an earlier resolve is looked up directly.

With --out the highlight is rendered onto a screen-sized canvas and
written as a PNG.

Examples:
  uiwalk highlight 100 50 --tree fixtures/form.yaml
  uiwalk highlight --id 41.7 --out /tmp/highlight.png --label "Submit"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().String("id", "", "Runtime ID of a previously resolved element")
	highlightCmd.Flags().String("out", "", "Write the highlight as a PNG to this path")
	highlightCmd.Flags().String("label", "", "Label to draw next to the frame (requires --out)")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	idFlag, _ := cmd.Flags().GetString("id")
	outPath, _ := cmd.Flags().GetString("out")
	label, _ := cmd.Flags().GetString("label")

	if idFlag == "" && len(args) != 2 {
		return fmt.Errorf("either --id or both <x> <y> coordinates are required")
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer eng.UnInit()

	id := model.RuntimeID(idFlag)
	if id == "" {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		_, info, err := eng.Resolve(cmd.Context(), x, y)
		if err != nil {
			return err
		}
		id = info.RuntimeID
	}

	rect, err := eng.Highlight(cmd.Context(), id)
	if err != nil {
		return err
	}

	result := output.HighlightResult{RuntimeID: id, Rect: rect}
	if outPath != "" {
		if err := writeHighlightPNG(cmd, eng, rect, label, outPath); err != nil {
			return err
		}
		result.Image = outPath
	}
	return output.Print(result)
}

// writeHighlightPNG renders the rect onto a screen-sized canvas and encodes it.
func writeHighlightPNG(cmd *cobra.Command, eng *engine.Engine, rect model.Rect, label, path string) error {
	screen, err := eng.Screen(cmd.Context())
	if err != nil {
		return err
	}
	img := overlay.NewCanvas(screen.Width, screen.Height)
	overlay.DrawHighlight(img, rect, label)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

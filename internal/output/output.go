// Package output serializes command results to stdout in the selected
// format.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's
// --format flag.
var OutputFormat = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer is where results go; tests redirect it.
var Writer io.Writer = os.Stdout

// ResolveResult is the output of the `resolve` and `find` commands.
type ResolveResult struct {
	Locator string            `yaml:"locator" json:"locator"`
	Element model.ElementInfo `yaml:"element" json:"element"`
}

// HighlightResult is the output of the `highlight` command.
type HighlightResult struct {
	RuntimeID model.RuntimeID `yaml:"runtime_id"    json:"runtime_id"`
	Rect      model.Rect      `yaml:"rect"          json:"rect"`
	Image     string          `yaml:"image,omitempty" json:"image,omitempty"`
}

// CursorResult is the output of the `cursor` command.
type CursorResult struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// ScreenResult is the output of the `screen` command.
type ScreenResult struct {
	Screen platform.ScreenInfo `yaml:"screen" json:"screen"`
}

// Print serializes v in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return printPrettyJSON(v)
		}
		return printJSON(v)
	case FormatYAML:
		return printYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(Writer)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

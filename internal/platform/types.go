package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// ScreenInfo describes the primary display.
type ScreenInfo struct {
	Width  int     `yaml:"width"  json:"width"`
	Height int     `yaml:"height" json:"height"`
	Scale  float64 `yaml:"scale"  json:"scale"` // DPI scale factor, 1.0 = 96 dpi
}

// ParsePoint parses an "x,y" string into screen coordinates.
func ParsePoint(s string) (x, y int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

package model

import "fmt"

// Rect is a screen-space bounding rectangle in physical pixels, origin at the
// top-left of the primary display. Right and Bottom are exclusive.
type Rect struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Contains reports whether the point falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// IsZero reports whether the rectangle is the empty value.
func (r Rect) IsZero() bool {
	return r.Left == 0 && r.Top == 0 && r.Right == 0 && r.Bottom == 0
}

func (r Rect) String() string {
	return fmt.Sprintf("{left:%d top:%d right:%d bottom:%d}", r.Left, r.Top, r.Right, r.Bottom)
}

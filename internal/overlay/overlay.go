// Package overlay renders highlight rectangles for visual confirmation of a
// re-located element. It draws into caller-supplied images; putting the
// pixels on the live desktop is the host's concern.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/uiwalk/uiwalk/internal/model"
)

// FrameWidth is the highlight border thickness in pixels.
const FrameWidth = 3

var (
	frameColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// NewCanvas returns a blank white canvas sized to a screen.
func NewCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// DrawHighlight draws the highlight frame for rect onto img, with an
// optional label above the frame's top-left corner. Everything is clamped
// to the image bounds; an off-screen rect draws nothing.
func DrawHighlight(img *image.RGBA, rect model.Rect, label string) {
	for i := 0; i < FrameWidth; i++ {
		drawRectOutline(img, rect.Left+i, rect.Top+i, rect.Right-i, rect.Bottom-i, frameColor)
	}
	if label != "" {
		drawLabel(img, label, rect.Left, rect.Top-4)
	}
}

// drawRectOutline draws a 1px rectangle outline clamped to the image.
func drawRectOutline(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawLabel draws outlined text with its baseline at (x, y).
func drawLabel(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

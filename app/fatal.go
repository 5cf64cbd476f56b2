package app

import (
	"image/color"
	"strings"

	"picodeck/hal"
	"picodeck/screen"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	fatalLineHeight = 10
	fatalBaseline   = 8
	fatalGlyphWidth = 6
)

// showFatal paints err over the whole panel, white on red, and presents it.
func showFatal(h hal.HAL, err error) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(0xA0, 0, 0)
	d := hal.NewFramebufferDisplay(fb)
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	cols := fb.Width() / fatalGlyphWidth
	if cols <= 0 {
		cols = 1
	}

	lines := append([]string{"picodeck fatal:"}, strings.Split(err.Error(), ": ")...)
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y)+fatalLineHeight > fb.Height() {
				_ = d.Display()
				return
			}
			chunk, rest := screen.TakeRunes(line, cols)
			tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 0, y+fatalBaseline, chunk, fg)
			y += fatalLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

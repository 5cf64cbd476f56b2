package screen

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// DisplaySurface draws onto a drivers.Displayer, using the display's own
// FillRectangle when it has one.
type DisplaySurface struct {
	d    drivers.Displayer
	font tinyfont.Fonter
}

// NewDisplaySurface returns a surface using the 8 pt ProggyTinySZ font.
func NewDisplaySurface(d drivers.Displayer) *DisplaySurface {
	return &DisplaySurface{d: d, font: &proggy.TinySZ8pt7b}
}

// WithFont replaces the text font.
func (s *DisplaySurface) WithFont(f tinyfont.Fonter) *DisplaySurface {
	s.font = f
	return s
}

func (s *DisplaySurface) DrawText(text string, at Point, c color.RGBA) {
	tinyfont.WriteLine(s.d, s.font, at.X, at.Y, text, c)
}

// DrawLine draws a one pixel wide line with Bresenham's algorithm.
func (s *DisplaySurface) DrawLine(from, to Point, c color.RGBA) {
	x0, y0 := int(from.X), int(from.Y)
	x1, y1 := int(to.X), int(to.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.d.SetPixel(int16(x0), int16(y0), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (s *DisplaySurface) FillRect(at Point, width, height int16, c color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	if f, ok := s.d.(rectFiller); ok {
		_ = f.FillRectangle(at.X, at.Y, width, height, c)
		return
	}
	for y := at.Y; y < at.Y+height; y++ {
		for x := at.X; x < at.X+width; x++ {
			s.d.SetPixel(x, y, c)
		}
	}
}

func (s *DisplaySurface) Clear(c color.RGBA) {
	w, h := s.d.Size()
	s.FillRect(Point{}, w, h, c)
}

// Display pushes pending pixels to the panel.
func (s *DisplaySurface) Display() error {
	return s.d.Display()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

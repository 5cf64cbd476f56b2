package screen

import (
	"image/color"

	"picodeck/proto"
)

// Grid geometry, in pixels.
const (
	LineHeight = 12
	TextX      = 15
	TextWidth  = 113
	TextHeight = 10
	RuleX0     = 2
	RuleX1     = 125
)

var (
	Black = color.RGBA{A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Red   = color.RGBA{R: 0xFF, A: 0xFF}
	Blue  = color.RGBA{B: 0xFF, A: 0xFF}
)

// Point is a pixel position. For text it is the left end of the baseline.
type Point struct {
	X, Y int16
}

// Surface is the drawing capability the coordinator needs.
type Surface interface {
	DrawText(text string, at Point, c color.RGBA)
	DrawLine(from, to Point, c color.RGBA)
	FillRect(at Point, width, height int16, c color.RGBA)
	Clear(c color.RGBA)
}

// Baseline returns the text baseline of row i.
func Baseline(i int) int16 {
	return int16(LineHeight*(i+1) + 1)
}

// Coordinator draws Tables onto a Surface. The static layout (line numbers
// and rules) is drawn on the first Render only.
type Coordinator struct {
	s       Surface
	laidOut bool
}

func NewCoordinator(s Surface) *Coordinator {
	return &Coordinator{s: s}
}

// Render draws t. Every row's text region is cleared and every set row is
// drawn again; there is no diffing against the previous frame.
func (c *Coordinator) Render(t *Table) {
	if !c.laidOut {
		c.layout()
		c.laidOut = true
	}

	for i := range t {
		y := Baseline(i)
		c.s.FillRect(Point{X: TextX, Y: y - 8}, TextWidth, TextHeight, Black)
		if t[i].Set {
			c.s.DrawText(t[i].Text, Point{X: TextX, Y: y}, Red)
		}
	}
}

func (c *Coordinator) layout() {
	c.s.Clear(Black)

	var num [proto.MaxDecimalBytes]byte
	for i := 0; i < Rows; i++ {
		y := Baseline(i)
		n := proto.PutDecimal(num[:], int32(i+1))
		c.s.DrawText(string(num[:n]), Point{X: 0, Y: y}, White)
		c.s.DrawLine(Point{X: RuleX0, Y: y + 2}, Point{X: RuleX1, Y: y + 2}, Blue)
	}
}

package screen

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"picodeck/hal"
)

type recorder struct {
	ops []string
}

func name(c color.RGBA) string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprint(c)
}

func (r *recorder) DrawText(text string, at Point, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("text %q %d,%d %s", text, at.X, at.Y, name(c)))
}

func (r *recorder) DrawLine(from, to Point, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("line %d,%d-%d,%d %s", from.X, from.Y, to.X, to.Y, name(c)))
}

func (r *recorder) FillRect(at Point, w, h int16, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("fill %d,%d %dx%d %s", at.X, at.Y, w, h, name(c)))
}

func (r *recorder) Clear(c color.RGBA) {
	r.ops = append(r.ops, "clear "+name(c))
}

func TestBaseline(t *testing.T) {
	require.Equal(t, int16(13), Baseline(0))
	require.Equal(t, int16(25), Baseline(1))
	require.Equal(t, int16(121), Baseline(9))
}

func TestCoordinatorLayoutOnce(t *testing.T) {
	var r recorder
	c := NewCoordinator(&r)

	var tb Table
	tb.SetLine(0, "title")
	c.Render(&tb)

	require.Equal(t, "clear black", r.ops[0])
	require.Equal(t, `text "1" 0,13 white`, r.ops[1])
	require.Equal(t, "line 2,15-125,15 blue", r.ops[2])
	require.Equal(t, `text "10" 0,121 white`, r.ops[19])
	require.Equal(t, "line 2,123-125,123 blue", r.ops[20])

	frame := r.ops[21:]
	require.Equal(t, []string{
		"fill 15,5 113x10 black",
		`text "title" 15,13 red`,
		"fill 15,17 113x10 black",
	}, frame[:3])
	require.Len(t, frame, Rows+1)

	r.ops = nil
	c.Render(&tb)
	require.Len(t, r.ops, Rows+1, "second render has no layout")
	require.Equal(t, "fill 15,5 113x10 black", r.ops[0])
}

func TestCoordinatorRedrawsEveryFrame(t *testing.T) {
	var r recorder
	c := NewCoordinator(&r)

	var tb Table
	for i := 0; i < Rows; i++ {
		tb.SetLine(i, fmt.Sprint(i))
	}
	c.Render(&tb)
	tb.ClearDirty()

	r.ops = nil
	c.Render(&tb)
	require.Len(t, r.ops, 2*Rows)
	for i := 0; i < Rows; i++ {
		y := Baseline(i)
		require.Equal(t, fmt.Sprintf("fill 15,%d 113x10 black", y-8), r.ops[2*i])
		require.Equal(t, fmt.Sprintf("text %q 15,%d red", fmt.Sprint(i), y), r.ops[2*i+1])
	}
}

func TestDisplaySurfaceOnFramebuffer(t *testing.T) {
	fb := hal.NewMemFramebuffer(128, 128)
	fb.ClearRGB(0, 0xFF, 0)
	s := NewDisplaySurface(hal.NewFramebufferDisplay(fb))
	c := NewCoordinator(s)

	var tb Table
	tb.SetLine(3, "HELLO")
	c.Render(&tb)
	require.NoError(t, s.Display())

	isBlue := func(x, y int) bool {
		p := hal.RGBAAt(fb, x, y)
		return p.B > 0xC0 && p.R == 0 && p.G == 0
	}
	y := int(Baseline(0)) + 2
	require.True(t, isBlue(RuleX0, y))
	require.True(t, isBlue(RuleX1, y))
	require.True(t, isBlue(64, y))
	require.False(t, isBlue(RuleX0-1, y))

	require.Equal(t, uint8(0), hal.RGBAAt(fb, 127, 0).G, "cleared to black")

	red := 0
	y0 := int(Baseline(3)) - 8
	for yy := y0; yy < y0+TextHeight; yy++ {
		for x := TextX; x < TextX+TextWidth; x++ {
			p := hal.RGBAAt(fb, x, yy)
			if p.R > 0xC0 && p.G == 0 && p.B == 0 {
				red++
			}
		}
	}
	require.NotZero(t, red)
}

func TestDisplaySurfaceDrawLineDiagonal(t *testing.T) {
	fb := hal.NewMemFramebuffer(8, 8)
	s := NewDisplaySurface(hal.NewFramebufferDisplay(fb))
	s.DrawLine(Point{X: 0, Y: 0}, Point{X: 7, Y: 7}, White)
	for i := 0; i < 8; i++ {
		require.Equal(t, uint8(0xFF), hal.RGBAAt(fb, i, i).R, "pixel %d", i)
	}
	require.Equal(t, uint8(0), hal.RGBAAt(fb, 1, 0).R)
}

package hal

import (
	"errors"
	"io"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Button is one keypad input with pin polarity already applied.
type Button interface {
	Asserted() bool
}

// Keypad provides the five keypad buttons.
type Keypad interface {
	// Buttons returns the buttons ordered Up, Down, Left, Right, OK.
	Buttons() []Button
}

// Clock is a monotonic microsecond counter.
type Clock interface {
	Micros() uint64
}

// Serial is the byte link to the host computer.
type Serial interface {
	io.Reader
	io.Writer
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Backlight() LED
	Display() Display
	Keypad() Keypad
	Clock() Clock
	Serial() Serial
}

//go:build tinygo && baremetal

package hal

import "tinygo.org/x/drivers/st7735"

const st7735ChunkRows = 16

// st7735Framebuffer keeps RGB565 little-endian pixels in RAM and pushes them
// to the panel, which wants big-endian, a band of rows at a time.
type st7735Framebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	tx     []byte

	lcd *st7735.Device
}

func newST7735Framebuffer(lcd *st7735.Device, w, h int) *st7735Framebuffer {
	return &st7735Framebuffer{
		w:      w,
		h:      h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
		tx:     make([]byte, w*2*st7735ChunkRows),
		lcd:    lcd,
	}
}

func (f *st7735Framebuffer) Width() int          { return f.w }
func (f *st7735Framebuffer) Height() int         { return f.h }
func (f *st7735Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *st7735Framebuffer) StrideBytes() int    { return f.stride }
func (f *st7735Framebuffer) Buffer() []byte      { return f.buf }

func (f *st7735Framebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *st7735Framebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	for y := 0; y < f.h; y += st7735ChunkRows {
		rows := st7735ChunkRows
		if y+rows > f.h {
			rows = f.h - y
		}
		src := f.buf[y*f.stride : (y+rows)*f.stride]
		dst := f.tx[:len(src)]
		for i := 0; i+1 < len(src); i += 2 {
			dst[i] = src[i+1]
			dst[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), dst, int16(f.w), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}

package proto

import "fmt"

const (
	// MaxFrameBytes is the accumulator size for one inbound frame,
	// terminator included.
	MaxFrameBytes = 2048

	// FrameTerminator ends every host-to-device frame.
	FrameTerminator = "\r\n"
)

// FrameReader assembles a byte stream into CRLF-terminated frames.
// The zero value is ready to use.
type FrameReader struct {
	buf [MaxFrameBytes]byte
	n   int
}

// Push appends one byte. When the byte completes a frame, Push returns the
// frame without its terminator and true. The returned slice aliases the
// reader's buffer and is valid until the next call to Push.
//
// A frame longer than MaxFrameBytes is ErrCapacityExceeded; the partial frame
// is dropped.
func (r *FrameReader) Push(b byte) ([]byte, bool, error) {
	if r.n == len(r.buf) {
		r.n = 0
		return nil, false, fmt.Errorf("%w: frame longer than %d bytes", ErrCapacityExceeded, MaxFrameBytes)
	}
	r.buf[r.n] = b
	r.n++

	if r.n >= 2 && r.buf[r.n-2] == '\r' && r.buf[r.n-1] == '\n' {
		frame := r.buf[:r.n-2]
		r.n = 0
		return frame, true, nil
	}
	return nil, false, nil
}

// Buffered returns the number of bytes of the current partial frame.
func (r *FrameReader) Buffered() int { return r.n }

// Reset discards the current partial frame.
func (r *FrameReader) Reset() { r.n = 0 }

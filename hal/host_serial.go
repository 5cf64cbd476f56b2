//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"go.bug.st/serial"

	"picodeck/internal/seriallink"
)

// hostSerial carries the host link over the process's stdin and stdout.
type hostSerial struct {
	mu sync.Mutex
	r  io.Reader
	w  io.Writer
}

func stdinReader() io.Reader  { return os.Stdin }
func stdoutWriter() io.Writer { return os.Stdout }

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &LineError{Kind: LineIO, Err: err}
	}
	return n, err
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// portSerial carries the host link over a real serial port.
type portSerial struct {
	mu   sync.Mutex
	port serial.Port
}

func (s *portSerial) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if err == nil {
		return n, nil
	}
	if seriallink.IsClosed(err) {
		return n, io.EOF
	}
	return n, &LineError{Kind: LineIO, Err: err}
}

func (s *portSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Write(p)
}

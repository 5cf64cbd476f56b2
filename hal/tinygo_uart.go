//go:build tinygo && rp2040

package hal

import "machine"

// uartSerial reads without blocking: an empty receive buffer is (0, nil).
type uartSerial struct {
	uart *machine.UART
}

// Read drains the receive buffer, then reports any receive error the UART
// latched meanwhile. Bytes returned alongside a LineError belong to a frame
// that is dropped.
func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	n, err := s.uart.Read(p)
	if err != nil {
		return n, &LineError{Kind: LineIO, Err: err}
	}
	if rsr := s.uart.Bus.UARTRSR.Get(); rsr != 0 {
		// Any write clears the latched bits.
		s.uart.Bus.UARTRSR.Set(0)
		if lerr := lineErrorFromStatus(rsr); lerr != nil {
			return n, lerr
		}
	}
	return n, nil
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

package hal

import "fmt"

// LineErrorKind classifies a serial receive error.
type LineErrorKind uint8

const (
	LineIO LineErrorKind = iota
	LineBreak
	LineOverrun
	LineParity
	LineFraming
)

func (k LineErrorKind) String() string {
	switch k {
	case LineBreak:
		return "break"
	case LineOverrun:
		return "overrun"
	case LineParity:
		return "parity"
	case LineFraming:
		return "framing"
	default:
		return "io"
	}
}

// LineError is a receive error on the serial link. The link stays usable;
// whatever partial frame was being received is lost.
type LineError struct {
	Kind LineErrorKind
	Err  error
}

func (e *LineError) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Receive status bits as laid out in a PL011 UART's RSR register.
const (
	rsrFraming = 1 << 0
	rsrParity  = 1 << 1
	rsrBreak   = 1 << 2
	rsrOverrun = 1 << 3
)

// lineErrorFromStatus maps PL011 receive status bits to a LineError, or nil
// when none is set. A break also raises the framing bit, so it is checked
// first.
func lineErrorFromStatus(rsr uint32) error {
	switch {
	case rsr&rsrBreak != 0:
		return &LineError{Kind: LineBreak}
	case rsr&rsrOverrun != 0:
		return &LineError{Kind: LineOverrun}
	case rsr&rsrParity != 0:
		return &LineError{Kind: LineParity}
	case rsr&rsrFraming != 0:
		return &LineError{Kind: LineFraming}
	}
	return nil
}

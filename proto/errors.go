package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrNotKeyValueText reports a frame with no key/value separator at all.
	ErrNotKeyValueText = errors.New("proto: not key=value text")

	// ErrMalformedToken reports a token without a key/value separator.
	ErrMalformedToken = errors.New("proto: malformed token")

	// ErrCapacityExceeded reports a fixed buffer that is too small for its input.
	// Callers treat it as fatal: it means a sizing constant is wrong.
	ErrCapacityExceeded = errors.New("proto: capacity exceeded")
)

// FrameErrorKind classifies why an inbound frame was rejected.
type FrameErrorKind uint8

const (
	// StringMismatch means the frame text is not valid KV text.
	StringMismatch FrameErrorKind = iota + 1
	// ParseError means a recognized field carried a value that did not parse.
	ParseError
)

func (k FrameErrorKind) String() string {
	switch k {
	case StringMismatch:
		return "string mismatch"
	case ParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// FrameError is returned for a rejected inbound frame. Nothing from the frame
// is applied when it is returned.
type FrameError struct {
	Kind FrameErrorKind
	// Key is the field that failed for ParseError, empty otherwise.
	Key string
	Err error
}

func (e *FrameError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("proto: frame %s: %s: %v", e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("proto: frame %s: %v", e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

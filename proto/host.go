package proto

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDataLines bounds the data_lines field.
const MaxDataLines = 8

// Inbound field names.
const (
	KeyCursorIndex       = "cursor_index"
	KeyIPAndBattery      = "ip_and_battery"
	KeyTitleAndPaginator = "title_and_paginator"
	KeyDataLines         = "data_lines"
)

var errMissingSlash = errors.New("missing '/' separator")

// ErrInvalidValue reports a HostState value that cannot be put on the wire.
var ErrInvalidValue = errors.New("proto: value contains a reserved character")

// HostState is the typed content of one inbound frame. Nil fields were not
// present in the frame.
type HostState struct {
	CursorIndex *int32
	IP          *string
	Battery     *string
	Title       *string
	Paginator   *string
	// DataLines holds up to MaxDataLines entries; empty entries are nil.
	DataLines []*string
}

// ParseHostState maps one frame onto a fresh HostState. Unknown keys are
// ignored and a repeated key overwrites the earlier value. On error nothing
// from the frame is returned. A trailing terminator is tolerated.
func ParseHostState(frame string) (HostState, error) {
	frame = strings.TrimSuffix(frame, FrameTerminator)

	var pairs [MaxPairs]Pair
	n, err := ParseKVInto(&pairs, frame, FieldSep, KVSep)
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			return HostState{}, err
		}
		return HostState{}, &FrameError{Kind: StringMismatch, Err: err}
	}

	var s HostState
	for _, p := range pairs[:n] {
		switch p.Key {
		case KeyCursorIndex:
			v, err := ParseDecimal(p.Value)
			if err != nil {
				return HostState{}, &FrameError{Kind: ParseError, Key: p.Key, Err: err}
			}
			s.CursorIndex = &v
		case KeyIPAndBattery:
			ip, bat, ok := strings.Cut(p.Value, "/")
			if !ok {
				return HostState{}, &FrameError{Kind: ParseError, Key: p.Key, Err: errMissingSlash}
			}
			s.IP, s.Battery = &ip, &bat
		case KeyTitleAndPaginator:
			title, page, ok := strings.Cut(p.Value, "/")
			if !ok {
				return HostState{}, &FrameError{Kind: ParseError, Key: p.Key, Err: errMissingSlash}
			}
			s.Title, s.Paginator = &title, &page
		case KeyDataLines:
			lines, err := splitDataLines(p.Value)
			if err != nil {
				return HostState{}, &FrameError{Kind: ParseError, Key: p.Key, Err: err}
			}
			s.DataLines = lines
		}
	}
	return s, nil
}

func splitDataLines(v string) ([]*string, error) {
	if strings.Count(v, ",")+1 > MaxDataLines {
		return nil, fmt.Errorf("more than %d entries", MaxDataLines)
	}
	parts := strings.Split(v, ",")
	lines := make([]*string, len(parts))
	for i := range parts {
		if parts[i] != "" {
			lines[i] = &parts[i]
		}
	}
	return lines, nil
}

// AppendHostState appends s as an inbound frame, terminator included.
// Fields are written in a fixed order and only when present.
func AppendHostState(dst []byte, s HostState) ([]byte, error) {
	start := len(dst)
	sep := func() {
		if len(dst) > start {
			dst = append(dst, FieldSep)
		}
	}

	if s.CursorIndex != nil {
		sep()
		dst = append(dst, KeyCursorIndex+"="...)
		dst = AppendDecimal(dst, *s.CursorIndex)
	}
	if s.IP != nil || s.Battery != nil {
		ip, bat := deref(s.IP), deref(s.Battery)
		if err := checkValue(KeyIPAndBattery, ip, "/"); err != nil {
			return dst[:start], err
		}
		if err := checkValue(KeyIPAndBattery, bat, ""); err != nil {
			return dst[:start], err
		}
		sep()
		dst = append(dst, KeyIPAndBattery+"="...)
		dst = append(dst, ip...)
		dst = append(dst, '/')
		dst = append(dst, bat...)
	}
	if s.Title != nil || s.Paginator != nil {
		title, page := deref(s.Title), deref(s.Paginator)
		if err := checkValue(KeyTitleAndPaginator, title, "/"); err != nil {
			return dst[:start], err
		}
		if err := checkValue(KeyTitleAndPaginator, page, ""); err != nil {
			return dst[:start], err
		}
		sep()
		dst = append(dst, KeyTitleAndPaginator+"="...)
		dst = append(dst, title...)
		dst = append(dst, '/')
		dst = append(dst, page...)
	}
	if s.DataLines != nil {
		if len(s.DataLines) > MaxDataLines {
			return dst[:start], fmt.Errorf("%w: %s has %d entries", ErrInvalidValue, KeyDataLines, len(s.DataLines))
		}
		for _, l := range s.DataLines {
			if err := checkValue(KeyDataLines, deref(l), ","); err != nil {
				return dst[:start], err
			}
		}
		sep()
		dst = append(dst, KeyDataLines+"="...)
		for i, l := range s.DataLines {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = append(dst, deref(l)...)
		}
	}

	if len(dst) == start {
		return dst, fmt.Errorf("%w: empty host state", ErrInvalidValue)
	}
	return append(dst, FrameTerminator...), nil
}

func checkValue(key, v, extra string) error {
	if strings.ContainsAny(v, "&=\r\n"+extra) {
		return fmt.Errorf("%w: %s value %q", ErrInvalidValue, key, v)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

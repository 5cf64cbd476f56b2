package proto

import (
	"fmt"
	"math"
	"strings"

	"picodeck/keypad"
)

const (
	// ScreenSize is the display size advertised in every key event.
	ScreenSize = "128,128"

	// EventTerminator ends every device-to-host message.
	EventTerminator = "\r\n\r\n"

	// MaxEventBytes is the size of the fixed buffer a key event is encoded into.
	MaxEventBytes = 64
)

// AppendKeyEvent appends the wire form of ev to dst:
//
//	len=<N>&wh=128,128&kc=<c>&keypressms=<D>\r\n\r\n
//
// N is the byte length of the body that follows the len field.
func AppendKeyEvent(dst []byte, ev keypad.Event) []byte {
	var body [MaxEventBytes]byte
	b := appendEventBody(body[:0], ev)

	dst = append(dst, "len="...)
	dst = AppendDecimal(dst, int32(len(b)))
	dst = append(dst, b...)
	return append(dst, EventTerminator...)
}

// EncodeKeyEvent encodes ev into buf and returns the used prefix of buf.
func EncodeKeyEvent(buf *[MaxEventBytes]byte, ev keypad.Event) ([]byte, error) {
	out := AppendKeyEvent(buf[:0], ev)
	if len(out) > len(buf) {
		return nil, fmt.Errorf("%w: key event needs %d bytes", ErrCapacityExceeded, len(out))
	}
	return out, nil
}

func appendEventBody(dst []byte, ev keypad.Event) []byte {
	hold := ev.HoldMS
	if hold > math.MaxInt32 {
		hold = math.MaxInt32
	}
	dst = append(dst, "&wh="...)
	dst = append(dst, ScreenSize...)
	dst = append(dst, "&kc="...)
	dst = append(dst, ev.Key.Char())
	dst = append(dst, "&keypressms="...)
	return AppendDecimal(dst, int32(hold))
}

// ParseKeyEvent decodes one device message. The terminator may be present or
// already stripped. The declared length must match the body.
func ParseKeyEvent(frame string) (keypad.Event, error) {
	frame = strings.TrimRight(frame, "\r\n")
	if !strings.HasPrefix(frame, "len=") {
		return keypad.Event{}, &FrameError{Kind: StringMismatch, Err: fmt.Errorf("missing len prefix")}
	}

	amp := strings.IndexByte(frame, FieldSep)
	if amp < 0 {
		return keypad.Event{}, &FrameError{Kind: StringMismatch, Err: ErrMalformedToken}
	}
	n, err := ParseDecimal(frame[len("len="):amp])
	if err != nil {
		return keypad.Event{}, &FrameError{Kind: ParseError, Key: "len", Err: err}
	}
	body := frame[amp:]
	if int(n) != len(body) {
		return keypad.Event{}, &FrameError{Kind: ParseError, Key: "len", Err: fmt.Errorf("declared %d, body is %d bytes", n, len(body))}
	}

	var pairs [MaxPairs]Pair
	cnt, err := ParseKVInto(&pairs, body[1:], FieldSep, KVSep)
	if err != nil {
		return keypad.Event{}, &FrameError{Kind: StringMismatch, Err: err}
	}

	var ev keypad.Event
	var haveKey bool
	for _, p := range pairs[:cnt] {
		switch p.Key {
		case "kc":
			if len(p.Value) != 1 {
				return keypad.Event{}, &FrameError{Kind: ParseError, Key: p.Key, Err: fmt.Errorf("want one character, got %q", p.Value)}
			}
			k, ok := keypad.KeyFromChar(p.Value[0])
			if !ok {
				return keypad.Event{}, &FrameError{Kind: ParseError, Key: p.Key, Err: fmt.Errorf("unknown key %q", p.Value)}
			}
			ev.Key = k
			haveKey = true
		case "keypressms":
			ms, err := ParseDecimal(p.Value)
			if err != nil || ms < 0 {
				return keypad.Event{}, &FrameError{Kind: ParseError, Key: p.Key, Err: fmt.Errorf("bad duration %q", p.Value)}
			}
			ev.HoldMS = uint32(ms)
		}
	}
	if !haveKey {
		return keypad.Event{}, &FrameError{Kind: ParseError, Key: "kc", Err: fmt.Errorf("missing")}
	}
	return ev, nil
}

// Package keypad turns raw five-button levels into key events.
package keypad

// Key identifies one keypad button. The numeric order is the order buttons are
// wired and sampled in, not the priority order.
type Key uint8

const (
	Up Key = iota
	Down
	Left
	Right
	OK

	NumKeys = 5
)

// Priority is the tie-break order used when several buttons are asserted at
// once: only the first asserted key in this list is active.
var Priority = [NumKeys]Key{Down, Up, Left, Right, OK}

var keyChars = [NumKeys]byte{'u', 'd', 'l', 'r', 'o'}

var keyNames = [NumKeys]string{"up", "down", "left", "right", "ok"}

// Char returns the wire character for k.
func (k Key) Char() byte {
	if int(k) >= NumKeys {
		return '?'
	}
	return keyChars[k]
}

func (k Key) String() string {
	if int(k) >= NumKeys {
		return "unknown"
	}
	return keyNames[k]
}

// KeyFromChar maps a wire character back to its key.
func KeyFromChar(c byte) (Key, bool) {
	for i, kc := range keyChars {
		if kc == c {
			return Key(i), true
		}
	}
	return 0, false
}

// Sample holds the level of every button for one loop iteration, indexed by
// Key. true means asserted.
type Sample [NumKeys]bool

// Active resolves the sample to at most one key using Priority.
func (s Sample) Active() (Key, bool) {
	for _, k := range Priority {
		if s[k] {
			return k, true
		}
	}
	return 0, false
}

// Button is a single digital input with polarity already applied.
type Button interface {
	Asserted() bool
}

// Read samples buttons, which must be ordered Up, Down, Left, Right, OK.
// Missing buttons read as released.
func Read[B Button](buttons []B) Sample {
	var s Sample
	for i := 0; i < NumKeys && i < len(buttons); i++ {
		s[i] = buttons[i].Asserted()
	}
	return s
}

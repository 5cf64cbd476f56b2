package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"picodeck/keypad"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// PinButton turns a GPIO input into a Button. Keypad switches short the pin
// to ground, so they are active low.
type PinButton struct {
	Pin       GPIOPin
	ActiveLow bool
}

// Asserted reports the button state. A pin read error counts as released.
func (b PinButton) Asserted() bool {
	if b.Pin == nil {
		return false
	}
	level, err := b.Pin.Read()
	if err != nil {
		return false
	}
	return level != b.ActiveLow
}

type pinKeypad struct {
	buttons []Button
}

// NewPinKeypad builds a Keypad from five active-low pins ordered Up, Down,
// Left, Right, OK. Each pin is configured as an input with pull-up.
func NewPinKeypad(pins []GPIOPin) (Keypad, error) {
	if len(pins) != keypad.NumKeys {
		return nil, fmt.Errorf("gpio: keypad needs %d pins, got %d", keypad.NumKeys, len(pins))
	}
	k := &pinKeypad{buttons: make([]Button, len(pins))}
	for i, p := range pins {
		pull := GPIOPullUp
		if p.Caps()&GPIOCapPullUp == 0 {
			pull = GPIOPullNone
		}
		if err := p.Configure(GPIOModeInput, pull); err != nil {
			return nil, err
		}
		k.buttons[i] = PinButton{Pin: p, ActiveLow: true}
	}
	return k, nil
}

func (k *pinKeypad) Buttons() []Button { return k.buttons }

type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
		p.level = true
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
		p.level = false
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeInput && p.mode != GPIOModeOutput {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// drive sets the level from outside, the way a pressed switch would.
func (p *virtualPin) drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// ScriptPress is one scripted key press for the host simulator.
type ScriptPress struct {
	Key  keypad.Key
	At   time.Duration
	Hold time.Duration
}

// ParseScript parses a comma separated list of presses written as
// <key>@<start>+<hold>, for example "d@100ms+1.2s,o@3s+50ms". The key is one
// of the wire characters u, d, l, r, o.
func ParseScript(s string) ([]ScriptPress, error) {
	var out []ScriptPress
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		keyPart, rest, ok := strings.Cut(item, "@")
		if !ok || len(keyPart) != 1 {
			return nil, fmt.Errorf("script: %q: want <key>@<start>+<hold>", item)
		}
		key, ok := keypad.KeyFromChar(keyPart[0])
		if !ok {
			return nil, fmt.Errorf("script: %q: unknown key %q", item, keyPart)
		}
		startPart, holdPart, ok := strings.Cut(rest, "+")
		if !ok {
			return nil, fmt.Errorf("script: %q: missing hold duration", item)
		}
		at, err := time.ParseDuration(startPart)
		if err != nil {
			return nil, fmt.Errorf("script: %q: %w", item, err)
		}
		hold, err := time.ParseDuration(holdPart)
		if err != nil {
			return nil, fmt.Errorf("script: %q: %w", item, err)
		}
		if at < 0 || hold <= 0 {
			return nil, fmt.Errorf("script: %q: durations must be positive", item)
		}
		out = append(out, ScriptPress{Key: key, At: at, Hold: hold})
	}
	return out, nil
}

// scriptPin is an active-low input that reads low while one of its press
// windows is open.
type scriptPin struct {
	mu   sync.Mutex
	name string
	mode GPIOMode
	pull GPIOPull

	t0      time.Time
	now     func() time.Time
	presses []ScriptPress
}

func newScriptPin(name string, presses []ScriptPress) GPIOPin {
	return newScriptPinWithClock(name, presses, time.Now)
}

func newScriptPinWithClock(name string, presses []ScriptPress, now func() time.Time) GPIOPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &scriptPin{
		name:    name,
		mode:    GPIOModeInput,
		pull:    GPIOPullUp,
		t0:      now(),
		now:     now,
		presses: presses,
	}
}

func (p *scriptPin) Name() string   { return p.name }
func (p *scriptPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *scriptPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	if pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: only pull-up supported", p.name)
	}
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *scriptPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != GPIOModeInput {
		return false, fmt.Errorf("gpio: pin %s: not configured for input", p.name)
	}
	if p.now == nil {
		return false, fmt.Errorf("gpio: pin %s: no clock", p.name)
	}

	elapsed := p.now().Sub(p.t0)
	for _, pr := range p.presses {
		if elapsed >= pr.At && elapsed < pr.At+pr.Hold {
			return false, nil
		}
	}
	return true, nil
}

func (p *scriptPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

package keypad

import "math"

// State is the engine's gesture state.
type State uint8

const (
	// Idle means no key is pending.
	Idle State = iota
	// Holding means the pending key is still asserted.
	Holding
	// ArmedToSend means the pending key was released and goes out on the
	// next tick.
	ArmedToSend
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	case ArmedToSend:
		return "armed"
	default:
		return "unknown"
	}
}

// Event is one key gesture ready for the host.
type Event struct {
	Key Key
	// HoldMS is the time from key down to the tick that sent the event.
	HoldMS uint32
}

// Config holds the engine timing, in microseconds.
type Config struct {
	// TickInterval gates send decisions: they run only once the clock has
	// moved strictly more than this since the previous decision.
	TickInterval uint64
	// HoldThreshold is how long a key must stay down before it is sent
	// without waiting for release.
	HoldThreshold uint64
}

// DefaultConfig returns a 250 ms tick and a 1 s hold threshold.
func DefaultConfig() Config {
	return Config{
		TickInterval:  250_000,
		HoldThreshold: 1_000_000,
	}
}

// Engine is the debounce and key priority state machine. It holds at most one
// pending event and emits at most one event per press.
//
// Engine is not safe for concurrent use; it belongs to the input loop.
type Engine struct {
	cfg Config

	state State
	key   Key
	since uint64

	lastTick uint64
	started  bool

	// latched is set after a hold-triggered send of latchedKey and cleared on
	// release or when another key becomes active, so a long press produces
	// exactly one event.
	latched    bool
	latchedKey Key
}

// NewEngine returns an idle engine. Zero fields in cfg take their defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.TickInterval == 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.HoldThreshold == 0 {
		cfg.HoldThreshold = def.HoldThreshold
	}
	return &Engine{cfg: cfg}
}

// State returns the current gesture state.
func (e *Engine) State() State { return e.state }

// Pending returns the pending key and its press time, if any.
func (e *Engine) Pending() (key Key, since uint64, ok bool) {
	if e.state == Idle {
		return 0, 0, false
	}
	return e.key, e.since, true
}

// Step advances the machine with the sample taken at now (microseconds from a
// monotonic clock) and reports an event when one is due.
//
// The hold time of a released key is measured up to the tick that sends it,
// not to the release, so a tap shorter than the tick interval reports the
// time until that tick.
func (e *Engine) Step(now uint64, s Sample) (Event, bool) {
	if !e.started {
		e.started = true
		e.lastTick = now
	}

	active, down := s.Active()
	switch {
	case down && e.latched && active == e.latchedKey:
	case down:
		e.latched = false
		switch e.state {
		case Idle:
			e.state, e.key, e.since = Holding, active, now
		case Holding:
			// Roll-over to another key keeps the original press time.
			e.key = active
		case ArmedToSend:
			if active == e.key {
				e.state = Holding
			}
		}
	default:
		e.latched = false
		if e.state == Holding {
			e.state = ArmedToSend
		}
	}

	if now-e.lastTick <= e.cfg.TickInterval {
		return Event{}, false
	}
	e.lastTick = now

	switch e.state {
	case ArmedToSend:
		return e.send(now, false), true
	case Holding:
		if down && active == e.key && now-e.since > e.cfg.HoldThreshold {
			return e.send(now, true), true
		}
	}
	return Event{}, false
}

func (e *Engine) send(now uint64, held bool) Event {
	ms := (now - e.since) / 1000
	if ms > math.MaxUint32 {
		ms = math.MaxUint32
	}
	ev := Event{Key: e.key, HoldMS: uint32(ms)}
	e.state = Idle
	e.since = 0
	e.latched = held
	e.latchedKey = ev.Key
	return ev
}

package keypad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const step = 1000 // 1 ms loop period in microseconds

type sim struct {
	e      *Engine
	now    uint64
	events []Event
	at     []uint64
}

func newSim() *sim { return &sim{e: NewEngine(Config{})} }

// run steps the engine every millisecond for ms milliseconds with keys held.
func (s *sim) run(ms int, keys ...Key) {
	var smp Sample
	for _, k := range keys {
		smp[k] = true
	}
	for i := 0; i < ms; i++ {
		if ev, ok := s.e.Step(s.now, smp); ok {
			s.events = append(s.events, ev)
			s.at = append(s.at, s.now)
		}
		s.now += step
	}
}

func TestEngineHoldSendsOnce(t *testing.T) {
	s := newSim()
	s.run(1200, Down)
	s.run(2000)

	require.Len(t, s.events, 1)
	require.Equal(t, Down, s.events[0].Key)
	require.GreaterOrEqual(t, s.events[0].HoldMS, uint32(1000))
	require.Less(t, s.at[0], uint64(1200*step), "sent while still held")
}

func TestEngineTapSendsOnRelease(t *testing.T) {
	s := newSim()
	s.run(50, Down)
	s.run(1000)

	require.Equal(t, []Event{{Key: Down, HoldMS: 251}}, s.events)
}

func TestEngineLongHoldIsLatched(t *testing.T) {
	s := newSim()
	s.run(5000, OK)
	require.Len(t, s.events, 1)
	require.Equal(t, uint32(1004), s.events[0].HoldMS)
	require.Equal(t, Idle, s.e.State())

	s.run(10)
	s.run(100, OK)
	s.run(500)
	require.Len(t, s.events, 2)
	require.Equal(t, OK, s.events[1].Key)
}

func TestEngineIdleSendsNothing(t *testing.T) {
	s := newSim()
	s.run(5000)
	require.Empty(t, s.events)
	require.Equal(t, Idle, s.e.State())
}

func TestEnginePriority(t *testing.T) {
	s := newSim()
	s.run(50, Up, Down, OK)
	s.run(500)
	require.Len(t, s.events, 1)
	require.Equal(t, Down, s.events[0].Key)
}

func TestEngineRollOverKeepsPressTime(t *testing.T) {
	s := newSim()
	s.run(100, Down)
	s.run(100, Up)
	require.Equal(t, Holding, s.e.State())
	k, since, ok := s.e.Pending()
	require.True(t, ok)
	require.Equal(t, Up, k)
	require.Zero(t, since)

	s.run(500)
	require.Equal(t, []Event{{Key: Up, HoldMS: 251}}, s.events)
}

func TestEngineNewKeyAfterHoldSends(t *testing.T) {
	s := newSim()
	s.run(1500, Up)
	s.run(500, Up, Down)
	s.run(1500, Down)
	s.run(1000)

	require.Equal(t, []Event{
		{Key: Up, HoldMS: 1004},
		{Key: Down, HoldMS: 1010},
	}, s.events)
}

func TestEngineLatchedKeyStaysSilentUnderLowerKey(t *testing.T) {
	s := newSim()
	s.run(1500, Down)
	s.run(2000, Down, OK)
	require.Len(t, s.events, 1)
	require.Equal(t, Down, s.events[0].Key)
}

func TestEngineArmedIgnoresOtherKey(t *testing.T) {
	s := newSim()
	s.run(50, Down)
	s.run(50)
	require.Equal(t, ArmedToSend, s.e.State())
	s.run(100, Up)
	require.Equal(t, ArmedToSend, s.e.State())

	// The armed Down goes out at the first tick; Up then starts its own press.
	s.run(200, Up)
	require.Equal(t, []Event{{Key: Down, HoldMS: 251}}, s.events)
	require.Equal(t, Holding, s.e.State())

	s.run(500)
	require.Len(t, s.events, 2)
	require.Equal(t, Up, s.events[1].Key)
}

func TestEngineArmedSameKeyResumesHold(t *testing.T) {
	s := newSim()
	s.run(50, Down)
	s.run(50)
	s.run(1500, Down)

	require.Len(t, s.events, 1)
	require.Equal(t, Down, s.events[0].Key)
	require.Equal(t, uint32(1004), s.events[0].HoldMS)
}

func TestEngineTicksAreStrict(t *testing.T) {
	e := NewEngine(Config{TickInterval: 10, HoldThreshold: 100})
	var down Sample
	down[Left] = true

	_, ok := e.Step(0, down)
	require.False(t, ok)
	_, ok = e.Step(5, Sample{})
	require.False(t, ok)
	_, ok = e.Step(10, Sample{})
	require.False(t, ok, "tick needs strictly more than the interval")

	ev, ok := e.Step(11, Sample{})
	require.True(t, ok)
	require.Equal(t, Left, ev.Key)
}

func TestEngineHoldThresholdIsStrict(t *testing.T) {
	e := NewEngine(Config{TickInterval: 1, HoldThreshold: 100_000})
	var down Sample
	down[Right] = true

	e.Step(0, down)
	_, ok := e.Step(100_000, down)
	require.False(t, ok)
	ev, ok := e.Step(100_002, down)
	require.True(t, ok)
	require.Equal(t, Event{Key: Right, HoldMS: 100}, ev)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "holding", Holding.String())
	require.Equal(t, "armed", ArmedToSend.String())
}

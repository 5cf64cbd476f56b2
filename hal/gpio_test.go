package hal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"picodeck/keypad"
)

func TestScriptPinRead(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	pin := newScriptPinWithClock("DOWN", []ScriptPress{
		{Key: keypad.Down, At: 1 * time.Second, Hold: 2 * time.Second},
	}, clock)
	require.NotNil(t, pin)
	require.NoError(t, pin.Configure(GPIOModeInput, GPIOPullUp))

	level, err := pin.Read()
	require.NoError(t, err)
	require.True(t, level, "released pin reads high")

	now = now.Add(1500 * time.Millisecond)
	level, err = pin.Read()
	require.NoError(t, err)
	require.False(t, level, "pressed pin reads low")

	now = now.Add(2 * time.Second)
	level, err = pin.Read()
	require.NoError(t, err)
	require.True(t, level, "pin reads high after the press")
}

func TestPinButtonActiveLow(t *testing.T) {
	pin := newVirtualPin("OK", GPIOCapInput|GPIOCapPullUp)
	require.NoError(t, pin.Configure(GPIOModeInput, GPIOPullUp))

	b := PinButton{Pin: pin, ActiveLow: true}
	require.False(t, b.Asserted())

	pin.drive(false)
	require.True(t, b.Asserted())

	pin.drive(true)
	require.False(t, b.Asserted())
}

func TestPinButtonReadErrorIsReleased(t *testing.T) {
	b := PinButton{Pin: &scriptPin{name: "broken", mode: GPIOModeOutput}, ActiveLow: true}
	require.False(t, b.Asserted())
}

func TestNewPinKeypad(t *testing.T) {
	var pins []GPIOPin
	for i := 0; i < keypad.NumKeys; i++ {
		pins = append(pins, newVirtualPin(keypad.Key(i).String(), GPIOCapInput|GPIOCapPullUp))
	}
	kp, err := NewPinKeypad(pins)
	require.NoError(t, err)

	pins[keypad.Left].(*virtualPin).drive(false)

	buttons := kp.Buttons()
	require.Len(t, buttons, keypad.NumKeys)
	for i, b := range buttons {
		require.Equal(t, i == int(keypad.Left), b.Asserted(), "button %d", i)
	}

	_, err = NewPinKeypad(pins[:3])
	require.Error(t, err)
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []ScriptPress
		wantErr bool
	}{
		{
			name: "two presses",
			in:   "d@100ms+1.2s, o@3s+50ms",
			want: []ScriptPress{
				{Key: keypad.Down, At: 100 * time.Millisecond, Hold: 1200 * time.Millisecond},
				{Key: keypad.OK, At: 3 * time.Second, Hold: 50 * time.Millisecond},
			},
		},
		{name: "empty", in: "", want: nil},
		{name: "unknown key", in: "x@1s+1s", wantErr: true},
		{name: "missing hold", in: "u@1s", wantErr: true},
		{name: "bad duration", in: "u@soon+1s", wantErr: true},
		{name: "zero hold", in: "u@1s+0s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScript(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

package hal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineErrorFromStatus(t *testing.T) {
	tests := []struct {
		rsr  uint32
		kind LineErrorKind
	}{
		{rsrFraming, LineFraming},
		{rsrParity, LineParity},
		{rsrOverrun, LineOverrun},
		{rsrBreak | rsrFraming, LineBreak},
		{rsrOverrun | rsrParity, LineOverrun},
	}
	for _, tt := range tests {
		err := lineErrorFromStatus(tt.rsr)
		var lerr *LineError
		require.True(t, errors.As(err, &lerr), "status %#x", tt.rsr)
		require.Equal(t, tt.kind, lerr.Kind, "status %#x", tt.rsr)
	}

	require.NoError(t, lineErrorFromStatus(0))
	require.NoError(t, lineErrorFromStatus(1<<4), "busy bits are not errors")
}

package proto

import (
	"fmt"
	"strings"
)

// MaxPairs bounds the number of pairs in one KV frame.
const MaxPairs = 10

const (
	FieldSep = '&'
	KVSep    = '='
)

// Pair is one key=value token. Key and Value are substrings of the parsed
// frame and share its memory.
type Pair struct {
	Key   string
	Value string
}

// ParseKVInto splits frame into pairs stored in dst and returns how many were
// stored. A token without kvSep fails the whole frame; more than MaxPairs
// tokens is ErrCapacityExceeded. Pair order follows the frame and duplicate
// keys are kept.
func ParseKVInto(dst *[MaxPairs]Pair, frame string, fieldSep, kvSep byte) (int, error) {
	if strings.IndexByte(frame, kvSep) < 0 {
		return 0, ErrNotKeyValueText
	}

	n := 0
	rest := frame
	for {
		tok := rest
		next := strings.IndexByte(rest, fieldSep)
		if next >= 0 {
			tok = rest[:next]
		}

		k := strings.IndexByte(tok, kvSep)
		if k < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
		}
		if n == MaxPairs {
			return 0, fmt.Errorf("%w: more than %d pairs", ErrCapacityExceeded, MaxPairs)
		}
		dst[n] = Pair{Key: tok[:k], Value: tok[k+1:]}
		n++

		if next < 0 {
			return n, nil
		}
		rest = rest[next+1:]
	}
}

// ParseKV is ParseKVInto returning a freshly allocated slice.
func ParseKV(frame string, fieldSep, kvSep byte) ([]Pair, error) {
	var buf [MaxPairs]Pair
	n, err := ParseKVInto(&buf, frame, fieldSep, kvSep)
	if err != nil {
		return nil, err
	}
	out := make([]Pair, n)
	copy(out, buf[:n])
	return out, nil
}

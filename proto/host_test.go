package proto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func i32(n int32) *int32 { return &n }

func TestParseHostState(t *testing.T) {
	s, err := ParseHostState("cursor_index=3&ip_and_battery=10.0.0.1/87&data_lines=foo,bar\r\n")
	require.NoError(t, err)
	require.Equal(t, HostState{
		CursorIndex: i32(3),
		IP:          str("10.0.0.1"),
		Battery:     str("87"),
		DataLines:   []*string{str("foo"), str("bar")},
	}, s)
}

func TestParseHostStateFields(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  HostState
	}{
		{
			name:  "title and paginator",
			frame: "title_and_paginator=Menu/2of5",
			want:  HostState{Title: str("Menu"), Paginator: str("2of5")},
		},
		{
			name:  "slash splits once",
			frame: "title_and_paginator=a/b/c",
			want:  HostState{Title: str("a"), Paginator: str("b/c")},
		},
		{
			name:  "empty data lines are nil",
			frame: "data_lines=a,,c,",
			want:  HostState{DataLines: []*string{str("a"), nil, str("c"), nil}},
		},
		{
			name:  "eight data lines",
			frame: "data_lines=1,2,3,4,5,6,7,8",
			want: HostState{DataLines: []*string{
				str("1"), str("2"), str("3"), str("4"), str("5"), str("6"), str("7"), str("8"),
			}},
		},
		{
			name:  "unknown keys ignored",
			frame: "foo=bar&cursor_index=-1",
			want:  HostState{CursorIndex: i32(-1)},
		},
		{
			name:  "last duplicate wins",
			frame: "cursor_index=1&cursor_index=2",
			want:  HostState{CursorIndex: i32(2)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHostState(tt.frame)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseHostStateErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		kind  FrameErrorKind
		key   string
	}{
		{"not kv", "hello", StringMismatch, ""},
		{"malformed token", "cursor_index=1&oops", StringMismatch, ""},
		{"bad cursor", "cursor_index=one", ParseError, KeyCursorIndex},
		{"cursor out of range", "cursor_index=4294967296", ParseError, KeyCursorIndex},
		{"ip without slash", "ip_and_battery=10.0.0.1", ParseError, KeyIPAndBattery},
		{"title without slash", "title_and_paginator=Menu", ParseError, KeyTitleAndPaginator},
		{"too many data lines", "data_lines=1,2,3,4,5,6,7,8,9", ParseError, KeyDataLines},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHostState(tt.frame)
			var fe *FrameError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, tt.kind, fe.Kind)
			require.Equal(t, tt.key, fe.Key)
		})
	}
}

func TestParseHostStateCapacity(t *testing.T) {
	_, err := ParseHostState(strings.Repeat("a=1&", MaxPairs) + "a=1")
	require.ErrorIs(t, err, ErrCapacityExceeded)
	var fe *FrameError
	require.False(t, errors.As(err, &fe))
}

func TestAppendHostState(t *testing.T) {
	s := HostState{
		CursorIndex: i32(3),
		IP:          str("10.0.0.1"),
		Battery:     str("87"),
		Title:       str("Menu"),
		Paginator:   str("1/2"),
		DataLines:   []*string{str("foo"), nil, str("bar")},
	}
	out, err := AppendHostState(nil, s)
	require.NoError(t, err)
	require.Equal(t, "cursor_index=3&ip_and_battery=10.0.0.1/87&title_and_paginator=Menu/1/2&data_lines=foo,,bar\r\n", string(out))

	got, err := ParseHostState(string(out))
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestAppendHostStateRejects(t *testing.T) {
	tests := []struct {
		name string
		s    HostState
	}{
		{"empty", HostState{}},
		{"ampersand", HostState{Title: str("a&b")}},
		{"slash in title", HostState{Title: str("a/b"), Paginator: str("1")}},
		{"comma in line", HostState{DataLines: []*string{str("a,b")}}},
		{"newline", HostState{IP: str("1\n"), Battery: str("2")}},
		{"too many lines", HostState{DataLines: make([]*string, MaxDataLines+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AppendHostState([]byte("keep"), tt.s)
			require.ErrorIs(t, err, ErrInvalidValue)
			require.Equal(t, "keep", string(out))
		})
	}
}

func TestFrameErrorUnwrap(t *testing.T) {
	_, err := ParseHostState("cursor_index=1&oops")
	require.ErrorIs(t, err, ErrMalformedToken)
	require.Contains(t, err.Error(), "string mismatch")

	_, err = ParseHostState("abc")
	require.ErrorIs(t, err, ErrNotKeyValueText)
}

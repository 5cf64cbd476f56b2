package screen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"picodeck/keypad"
	"picodeck/proto"
)

func texts(t *Table) []string {
	out := make([]string, Rows)
	for i := range t {
		if t[i].Set {
			out[i] = t[i].Text
		} else {
			out[i] = "-"
		}
	}
	return out
}

func TestComposerGreeting(t *testing.T) {
	c := NewComposer()
	want := []string{"-", "-", "-", "-", "-", Greeting, "-", "-", "-", "-"}
	require.Equal(t, want, texts(c.Table()))
}

func TestComposerApplyHostState(t *testing.T) {
	c := NewComposer()
	st, err := proto.ParseHostState("cursor_index=1&ip_and_battery=10.0.0.1/87&title_and_paginator=Menu/1of2&data_lines=alpha,beta,,delta")
	require.NoError(t, err)
	c.ApplyHostState(st)

	want := []string{
		"Menu 1of2",
		" alpha",
		">beta",
		"-",
		" delta",
		"-",
		"-",
		"-",
		"-",
		"10.0.0.1 87%",
	}
	require.Equal(t, want, texts(c.Table()))
}

func TestComposerCursorOnEmptyLine(t *testing.T) {
	c := NewComposer()
	st, err := proto.ParseHostState("cursor_index=6&data_lines=a")
	require.NoError(t, err)
	c.ApplyHostState(st)

	got := texts(c.Table())
	require.Equal(t, " a", got[1])
	require.Equal(t, ">", got[7])
	require.Equal(t, "-", got[0])
	require.Equal(t, "-", got[9])
}

func TestComposerReplacesPreviousState(t *testing.T) {
	c := NewComposer()
	st, err := proto.ParseHostState("title_and_paginator=A/1&data_lines=x,y,z")
	require.NoError(t, err)
	c.ApplyHostState(st)

	st, err = proto.ParseHostState("data_lines=only")
	require.NoError(t, err)
	c.ApplyHostState(st)

	got := texts(c.Table())
	require.Equal(t, "-", got[0])
	require.Equal(t, " only", got[1])
	require.Equal(t, "-", got[2])
	require.Equal(t, "-", got[3])
}

func TestComposerNoteKey(t *testing.T) {
	c := NewComposer()
	c.NoteKey(keypad.Event{Key: keypad.Down, HoldMS: 300})
	require.Equal(t, "kc: d", c.Table()[Rows-1].Text)

	st, err := proto.ParseHostState("ip_and_battery=1.2.3.4/50")
	require.NoError(t, err)
	c.ApplyHostState(st)
	require.Equal(t, "1.2.3.4 50% kc: d", c.Table()[Rows-1].Text)

	c.NoteKey(keypad.Event{Key: keypad.OK})
	require.Equal(t, "1.2.3.4 50% kc: o", c.Table()[Rows-1].Text)
}

func TestComposerClipsLongText(t *testing.T) {
	c := NewComposer()
	long := strings.Repeat("w", 40)
	st, err := proto.ParseHostState("data_lines=" + long)
	require.NoError(t, err)
	c.ApplyHostState(st)

	got := c.Table()[1].Text
	require.Len(t, got, Columns)
	require.Equal(t, " "+long[:Columns-1], got)
}

func TestComposerClipsOnRuneBoundary(t *testing.T) {
	c := NewComposer()
	long := strings.Repeat("é", 40)
	st, err := proto.ParseHostState("data_lines=" + long)
	require.NoError(t, err)
	c.ApplyHostState(st)

	got := c.Table()[1].Text
	require.True(t, utf8.ValidString(got))
	require.Equal(t, Columns, utf8.RuneCountInString(got))
	require.Equal(t, " "+strings.Repeat("é", Columns-1), got)
}

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"picodeck/keypad"
	"picodeck/proto"
)

func TestSendDryRun(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"send", "--dry-run", "--title", "Menu", "--page", "1of2", "--lines", "a,,c", "--cursor", "2"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, `"cursor_index=2&title_and_paginator=Menu/1of2&data_lines=a,,c\r\n"`+"\n", out.String())
}

func TestScreenFrame(t *testing.T) {
	frame, err := screenFrame([]byte("data_lines=a,b&cursor_index=1"))
	require.NoError(t, err)
	require.Equal(t, "data_lines=a,b&cursor_index=1\r\n", string(frame))

	frame, err = screenFrame([]byte("cursor_index=1\r\n"))
	require.NoError(t, err)
	require.Equal(t, "cursor_index=1\r\n", string(frame))

	_, err = screenFrame([]byte("cursor_index=x"))
	var fe *proto.FrameError
	require.ErrorAs(t, err, &fe)

	_, err = screenFrame([]byte("a=1\r\nb=2"))
	require.Error(t, err)

	_, err = screenFrame(bytes.Repeat([]byte("x"), proto.MaxFrameBytes))
	require.ErrorIs(t, err, proto.ErrCapacityExceeded)
}

func TestKeyMessageJSON(t *testing.T) {
	b, err := json.Marshal(newKeyMessage(keypad.Event{Key: keypad.Right, HoldMS: 300}))
	require.NoError(t, err)
	require.JSONEq(t, `{"key":"right","kc":"r","hold_ms":300}`, string(b))
}

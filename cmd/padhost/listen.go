package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picodeck/keypad"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print key events sent by the device",
	Long: `Print every key event the device sends, one per line:

  down 1004ms
  ok 251ms`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func runListen(cmd *cobra.Command, _ []string) error {
	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()
	closeOnDone(cmd.Context(), port)

	out := cmd.OutOrStdout()
	return readEvents(port, func(ev keypad.Event) error {
		_, err := fmt.Fprintf(out, "%s %dms\n", ev.Key, ev.HoldMS)
		return err
	})
}

package main

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"picodeck/proto"
)

var sendOpts struct {
	cursor  int32
	ip      string
	battery string
	title   string
	page    string
	lines   []string
	dryRun  bool
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one screen update to the device",
	Long: `Encode the given fields as one host frame and write it to the device.
Only the fields given on the command line are sent.

Examples:
  padhost send -p /dev/ttyACM0 --title Menu --page 1/3 --lines alpha,beta --cursor 0
  padhost send --ip 10.0.0.1 --battery 87 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	f := sendCmd.Flags()
	f.Int32Var(&sendOpts.cursor, "cursor", 0, "cursor index")
	f.StringVar(&sendOpts.ip, "ip", "", "IP address shown in the status line")
	f.StringVar(&sendOpts.battery, "battery", "", "battery percentage")
	f.StringVar(&sendOpts.title, "title", "", "screen title")
	f.StringVar(&sendOpts.page, "page", "", "paginator text")
	f.StringSliceVar(&sendOpts.lines, "lines", nil, "data lines, comma separated")
	f.BoolVar(&sendOpts.dryRun, "dry-run", false, "print the frame instead of sending it")
}

// hostStateFromFlags builds a HostState holding only the flags that were set.
func hostStateFromFlags(f *pflag.FlagSet) proto.HostState {
	var s proto.HostState
	if f.Changed("cursor") {
		c := sendOpts.cursor
		s.CursorIndex = &c
	}
	if f.Changed("ip") || f.Changed("battery") {
		ip, bat := sendOpts.ip, sendOpts.battery
		s.IP, s.Battery = &ip, &bat
	}
	if f.Changed("title") || f.Changed("page") {
		title, page := sendOpts.title, sendOpts.page
		s.Title, s.Paginator = &title, &page
	}
	if f.Changed("lines") {
		s.DataLines = make([]*string, len(sendOpts.lines))
		for i := range sendOpts.lines {
			if sendOpts.lines[i] != "" {
				s.DataLines[i] = &sendOpts.lines[i]
			}
		}
	}
	return s
}

func runSend(cmd *cobra.Command, _ []string) error {
	frame, err := proto.AppendHostState(nil, hostStateFromFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	if sendOpts.dryRun {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%q\n", frame)
		return err
	}

	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()
	if _, err := port.Write(frame); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := port.Drain(); err != nil {
		glog.Warningf("drain: %v", err)
	}
	glog.V(2).Infof("SEND %q", frame)
	return nil
}

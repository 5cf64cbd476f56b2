// Command padhost talks to a picodeck keypad over its serial link.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"picodeck/internal/seriallink"
)

var (
	cfgFile string
	cfg     = DefaultConfig()

	portFlag string
	baudFlag int

	rootCmd = &cobra.Command{
		Use:               "padhost",
		Short:             "Host companion for the picodeck keypad",
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: loadConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "serial port (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&baudFlag, "baud", "b", 115200, "baud rate (overrides config)")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	// glog reads its flags from the standard set.
	_ = flag.CommandLine.Parse(nil)

	c, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("port") {
		c.Serial.Port = portFlag
	}
	if flags.Changed("baud") {
		c.Serial.BaudRate = baudFlag
	}
	cfg = c
	return nil
}

func openPort() (serial.Port, error) {
	if cfg.Serial.Port == "" {
		return nil, fmt.Errorf("no serial port: use --port or set serial.port in the config")
	}
	port, err := seriallink.Open(cfg.Serial)
	if err != nil {
		return nil, err
	}
	glog.Infof("opened %s at %d baud", cfg.Serial.Port, cfg.Serial.BaudRate)
	return port, nil
}

// closeOnDone closes port when ctx ends, which unblocks a pending read.
func closeOnDone(ctx context.Context, port serial.Port) {
	go func() {
		<-ctx.Done()
		port.Close()
	}()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

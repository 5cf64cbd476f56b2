//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"picodeck/app"
	"picodeck/hal"
	"picodeck/hal/hostwindow"
	"picodeck/internal/seriallink"
)

func main() {
	var (
		cfg    hal.HeadlessConfig
		appCfg = app.DefaultConfig()
		script string
		scale  int
	)
	cfg.Host.Serial = seriallink.DefaultConfig()
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.DurationVar(&cfg.Duration, "duration", 0, "Stop after this long in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Host.Serial.Port, "port", "", "Serial port of the host link (empty = stdin/stdout).")
	flag.IntVar(&cfg.Host.Serial.BaudRate, "baud", cfg.Host.Serial.BaudRate, "Baud rate of the host link.")
	flag.StringVar(&script, "script", "", "Scripted key presses, e.g. \"d@100ms+200ms,o@1s+1.5s\".")
	flag.IntVar(&scale, "scale", 4, "Window scale factor.")
	flag.DurationVar(&appCfg.FrameInterval, "frame", appCfg.FrameInterval, "Render interval.")
	flag.Parse()
	defer glog.Flush()

	if script != "" {
		presses, err := hal.ParseScript(script)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg.Host.Script = presses
	}

	run := func(ctx context.Context, h hal.HAL) error {
		return app.Run(ctx, h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, cfg, run); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			glog.Flush()
			os.Exit(1)
		}
		return
	}

	h, err := hal.NewHost(cfg.Host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer h.Close()
	if err := hostwindow.Run(h, scale, run); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

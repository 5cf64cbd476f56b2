//go:build !tinygo

package hal

import (
	"context"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Duration stops the run after this long. Zero runs until ctx is done.
	Duration time.Duration
	Host     HostConfig
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, run func(context.Context, HAL) error) error {
	h, err := NewHost(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	err = run(ctx, h)
	if err == context.DeadlineExceeded && cfg.Duration > 0 {
		return nil
	}
	return err
}

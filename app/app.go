package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"picodeck/hal"
	"picodeck/kernel"
	"picodeck/keypad"
	"picodeck/proto"
	"picodeck/screen"

	"golang.org/x/sync/errgroup"
)

// Config tunes the device loops.
type Config struct {
	Keypad keypad.Config
	// FrameInterval paces the render loop. Zero renders as fast as possible.
	FrameInterval time.Duration
	// PollInterval is slept between input loop iterations. Zero only yields.
	PollInterval time.Duration
}

// DefaultConfig returns the keypad defaults, a 16 ms frame and a 1 ms poll.
func DefaultConfig() Config {
	return Config{
		Keypad:        keypad.DefaultConfig(),
		FrameInterval: 16 * time.Millisecond,
		PollInterval:  time.Millisecond,
	}
}

// readerGrace bounds how long Run waits for the serial reader to stop.
const readerGrace = 100 * time.Millisecond

// rxEvent is one byte from the serial link, or a link error.
type rxEvent struct {
	b   byte
	err error
}

// Device wires the input loop and the render loop together. The two loops
// share nothing but the line table slot.
type Device struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	lines *kernel.Slot[screen.Table]
	rx    kernel.Queue[rxEvent]
}

// New returns a device bound to h. Nothing runs until Run is called.
func New(h hal.HAL, cfg Config) *Device {
	return &Device{
		h:     h,
		cfg:   cfg,
		log:   h.Logger(),
		lines: kernel.NewSlot[screen.Table](),
	}
}

// Run starts the device and blocks until ctx is done or a loop fails. On
// failure the fatal screen is drawn before Run returns.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	return New(h, cfg).Run(ctx)
}

// Run is the method form of the package level Run. A Device runs once.
func (d *Device) Run(ctx context.Context) error {
	if bl := d.h.Backlight(); bl != nil {
		bl.High()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return guard("input", func() error { return d.runInput(ctx) }) })
	g.Go(func() error { return guard("render", func() error { return d.runRender(ctx) }) })
	readDone := make(chan struct{})
	if s := d.h.Serial(); s != nil {
		go func() {
			defer close(readDone)
			d.readSerial(ctx, s)
		}()
	} else {
		close(readDone)
	}

	err := g.Wait()
	// The reader stops at its next Read return once ctx is done. A Read that
	// never returns, such as one on an idle stdin, is left behind after the
	// grace period; closing the link ends it.
	select {
	case <-readDone:
	case <-time.After(readerGrace):
	}
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	d.logf("picodeck: fatal: %v", err)
	showFatal(d.h, err)
	return err
}

// guard turns a panic in fn into an error so the fatal screen can show it.
func guard(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
	}()
	return fn()
}

func (d *Device) readSerial(ctx context.Context, s hal.Serial) {
	var buf [64]byte
	for ctx.Err() == nil {
		n, err := s.Read(buf[:])
		for i := 0; i < n; i++ {
			if !d.push(ctx, rxEvent{b: buf[i]}) {
				return
			}
		}
		if err != nil {
			if !d.push(ctx, rxEvent{err: err}) || errors.Is(err, io.EOF) {
				return
			}
		}
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

func (d *Device) push(ctx context.Context, ev rxEvent) bool {
	for !d.rx.TrySend(ev) {
		if ctx.Err() != nil {
			return false
		}
		runtime.Gosched()
	}
	return true
}

func (d *Device) runInput(ctx context.Context) error {
	eng := keypad.NewEngine(d.cfg.Keypad)
	comp := screen.NewComposer()
	clock := d.h.Clock()
	link := d.h.Serial()

	var (
		frames  proto.FrameReader
		out     [proto.MaxEventBytes]byte
		buttons []hal.Button
		closed  bool
	)
	if kp := d.h.Keypad(); kp != nil {
		buttons = kp.Buttons()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sample := keypad.Read(buttons)

		for i := 0; i < kernel.QueueSlots; i++ {
			ev, ok := d.rx.TryRecv()
			if !ok {
				break
			}
			if ev.err != nil {
				if errors.Is(ev.err, io.EOF) {
					if !closed {
						d.logf("serial: link closed")
					}
					closed = true
					continue
				}
				d.logf("serial: %v", ev.err)
				frames.Reset()
				continue
			}
			frame, ok, err := frames.Push(ev.b)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}
			if !ok || len(frame) == 0 {
				continue
			}
			st, err := proto.ParseHostState(string(frame))
			if err != nil {
				if errors.Is(err, proto.ErrCapacityExceeded) {
					return fmt.Errorf("input: %w", err)
				}
				d.logf("proto: dropped frame: %v", err)
				continue
			}
			comp.ApplyHostState(st)
		}

		if ev, ok := eng.Step(clock.Micros(), sample); ok {
			msg, err := proto.EncodeKeyEvent(&out, ev)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}
			if link != nil && !closed {
				if _, err := link.Write(msg); err != nil {
					d.logf("serial: write: %v", err)
				}
			}
			d.logf("key: sent %s %dms", ev.Key, ev.HoldMS)
			comp.NoteKey(ev)
		}

		t := comp.Table()
		d.lines.Write(t)
		t.ClearDirty()

		if d.cfg.PollInterval > 0 {
			time.Sleep(d.cfg.PollInterval)
		} else {
			runtime.Gosched()
		}
	}
}

func (d *Device) runRender(ctx context.Context) error {
	disp := d.h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	panel := hal.NewFramebufferDisplay(disp.Framebuffer())
	coord := screen.NewCoordinator(screen.NewDisplaySurface(panel))

	// Wait for the first table without ignoring ctx; after that Read never blocks.
	var t screen.Table
	for {
		v, ok := d.lines.TryRead()
		if ok {
			t = v
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		coord.Render(&t)
		if err := panel.Display(); err != nil {
			d.logf("display: %v", err)
		}

		if d.cfg.FrameInterval > 0 {
			time.Sleep(d.cfg.FrameInterval)
		} else {
			runtime.Gosched()
		}
		t = d.lines.Read()
	}
}

func (d *Device) logf(format string, args ...any) {
	if d.log == nil {
		return
	}
	d.log.WriteLineString(fmt.Sprintf(format, args...))
}

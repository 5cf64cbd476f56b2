//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/golang/glog"

	"picodeck/internal/seriallink"
	"picodeck/keypad"
)

// HostConfig configures the simulator HAL.
type HostConfig struct {
	// Serial is the host link. An empty port uses stdin and stdout.
	Serial seriallink.Config
	// Script replaces the interactive keypad with scripted presses.
	Script []ScriptPress
	Width  int
	Height int
}

// Host is the HAL used when the firmware runs as a desktop program.
type Host struct {
	logger    *hostLogger
	backlight *hostLED
	fb        *hostFramebuffer
	pins      [keypad.NumKeys]*virtualPin
	kp        Keypad
	clock     *monotonicClock
	serial    Serial
	closer    io.Closer
}

// NewHost returns a simulator HAL.
func NewHost(cfg HostConfig) (*Host, error) {
	if cfg.Width <= 0 {
		cfg.Width = 128
	}
	if cfg.Height <= 0 {
		cfg.Height = 128
	}

	logger := &hostLogger{}
	h := &Host{
		logger:    logger,
		backlight: &hostLED{logger: logger},
		fb:        newHostFramebuffer(cfg.Width, cfg.Height),
		clock:     newMonotonicClock(),
	}

	pins := make([]GPIOPin, keypad.NumKeys)
	for i := range pins {
		name := fmt.Sprintf("KEY_%s", keypad.Key(i))
		if len(cfg.Script) > 0 {
			var presses []ScriptPress
			for _, p := range cfg.Script {
				if int(p.Key) == i {
					presses = append(presses, p)
				}
			}
			pins[i] = newScriptPin(name, presses)
			continue
		}
		vp := newVirtualPin(name, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
		h.pins[i] = vp
		pins[i] = vp
	}
	kp, err := NewPinKeypad(pins)
	if err != nil {
		return nil, err
	}
	h.kp = kp

	if cfg.Serial.Port == "" {
		h.serial = &hostSerial{r: stdinReader(), w: stdoutWriter()}
	} else {
		port, err := seriallink.Open(cfg.Serial)
		if err != nil {
			return nil, err
		}
		h.serial = &portSerial{port: port}
		h.closer = port
	}
	return h, nil
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Backlight() LED   { return h.backlight }
func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Keypad() Keypad   { return h.kp }
func (h *Host) Clock() Clock     { return h.clock }
func (h *Host) Serial() Serial   { return h.serial }

// Close releases the serial port, which also ends a pending read.
func (h *Host) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// SetKey drives a simulated key. It has no effect when the keypad is scripted.
func (h *Host) SetKey(k keypad.Key, down bool) {
	if int(k) >= len(h.pins) || h.pins[k] == nil {
		return
	}
	h.pins[k].drive(!down)
}

// Size returns the display size in pixels.
func (h *Host) Size() (width, height int) {
	return h.fb.width, h.fb.height
}

// SnapshotRGBA copies the last presented frame into img, which must match Size.
func (h *Host) SnapshotRGBA(img *image.RGBA) {
	h.fb.snapshotRGBA(img)
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct{}

func (l *hostLogger) WriteLineString(s string) {
	glog.InfoDepth(1, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	glog.InfoDepth(1, string(b))
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("backlight: on")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("backlight: off")
}

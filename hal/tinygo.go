//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7735"
)

type tinyGoHAL struct {
	logger    *uartLogger
	backlight *pinLED
	fb        Framebuffer
	kp        Keypad
	clock     *monotonicClock
	serial    Serial
}

// New returns the Raspberry Pi Pico HAL.
//
// Host link: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Logs: USB CDC.
// Display: ST7735 128x128 on SPI0, SCK GP6, SDO GP7, CS GP5, DC GP13,
// RST GP14, backlight GP12.
// Keypad: GP16 up, GP17 down, GP18 left, GP19 right, GP20 ok, active low.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{w: machine.Serial}

	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP6,
		SDO:       machine.GP7,
		SDI:       machine.GP4,
		Frequency: 16_000_000,
	})
	lcd := st7735.New(machine.SPI0, machine.GP14, machine.GP13, machine.GP5, machine.GP12)
	lcd.Configure(st7735.Config{
		Width:        128,
		Height:       128,
		Rotation:     drivers.Rotation90,
		RowOffset:    2,
		ColumnOffset: 1,
	})

	var pins []GPIOPin
	for _, p := range []machine.Pin{machine.GP16, machine.GP17, machine.GP18, machine.GP19, machine.GP20} {
		pins = append(pins, machinePin{pin: p})
	}
	kp, err := NewPinKeypad(pins)
	if err != nil {
		logger.WriteLineString("hal: keypad: " + err.Error())
	}

	return &tinyGoHAL{
		logger:    logger,
		backlight: &pinLED{pin: machine.GP12},
		fb:        newST7735Framebuffer(&lcd, 128, 128),
		kp:        kp,
		clock:     newMonotonicClock(),
		serial:    &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Backlight() LED   { return h.backlight }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Keypad() Keypad   { return h.kp }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }

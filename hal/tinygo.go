//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"

	"octopad/expander"
)

type tinyGoHAL struct {
	logger *uartLogger
	leds   *pinLEDs
	btns   ButtonPort
	t      *tinyGoTime
}

// New returns a baremetal HAL for an RP2040 board wired like the reference
// unit: UART0 on GP0/GP1, LEDs on GP6..GP13, buttons behind a PCF8574 on
// I2C0 (GP4/GP5) with a direct-GPIO fallback on GP16..GP23.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	leds := newPinLEDs([8]machine.Pin{
		machine.GP6, machine.GP7, machine.GP8, machine.GP9,
		machine.GP10, machine.GP11, machine.GP12, machine.GP13,
	})

	var btns ButtonPort
	if b, err := newExpanderButtons(); err == nil {
		btns = b
	} else {
		logger.WriteLineString("buttons: " + err.Error() + ", falling back to GPIO")
		btns = newPinButtons([8]machine.Pin{
			machine.GP16, machine.GP17, machine.GP18, machine.GP19,
			machine.GP20, machine.GP21, machine.GP22, machine.GP23,
		})
	}

	return &tinyGoHAL{
		logger: logger,
		leds:   leds,
		btns:   btns,
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger      { return h.logger }
func (h *tinyGoHAL) Buttons() ButtonPort { return h.btns }
func (h *tinyGoHAL) LEDs() LEDPort       { return h.leds }
func (h *tinyGoHAL) Display() Display    { return nullDisplay{} }
func (h *tinyGoHAL) Time() Time          { return h.t }

type nullDisplay struct{}

func (nullDisplay) Framebuffer() Framebuffer { return nil }

func newExpanderButtons() (ButtonPort, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		SCL:       machine.GP5,
		SDA:       machine.GP4,
		Frequency: 100_000,
	}); err != nil {
		return nil, fmt.Errorf("i2c0: %w", err)
	}

	d := expander.New(bus)
	if err := d.Configure(expander.Config{}); err != nil {
		return nil, err
	}
	// Probe once so a missing chip is caught at boot, not per sample.
	if _, err := d.ReadButtons(); err != nil {
		return nil, err
	}
	return d, nil
}

// pinButtons reads eight directly wired buttons, grounded when pressed,
// using the internal pullups.
type pinButtons struct {
	pins [8]machine.Pin
}

func newPinButtons(pins [8]machine.Pin) *pinButtons {
	for _, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return &pinButtons{pins: pins}
}

func (b *pinButtons) ReadButtons() (uint8, error) {
	var out uint8
	for i, p := range b.pins {
		if !p.Get() {
			out |= 1 << i
		}
	}
	return out, nil
}

type pinLEDs struct {
	pins [8]machine.Pin
	mask uint8
}

func newPinLEDs(pins [8]machine.Pin) *pinLEDs {
	for _, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	return &pinLEDs{pins: pins}
}

func (l *pinLEDs) Set(mask uint8) {
	l.mask = mask
	for i, p := range l.pins {
		p.Set(mask&(1<<i) != 0)
	}
}

func (l *pinLEDs) Mask() uint8 { return l.mask }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

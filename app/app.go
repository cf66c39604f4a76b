// Package app is the foreground side of the button engine: it binds the
// query operations to LED behavior and an on-screen event log. The bindings
// mirror the reference board: Mode toggles an LED per press, Next
// distinguishes short from long presses, Plus/Minus scroll a bar across the
// LED bank with auto-repeat.
package app

import (
	"fmt"
	"time"

	"octopad/hal"
	"octopad/keypad"
)

// Button lines, in port bit order.
const (
	BtnMode  = 0
	BtnNext  = 1
	BtnPlus  = 2
	BtnMinus = 3
)

// RepeatMask holds the lines that auto-repeat while held.
const RepeatMask = 1<<BtnMode | 1<<BtnNext | 1<<BtnPlus | 1<<BtnMinus

// Indicator LEDs on the low bits of the latch; the high five bits are the
// scrolling bar.
const (
	ledMode  = 1 << 0
	ledShort = 1 << 1
	ledLong  = 1 << 2

	barMask = 0xF8
)

// Config adjusts the app wiring.
type Config struct {
	// SampleEvery divides the 1 ms time base down to the engine cadence.
	// Zero means the 10 ms reference period.
	SampleEvery uint64
}

type system struct {
	h    hal.HAL
	pad  *keypad.Pad
	leds hal.LEDPort
	ui   *ui
}

// New starts the sampling loop and returns the per-frame step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig is New with an explicit Config.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run starts the app and polls forever (TinyGo entrypoint). The sleep keeps
// the foreground loop from starving the sampling goroutine on the
// cooperative scheduler.
func Run(h hal.HAL) {
	s := newSystem(h, Config{})
	for {
		_ = s.step()
		time.Sleep(5 * time.Millisecond)
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	s := &system{
		h:    h,
		pad:  keypad.New(keypad.Config{RepeatMask: RepeatMask}),
		leds: h.LEDs(),
		ui:   newUI(h.Display()),
	}

	port := h.Buttons()
	sampler := keypad.NewSampler(s.pad, func() (keypad.Mask, error) {
		v, err := port.ReadButtons()
		return keypad.Mask(v), err
	}, cfg.SampleEvery)

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go sampler.Run(ch)
		}
	}

	return s
}

// step is the foreground loop body: consume pending events, update the LED
// latch, refresh the panel.
func (s *system) step() error {
	if s.pad.Pressed(1<<BtnMode) != 0 {
		s.leds.Set(s.leds.Mask() ^ ledMode)
		s.event("mode: press")
	}

	if s.pad.ShortPressed(1<<BtnNext) != 0 {
		s.leds.Set(s.leds.Mask() ^ ledShort)
		s.event("next: short press")
	}
	if s.pad.LongPressed(1<<BtnNext) != 0 {
		s.leds.Set(s.leds.Mask() ^ ledLong)
		s.event("next: long press")
	}

	if s.pad.Pressed(1<<BtnPlus)|s.pad.Repeated(1<<BtnPlus) != 0 {
		s.leds.Set(scrollUp(s.leds.Mask()))
		s.event(fmt.Sprintf("plus: bar %05b", s.leds.Mask()>>3))
	}
	if s.pad.Pressed(1<<BtnMinus)|s.pad.Repeated(1<<BtnMinus) != 0 {
		s.leds.Set(scrollDown(s.leds.Mask()))
		s.event(fmt.Sprintf("minus: bar %05b", s.leds.Mask()>>3))
	}

	s.ui.draw(s.leds.Mask(), uint8(s.pad.Held(keypad.AllLines)))
	return nil
}

func (s *system) event(msg string) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(msg)
	}
	s.ui.log(msg)
}

// scrollUp lights one more LED of the bar, bottom up, wrapping to empty
// after full.
func scrollUp(m uint8) uint8 {
	bar := m & barMask
	if bar == barMask {
		bar = 0
	} else {
		bar = bar<<1&barMask | 0x08
	}
	return m&^barMask | bar
}

// scrollDown darkens the topmost lit LED of the bar, wrapping to full from
// empty.
func scrollDown(m uint8) uint8 {
	bar := m & barMask
	if bar == 0 {
		bar = barMask
	} else {
		bar = bar >> 1 & barMask
	}
	return m&^barMask | bar
}

// Package hal is the only contact point between the button engine /
// application and the platform: a desktop simulation on the host, real pins
// and buses under TinyGo.
package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ButtonPort samples the eight monitored lines in one parallel read.
// Implementations normalize polarity: bit i set means line i is electrically
// pressed, however it is wired.
type ButtonPort interface {
	ReadButtons() (uint8, error)
}

// LEDPort is an 8-bit output latch, one LED per bit.
type LEDPort interface {
	Set(mask uint8)
	Mask() uint8
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream at 1 ms granularity. The engine's
// sampling cadence is derived from it by division in userland, so retuning
// the period never touches platform code.
type Time interface {
	Ticks() <-chan uint64
}

// HAL aggregates the platform services.
type HAL interface {
	Logger() Logger
	Buttons() ButtonPort
	LEDs() LEDPort
	Display() Display
	Time() Time
}

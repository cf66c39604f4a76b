//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger  *hostLogger
	leds    *hostLEDs
	keys    *keyButtons
	buttons ButtonPort
	fb      *hostFramebuffer
	t       *hostTime
}

// New returns a host HAL implementation. Buttons come from the keyboard
// (keys 1..8) when a window is running, wrapped in a contact-bounce
// simulator so the debounce filter has something to chew on.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	keys := newKeyButtons()
	return &hostHAL{
		logger:  logger,
		leds:    &hostLEDs{logger: logger},
		keys:    keys,
		buttons: NewBouncePort(keys),
		fb:      newHostFramebuffer(320, 320),
		t:       newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger      { return h.logger }
func (h *hostHAL) Buttons() ButtonPort { return h.buttons }
func (h *hostHAL) LEDs() LEDPort       { return h.leds }
func (h *hostHAL) Display() Display    { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time          { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLEDs struct {
	mu     sync.Mutex
	mask   uint8
	logger *hostLogger
}

func (l *hostLEDs) Set(mask uint8) {
	l.mu.Lock()
	changed := mask != l.mask
	l.mask = mask
	l.mu.Unlock()
	if changed && l.logger != nil {
		l.logger.WriteLineString(fmt.Sprintf("leds: %08b", mask))
	}
}

func (l *hostLEDs) Mask() uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mask
}

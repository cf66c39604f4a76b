//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless runs the app without opening a window. With no keyboard to
// sample, the buttons are driven by a scripted pulse schedule: a short tap,
// a long hold and a repeat-length hold on the first three lines, still
// routed through the bounce simulator.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New().(*hostHAL)
	var lines [8]PulseLine
	lines[0] = PulseLine{Period: 2 * time.Second, Press: 200 * time.Millisecond}
	lines[1] = PulseLine{Period: 5 * time.Second, Press: 1500 * time.Millisecond}
	lines[2] = PulseLine{Period: 8 * time.Second, Press: 3 * time.Second}
	h.buttons = NewBouncePort(NewPulsePort(lines))

	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

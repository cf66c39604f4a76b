// Package keypad debounces up to eight button lines sampled from a single
// parallel input port and derives press, auto-repeat, short-press and
// long-press events from the filtered state.
//
// All eight lines are filtered in parallel: two bit vectors hold a 2-bit
// saturating counter per line, so one Tick is a handful of bitwise ops
// regardless of how many lines are wired. A transition is committed only
// after the raw input has disagreed with the debounced state for four
// consecutive ticks; any flicker back resets the streak.
package keypad

import "sync"

// Mask selects a subset of the eight input lines, bit i = line i.
// Samples, states and query results are all masks in asserted-high space:
// a set bit means "pressed" regardless of the electrical polarity of the
// underlying port.
type Mask uint8

// AllLines matches every input line.
const AllLines Mask = 0xFF

// Default repeat timing, in ticks. At the reference 10 ms cadence these are
// the classic 500 ms initial delay and 200 ms repeat interval.
const (
	DefaultRepeatStart = 50
	DefaultRepeatNext  = 20
)

// Config sets the auto-repeat behavior of a Pad.
type Config struct {
	// RepeatMask selects the lines that participate in auto-repeat.
	// Lines outside the mask only ever produce press events.
	RepeatMask Mask

	// RepeatStart is the hold time before the first repeat event, in ticks.
	// Zero means DefaultRepeatStart.
	RepeatStart uint8

	// RepeatNext is the interval between subsequent repeat events, in ticks.
	// Zero means DefaultRepeatNext.
	RepeatNext uint8
}

// Pad is the debounce and auto-repeat engine for one 8-line button port.
//
// Tick is the sole mutator of the filter state and must be called at a fixed
// cadence. The query methods may be called at any time from any goroutine;
// each one reads and clears its result atomically with respect to Tick, the
// software analogue of masking the tick interrupt around a read-modify-write.
type Pad struct {
	mu  sync.Mutex
	cfg Config

	state Mask // debounced pressed/released per line
	press Mask // pending press events, set here, cleared by queries
	rpt   Mask // pending repeat events, set here, cleared by queries

	// Vertical 2-bit counters: line i's counter is ct1[i]:ct0[i]. They sit
	// at 11 while a line agrees with state and count down through 10, 01,
	// 00 while it disagrees; the commit happens on the wrap back to 11.
	ct0, ct1 Mask

	// Shared repeat countdown for all repeat-eligible lines. Reloaded to
	// RepeatStart whenever no eligible line is held, so lines pressed later
	// join the phase of the first one.
	rptCount uint8
}

// New returns a Pad with all lines released and no events pending.
func New(cfg Config) *Pad {
	if cfg.RepeatStart == 0 {
		cfg.RepeatStart = DefaultRepeatStart
	}
	if cfg.RepeatNext == 0 {
		cfg.RepeatNext = DefaultRepeatNext
	}
	return &Pad{
		cfg: cfg,
		// Counters start in the "agrees with state" position so that the
		// first transition after power-up takes the full confirm window
		// like every later one.
		ct0:      0xFF,
		ct1:      0xFF,
		rptCount: cfg.RepeatStart,
	}
}

// Tick advances the filter by one sampling period. sample is the current
// level of all eight lines in asserted-high space (bit set = electrically
// pressed right now, before debouncing).
//
// Ticks must not overlap; the caller provides the fixed cadence.
func (p *Pad) Tick(sample Mask) {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := p.state ^ sample
	p.ct0 = ^(p.ct0 & changed)
	p.ct1 = p.ct0 ^ (p.ct1 & changed)
	commit := changed & p.ct0 & p.ct1

	p.state ^= commit
	// Press events only on transitions into the pressed state.
	p.press |= p.state & commit

	if p.state&p.cfg.RepeatMask == 0 {
		p.rptCount = p.cfg.RepeatStart
	}
	p.rptCount--
	if p.rptCount == 0 {
		p.rptCount = p.cfg.RepeatNext
		p.rpt |= p.state & p.cfg.RepeatMask
	}
}

// Pressed reports which of the lines in mask have a pending press event and
// clears exactly the reported bits. A second call with the same mask returns
// 0 until a line is pressed again.
func (p *Pad) Pressed(mask Mask) Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.takePress(mask)
}

// Repeated reports which of the lines in mask have a pending auto-repeat
// event and clears exactly the reported bits.
func (p *Pad) Repeated(mask Mask) Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.takeRepeat(mask)
}

// ShortPressed reports lines in mask that were pressed and have already been
// released again, consuming their press events. A held line is not reported;
// poll it with LongPressed or keep its press pending until release.
func (p *Pad) ShortPressed(mask Mask) Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	// State and press must be read under the same critical section,
	// otherwise a release committing in between misclassifies the press.
	return p.takePress(^p.state & mask)
}

// LongPressed reports lines in mask that have been held long enough for the
// first auto-repeat event while their press event was still pending,
// consuming both. Only meaningful for lines in the repeat mask.
func (p *Pad) LongPressed(mask Mask) Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.takePress(p.takeRepeat(mask))
}

// Held reports which of the lines in mask are currently in the debounced
// pressed state. Unlike the event queries it consumes nothing.
func (p *Pad) Held(mask Mask) Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state & mask
}

func (p *Pad) takePress(mask Mask) Mask {
	mask &= p.press
	p.press ^= mask
	return mask
}

func (p *Pad) takeRepeat(mask Mask) Mask {
	mask &= p.rpt
	p.rpt ^= mask
	return mask
}

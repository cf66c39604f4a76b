package hal

import "time"

// PulseLine describes one line of a PulsePort: held pressed for the first
// Press of every Period. A zero Period leaves the line released.
type PulseLine struct {
	Period time.Duration
	Press  time.Duration
}

// PulsePort is a clock-driven button source: each line presses itself on a
// fixed schedule. It stands in for a human in headless runs, where there is
// no window to type into.
type PulsePort struct {
	t0    time.Time
	now   func() time.Time
	lines [8]PulseLine
}

func NewPulsePort(lines [8]PulseLine) *PulsePort {
	return newPulsePortWithClock(lines, time.Now)
}

func newPulsePortWithClock(lines [8]PulseLine, now func() time.Time) *PulsePort {
	if now == nil {
		now = time.Now
	}
	p := &PulsePort{t0: now(), now: now, lines: lines}
	for i := range p.lines {
		if p.lines[i].Press > p.lines[i].Period {
			p.lines[i].Press = p.lines[i].Period
		}
	}
	return p
}

func (p *PulsePort) ReadButtons() (uint8, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}

	var out uint8
	for i, ln := range p.lines {
		if ln.Period <= 0 {
			continue
		}
		if elapsed%ln.Period < ln.Press {
			out |= 1 << i
		}
	}
	return out, nil
}

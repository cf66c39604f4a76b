package keypad

import "sync/atomic"

// DefaultEvery is the sampling divider for a 1 ms time base: one engine tick
// every 10 ms.
const DefaultEvery = 10

// Sampler drives a Pad from a monotonically increasing tick sequence,
// reading the raw port once per engine tick. The time base granularity and
// the divider together set the real-world cadence; the engine itself only
// counts ticks.
type Sampler struct {
	pad   *Pad
	read  func() (Mask, error)
	every uint64

	last     Mask
	readErrs atomic.Uint64
}

// NewSampler binds pad to a raw sample source. read must return the current
// port level in asserted-high space. every is the tick divider; 0 means
// DefaultEvery.
func NewSampler(pad *Pad, read func() (Mask, error), every uint64) *Sampler {
	if every == 0 {
		every = DefaultEvery
	}
	return &Sampler{pad: pad, read: read, every: every}
}

// Run consumes tick sequence numbers until the channel closes, advancing the
// pad once per divider period. A failed read reuses the previous sample so a
// transient bus error cannot stall the filter mid-confirm.
func (s *Sampler) Run(ticks <-chan uint64) {
	for seq := range ticks {
		if seq%s.every != 0 {
			continue
		}
		sample, err := s.read()
		if err != nil {
			s.readErrs.Add(1)
			sample = s.last
		}
		s.last = sample
		s.pad.Tick(sample)
	}
}

// ReadErrors returns how many raw reads have failed since start.
func (s *Sampler) ReadErrors() uint64 {
	return s.readErrs.Load()
}

package hal

import "sync"

// bounceSamples is how many reads a line chatters for after an edge. Even,
// so the last flicker lands on the new level.
const bounceSamples = 4

// BouncePort wraps a clean ButtonPort and replays every edge as a short
// burst of contact chatter, alternating between the old and new level before
// settling. Simulated inputs are otherwise perfectly clean, which would let
// a broken debounce filter go unnoticed.
type BouncePort struct {
	mu      sync.Mutex
	inner   ButtonPort
	settled uint8
	phase   [8]uint8
}

func NewBouncePort(inner ButtonPort) *BouncePort {
	return &BouncePort{inner: inner}
}

// ReadButtons samples the inner port and applies the chatter state machine
// per line. One call is one sample; the bounce burst plays out across
// consecutive reads.
func (p *BouncePort) ReadButtons() (uint8, error) {
	raw, err := p.inner.ReadButtons()
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out uint8
	for i := 0; i < 8; i++ {
		bit := uint8(1) << i
		rawBit := raw & bit
		oldBit := p.settled & bit

		if p.phase[i] == 0 {
			if rawBit == oldBit {
				out |= rawBit
				continue
			}
			p.phase[i] = bounceSamples
		}

		p.phase[i]--
		if p.phase[i]%2 == 1 {
			out |= oldBit // flicker back to the old level
		} else {
			out |= rawBit
		}
		if p.phase[i] == 0 {
			p.settled = p.settled&^bit | rawBit
		}
	}
	return out, nil
}

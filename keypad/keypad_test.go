package keypad

import "testing"

// tickN feeds the same raw sample for n consecutive ticks.
func tickN(p *Pad, sample Mask, n int) {
	for i := 0; i < n; i++ {
		p.Tick(sample)
	}
}

func TestDebounceLatency(t *testing.T) {
	p := New(Config{})

	// Four consecutive disagreeing samples commit the transition on the
	// fourth, no earlier.
	for i := 0; i < 3; i++ {
		p.Tick(0x01)
		if got := p.Held(AllLines); got != 0 {
			t.Fatalf("Held() = %#02x after %d ticks, want 0", got, i+1)
		}
	}
	p.Tick(0x01)
	if got := p.Held(AllLines); got != 0x01 {
		t.Fatalf("Held() = %#02x after 4 ticks, want 0x01", got)
	}
	if got := p.Pressed(AllLines); got != 0x01 {
		t.Fatalf("Pressed() = %#02x, want 0x01", got)
	}

	// Exactly one commit: holding longer must not re-trigger.
	tickN(p, 0x01, 20)
	if got := p.Pressed(AllLines); got != 0 {
		t.Fatalf("Pressed() = %#02x while held, want 0", got)
	}
	if got := p.Held(AllLines); got != 0x01 {
		t.Fatalf("Held() = %#02x while held, want 0x01", got)
	}
}

func TestBounceRejection(t *testing.T) {
	for flicker := 1; flicker <= 2; flicker++ {
		p := New(Config{})

		tickN(p, 0x01, flicker) // contact bounce
		tickN(p, 0x00, 10)      // settles back released

		if got := p.Held(AllLines); got != 0 {
			t.Fatalf("flicker %d: Held() = %#02x, want 0", flicker, got)
		}
		if got := p.Pressed(AllLines); got != 0 {
			t.Fatalf("flicker %d: Pressed() = %#02x, want 0", flicker, got)
		}
	}
}

func TestFlickerRestartsConfirmWindow(t *testing.T) {
	p := New(Config{})

	// 3 ticks pressed, one tick back, then pressed again: the streak must
	// start over, so the commit lands 4 ticks after the revert.
	tickN(p, 0x01, 3)
	p.Tick(0x00)
	for i := 0; i < 3; i++ {
		p.Tick(0x01)
		if got := p.Held(AllLines); got != 0 {
			t.Fatalf("Held() = %#02x %d ticks after revert, want 0", got, i+1)
		}
	}
	p.Tick(0x01)
	if got := p.Held(AllLines); got != 0x01 {
		t.Fatalf("Held() = %#02x, want 0x01 after full confirm window", got)
	}
}

func TestPressOnlyOnPressEdges(t *testing.T) {
	p := New(Config{})

	tickN(p, 0x01, 4)
	if got := p.Pressed(AllLines); got != 0x01 {
		t.Fatalf("Pressed() = %#02x after press, want 0x01", got)
	}

	// Release commits, but must not produce a press event.
	tickN(p, 0x00, 4)
	if got := p.Held(AllLines); got != 0 {
		t.Fatalf("Held() = %#02x after release, want 0", got)
	}
	if got := p.Pressed(AllLines); got != 0 {
		t.Fatalf("Pressed() = %#02x after release, want 0", got)
	}
}

// The reference scenario: line 0 pressed at t=0, released from t=5 on.
// State commits at t=3, press is consumable exactly once, state clears at
// t=8.
func TestPressReleaseScenario(t *testing.T) {
	p := New(Config{})

	stateAt := make(map[int]Mask)
	for tk := 0; tk < 12; tk++ {
		sample := Mask(0)
		if tk < 5 {
			sample = 0x01
		}
		p.Tick(sample)
		stateAt[tk] = p.Held(AllLines)
	}

	for tk := 0; tk <= 2; tk++ {
		if stateAt[tk] != 0 {
			t.Fatalf("state = %#02x at t=%d, want 0", stateAt[tk], tk)
		}
	}
	for tk := 3; tk <= 7; tk++ {
		if stateAt[tk] != 0x01 {
			t.Fatalf("state = %#02x at t=%d, want 0x01", stateAt[tk], tk)
		}
	}
	for tk := 8; tk <= 11; tk++ {
		if stateAt[tk] != 0 {
			t.Fatalf("state = %#02x at t=%d, want 0", stateAt[tk], tk)
		}
	}

	if got := p.Pressed(0x01); got != 0x01 {
		t.Fatalf("Pressed() = %#02x, want 0x01", got)
	}
	if got := p.Pressed(0x01); got != 0 {
		t.Fatalf("Pressed() second call = %#02x, want 0", got)
	}
}

// Same scenario, but the press event is left pending until after the release
// has debounced, so it must surface through ShortPressed exactly once.
func TestShortPressScenario(t *testing.T) {
	p := New(Config{})

	tickN(p, 0x01, 5)
	tickN(p, 0x00, 4)

	if got := p.ShortPressed(0x01); got != 0x01 {
		t.Fatalf("ShortPressed() = %#02x, want 0x01", got)
	}
	if got := p.ShortPressed(0x01); got != 0 {
		t.Fatalf("ShortPressed() second call = %#02x, want 0", got)
	}
	if got := p.LongPressed(0x01); got != 0 {
		t.Fatalf("LongPressed() = %#02x, want 0", got)
	}
}

func TestShortPressNotReportedWhileHeld(t *testing.T) {
	p := New(Config{})

	tickN(p, 0x01, 6)
	if got := p.ShortPressed(0x01); got != 0 {
		t.Fatalf("ShortPressed() = %#02x while held, want 0", got)
	}
	// The press event must survive the filtered query for later consumers.
	if got := p.Pressed(0x01); got != 0x01 {
		t.Fatalf("Pressed() = %#02x after ShortPressed miss, want 0x01", got)
	}
}

// With RepeatStart=5 and RepeatNext=3 a line held from t=0 commits at t=3
// and the shared countdown, which also runs during the confirm window,
// reaches zero at t=6. Repeats then fire every 3 ticks.
func TestRepeatTiming(t *testing.T) {
	p := New(Config{RepeatMask: 0x01, RepeatStart: 5, RepeatNext: 3})

	var fires []int
	for tk := 0; tk < 14; tk++ {
		p.Tick(0x01)
		if p.Repeated(AllLines) != 0 {
			fires = append(fires, tk)
		}
	}

	want := []int{6, 9, 12}
	if len(fires) != len(want) {
		t.Fatalf("repeat fires = %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Fatalf("repeat fires = %v, want %v", fires, want)
		}
	}
}

func TestRepeatStopsOnRelease(t *testing.T) {
	// RepeatNext is longer than the confirm window so no repeat can sneak
	// in while the release is still debouncing.
	p := New(Config{RepeatMask: 0x01, RepeatStart: 5, RepeatNext: 6})

	tickN(p, 0x01, 7) // first repeat fired at t=6
	if got := p.Repeated(AllLines); got != 0x01 {
		t.Fatalf("Repeated() = %#02x, want 0x01", got)
	}

	tickN(p, 0x00, 20)
	if got := p.Repeated(AllLines); got != 0 {
		t.Fatalf("Repeated() = %#02x after release, want 0", got)
	}
}

func TestRepeatIgnoresUnmaskedLines(t *testing.T) {
	p := New(Config{RepeatMask: 0x01, RepeatStart: 5, RepeatNext: 3})

	// Line 1 is outside the repeat mask: held forever, it must never
	// produce a repeat event (the countdown keeps reloading).
	tickN(p, 0x02, 40)
	if got := p.Repeated(AllLines); got != 0 {
		t.Fatalf("Repeated() = %#02x for unmasked line, want 0", got)
	}
	if got := p.Pressed(AllLines); got != 0x02 {
		t.Fatalf("Pressed() = %#02x, want 0x02", got)
	}
}

// A press shorter than the repeat delay classifies as short, a press held
// past the first repeat classifies as long. RepeatStart=12 leaves room for
// the two debounce windows.
func TestShortVersusLongClassification(t *testing.T) {
	short := New(Config{RepeatMask: 0x01, RepeatStart: 12, RepeatNext: 4})
	tickN(short, 0x01, 4)
	tickN(short, 0x00, 4)
	if got := short.LongPressed(0x01); got != 0 {
		t.Fatalf("LongPressed() = %#02x for short press, want 0", got)
	}
	if got := short.ShortPressed(0x01); got != 0x01 {
		t.Fatalf("ShortPressed() = %#02x for short press, want 0x01", got)
	}

	long := New(Config{RepeatMask: 0x01, RepeatStart: 12, RepeatNext: 4})
	// Commit at t=3, countdown expires at t=13.
	tickN(long, 0x01, 13)
	if got := long.LongPressed(0x01); got != 0 {
		t.Fatalf("LongPressed() = %#02x before first repeat, want 0", got)
	}
	long.Tick(0x01)
	if got := long.LongPressed(0x01); got != 0x01 {
		t.Fatalf("LongPressed() = %#02x after first repeat, want 0x01", got)
	}
	// The press event was consumed by the long classification.
	tickN(long, 0x00, 4)
	if got := long.ShortPressed(0x01); got != 0 {
		t.Fatalf("ShortPressed() = %#02x after long press, want 0", got)
	}
}

// The repeat countdown is shared across all eligible lines: a line pressed
// later joins the phase of the line already held, and the countdown reloads
// only once no eligible line is held at all.
func TestSharedRepeatCountdown(t *testing.T) {
	p := New(Config{RepeatMask: 0x03, RepeatStart: 10, RepeatNext: 4})

	fires := make(map[int]Mask)
	for tk := 0; tk < 31; tk++ {
		var sample Mask
		if tk < 16 {
			sample |= 0x01 // line 0 raw-held t=0..15
		}
		if tk >= 6 && tk < 20 {
			sample |= 0x02 // line 1 raw-held t=6..19
		}
		p.Tick(sample)
		if got := p.Repeated(AllLines); got != 0 {
			fires[tk] = got
		}
	}

	want := map[int]Mask{
		11: 0x03, // line 0's countdown expires; line 1 fires along with it
		15: 0x03,
		19: 0x02, // line 0's release commits this very tick
	}
	if len(fires) != len(want) {
		t.Fatalf("repeat fires = %v, want %v", fires, want)
	}
	for tk, m := range want {
		if fires[tk] != m {
			t.Fatalf("repeat fire at t=%d = %#02x, want %#02x (all: %v)", tk, fires[tk], m, fires)
		}
	}
}

func TestQueryIdempotence(t *testing.T) {
	p := New(Config{RepeatMask: 0x01, RepeatStart: 5, RepeatNext: 3})
	tickN(p, 0x01, 7) // pressed and one repeat fired

	if got := p.Repeated(AllLines); got != 0x01 {
		t.Fatalf("Repeated() = %#02x, want 0x01", got)
	}
	if got := p.Repeated(AllLines); got != 0 {
		t.Fatalf("Repeated() second call = %#02x, want 0", got)
	}
	if got := p.Pressed(AllLines); got != 0x01 {
		t.Fatalf("Pressed() = %#02x, want 0x01", got)
	}
	if got := p.Pressed(AllLines); got != 0 {
		t.Fatalf("Pressed() second call = %#02x, want 0", got)
	}
}

func TestQueriesArePerBit(t *testing.T) {
	p := New(Config{})
	tickN(p, 0x05, 4) // lines 0 and 2 pressed together

	if got := p.Pressed(0x01); got != 0x01 {
		t.Fatalf("Pressed(0x01) = %#02x, want 0x01", got)
	}
	// Line 2's event must still be pending.
	if got := p.Pressed(AllLines); got != 0x04 {
		t.Fatalf("Pressed(AllLines) = %#02x, want 0x04", got)
	}
}

func TestZeroMaskDegradesToZero(t *testing.T) {
	p := New(Config{RepeatMask: 0x01, RepeatStart: 5, RepeatNext: 3})
	tickN(p, 0x01, 7)

	if got := p.Pressed(0); got != 0 {
		t.Fatalf("Pressed(0) = %#02x, want 0", got)
	}
	if got := p.Repeated(0); got != 0 {
		t.Fatalf("Repeated(0) = %#02x, want 0", got)
	}
	if got := p.ShortPressed(0); got != 0 {
		t.Fatalf("ShortPressed(0) = %#02x, want 0", got)
	}
	if got := p.LongPressed(0); got != 0 {
		t.Fatalf("LongPressed(0) = %#02x, want 0", got)
	}
	// Nothing was consumed by the zero-mask calls.
	if got := p.Pressed(AllLines); got != 0x01 {
		t.Fatalf("Pressed(AllLines) = %#02x, want 0x01", got)
	}
}

func TestHeldDoesNotConsume(t *testing.T) {
	p := New(Config{})
	tickN(p, 0x01, 4)

	if got := p.Held(AllLines); got != 0x01 {
		t.Fatalf("Held() = %#02x, want 0x01", got)
	}
	if got := p.Held(AllLines); got != 0x01 {
		t.Fatalf("Held() second call = %#02x, want 0x01", got)
	}
	if got := p.Pressed(AllLines); got != 0x01 {
		t.Fatalf("Pressed() = %#02x after Held, want 0x01", got)
	}
}

func TestAllLinesInParallel(t *testing.T) {
	p := New(Config{})

	tickN(p, 0xFF, 4)
	if got := p.Held(AllLines); got != 0xFF {
		t.Fatalf("Held() = %#02x, want 0xFF", got)
	}
	if got := p.Pressed(AllLines); got != 0xFF {
		t.Fatalf("Pressed() = %#02x, want 0xFF", got)
	}

	// Half the lines release while the other half stays down.
	tickN(p, 0xF0, 4)
	if got := p.Held(AllLines); got != 0xF0 {
		t.Fatalf("Held() = %#02x, want 0xF0", got)
	}
	if got := p.Pressed(AllLines); got != 0 {
		t.Fatalf("Pressed() = %#02x, want 0", got)
	}
}

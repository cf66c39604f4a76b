// padtrace replays a captured raw sample trace through the debounce engine
// and prints every committed state change and event, one line per active
// tick. Useful for post-morteming a flaky button from a logic-analyzer dump.
//
// The trace holds one 8-bit sample per line in Go integer syntax (0b0001,
// 0x01, 1), already in asserted-high space and already at the engine
// cadence. Blank lines and #-comments are skipped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"octopad/keypad"
)

func main() {
	var (
		path  = flag.String("f", "-", "trace file, - for stdin")
		mask  = flag.Uint("mask", 0x0F, "repeat mask")
		start = flag.Uint("start", keypad.DefaultRepeatStart, "ticks before the first repeat")
		next  = flag.Uint("next", keypad.DefaultRepeatNext, "ticks between repeats")
	)
	flag.Parse()

	var in io.Reader = os.Stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := replay(in, os.Stdout, keypad.Config{
		RepeatMask:  keypad.Mask(*mask),
		RepeatStart: uint8(*start),
		RepeatNext:  uint8(*next),
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func replay(in io.Reader, out io.Writer, cfg keypad.Config) error {
	pad := keypad.New(cfg)
	sc := bufio.NewScanner(in)

	tick := 0
	lineNo := 0
	var prevState keypad.Mask
	for sc.Scan() {
		lineNo++
		s := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		if s == "" {
			continue
		}

		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return fmt.Errorf("padtrace: line %d: %q: %w", lineNo, s, err)
		}

		pad.Tick(keypad.Mask(v))
		state := pad.Held(keypad.AllLines)
		press := pad.Pressed(keypad.AllLines)
		rpt := pad.Repeated(keypad.AllLines)

		if state != prevState || press != 0 || rpt != 0 {
			fmt.Fprintf(out, "t=%5d state=%08b press=%08b repeat=%08b\n",
				tick, state, press, rpt)
		}
		prevState = state
		tick++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("padtrace: read trace: %w", err)
	}

	fmt.Fprintf(out, "%d ticks replayed\n", tick)
	return nil
}

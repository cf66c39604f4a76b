package app

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"octopad/hal"
)

var (
	colorBG    = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xff}
	colorFG    = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	colorLED   = color.RGBA{R: 0xff, G: 0x50, B: 0x30, A: 0xff}
	colorPress = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
)

const panelHeight = 120

// ui renders the LED latch and the live debounced lines on the top region
// of the framebuffer and an event log terminal below it. All methods are
// no-ops on platforms without a framebuffer.
type ui struct {
	panel    *hal.RegionDisplayer
	term     *tinyterm.Terminal
	termDisp *hal.RegionDisplayer

	lastLEDs uint8
	lastHeld uint8
	drawn    bool
	dirty    bool
}

func newUI(d hal.Display) *ui {
	u := &ui{}
	if d == nil {
		return u
	}
	fb := d.Framebuffer()
	if fb == nil || fb.Buffer() == nil {
		return u
	}

	u.panel = hal.NewRegionDisplayer(fb, 0, 0, fb.Width(), panelHeight)

	u.termDisp = hal.NewRegionDisplayer(fb, 0, panelHeight, fb.Width(), fb.Height()-panelHeight)
	u.term = tinyterm.NewTerminal(u.termDisp)
	u.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	return u
}

func (u *ui) log(msg string) {
	if u.term == nil {
		return
	}
	fmt.Fprintf(u.term, "\n%s", msg)
	u.dirty = true
}

func (u *ui) draw(leds, held uint8) {
	if u.panel == nil {
		return
	}
	if u.dirty {
		// The terminal renders into its region's back buffer; flushing is
		// the displayer's job.
		u.termDisp.Display()
		u.dirty = false
	}
	if u.drawn && leds == u.lastLEDs && held == u.lastHeld {
		return
	}
	u.lastLEDs = leds
	u.lastHeld = held
	u.drawn = true

	w, _ := u.panel.Size()
	u.panel.FillRectangle(0, 0, w, panelHeight, colorBG)
	tinyfont.WriteLine(u.panel, &proggy.TinySZ8pt7b, 8, 14, "octopad", colorFG)

	cell := (w - 16) / 8
	for i := int16(0); i < 8; i++ {
		x := 8 + i*cell
		bit := uint8(1) << i

		c := colorDim
		if leds&bit != 0 {
			c = colorLED
		}
		u.panel.FillRectangle(x, 28, cell-4, 20, c)

		c = colorDim
		if held&bit != 0 {
			c = colorPress
		}
		u.panel.FillRectangle(x, 64, cell-4, 20, c)

		tinyfont.WriteLine(u.panel, &proggy.TinySZ8pt7b, x+cell/2-6, 100,
			string(rune('1'+i)), colorFG)
	}

	u.panel.Display()
}

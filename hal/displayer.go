package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// RegionDisplayer exposes a rectangular region of a Framebuffer through the
// tinygo drivers Displayer surface (plus the fill/scroll/rotation extensions
// tinyterm wants), so tinyfont and tinyterm can render into the RGB565
// buffer as if it were a panel.
//
// Pixels land in a private back buffer; Display flushes them into the
// framebuffer with the scroll offset applied, emulating the vertical
// hardware scroll of the usual TFT controllers.
type RegionDisplayer struct {
	fb     Framebuffer
	x0, y0 int
	w, h   int

	pix    []uint16
	scroll int
}

// NewRegionDisplayer maps the w x h region at (x0, y0). The region is
// clipped to the framebuffer bounds.
func NewRegionDisplayer(fb Framebuffer, x0, y0, w, h int) *RegionDisplayer {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x0+w > fb.Width() {
		w = fb.Width() - x0
	}
	if y0+h > fb.Height() {
		h = fb.Height() - y0
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RegionDisplayer{
		fb: fb,
		x0: x0, y0: y0,
		w: w, h: h,
		pix: make([]uint16, w*h),
	}
}

func (d *RegionDisplayer) Size() (x, y int16) {
	return int16(d.w), int16(d.h)
}

func (d *RegionDisplayer) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	d.pix[iy*d.w+ix] = rgb565(c.R, c.G, c.B)
}

func (d *RegionDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	p := rgb565(c.R, c.G, c.B)
	for iy := int(y); iy < int(y+height); iy++ {
		if iy < 0 || iy >= d.h {
			continue
		}
		row := d.pix[iy*d.w : (iy+1)*d.w]
		for ix := int(x); ix < int(x+width); ix++ {
			if ix < 0 || ix >= d.w {
				continue
			}
			row[ix] = p
		}
	}
	return nil
}

// SetScroll sets the back-buffer line shown at the top of the region.
func (d *RegionDisplayer) SetScroll(line int16) {
	if d.h == 0 {
		return
	}
	s := int(line) % d.h
	if s < 0 {
		s += d.h
	}
	d.scroll = s
}

func (d *RegionDisplayer) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return ErrNotImplemented
	}
	return nil
}

// Display flushes the back buffer into the framebuffer and presents it.
func (d *RegionDisplayer) Display() error {
	if d.fb.Format() != PixelFormatRGB565 {
		return ErrNotImplemented
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}
	stride := d.fb.StrideBytes()
	for y := 0; y < d.h; y++ {
		src := d.pix[((y+d.scroll)%d.h)*d.w : ((y+d.scroll)%d.h+1)*d.w]
		off := (d.y0+y)*stride + d.x0*2
		for x := 0; x < d.w; x++ {
			if off+1 >= len(buf) {
				break
			}
			buf[off] = byte(src[x])
			buf[off+1] = byte(src[x] >> 8)
			off += 2
		}
	}
	return d.fb.Present()
}

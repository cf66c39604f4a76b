package hal

import "testing"

func TestRGB565RoundTrip(t *testing.T) {
	cases := []struct {
		r, g, b uint8
	}{
		{0x00, 0x00, 0x00},
		{0xFF, 0x00, 0x00},
		{0x00, 0xFF, 0x00},
		{0x00, 0x00, 0xFF},
		{0xFF, 0xFF, 0xFF},
	}
	for _, c := range cases {
		r, g, b := rgb888From565(rgb565(c.r, c.g, c.b))
		if r != c.r || g != c.g || b != c.b {
			t.Fatalf("round trip (%#02x,%#02x,%#02x) = (%#02x,%#02x,%#02x)",
				c.r, c.g, c.b, r, g, b)
		}
	}
}

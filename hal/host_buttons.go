//go:build !tinygo && cgo

package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyButtons maps the number row to the eight button lines: key "1" is line
// 0 through key "8" on line 7. poll runs on the game loop; ReadButtons is
// called from the sampling goroutine.
type keyButtons struct {
	mu  sync.Mutex
	raw uint8
}

var keyForLine = [8]ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
	ebiten.KeyDigit7,
	ebiten.KeyDigit8,
}

func newKeyButtons() *keyButtons {
	return &keyButtons{}
}

func (k *keyButtons) poll() {
	var raw uint8
	for i, key := range keyForLine {
		if ebiten.IsKeyPressed(key) {
			raw |= 1 << i
		}
	}
	k.mu.Lock()
	k.raw = raw
	k.mu.Unlock()
}

func (k *keyButtons) ReadButtons() (uint8, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.raw, nil
}

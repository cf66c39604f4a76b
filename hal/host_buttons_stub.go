//go:build !tinygo && !cgo

package hal

import "sync"

type keyButtons struct {
	mu  sync.Mutex
	raw uint8
}

func newKeyButtons() *keyButtons {
	return &keyButtons{}
}

func (k *keyButtons) poll() {
	// No keyboard support without the window backend.
}

func (k *keyButtons) ReadButtons() (uint8, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.raw, nil
}

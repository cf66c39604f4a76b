//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow needs the ebiten backend, which is cgo-only; -headless works in
// any build.
func RunWindow(_ func(h HAL) func() error) error {
	return errors.New("octopad: window mode requires cgo, rebuild with CGO_ENABLED=1 or use -headless")
}

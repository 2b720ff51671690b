//go:build !linux

package display

import "errors"

// DesktopSize is not available off Linux; the window system sizes
// fullscreen windows itself.
func DesktopSize() (width, height int, err error) {
	return 0, 0, errors.New("desktop size not available on this platform")
}

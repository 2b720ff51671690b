//go:build noebiten

package glrage

import "context"

func newWindowBackend(width, height int) (backend, error) {
	return nil, ErrNoWindow
}

// runWindowed is unreachable in noebiten builds since New refuses to build
// a windowed instance.
func (i *Instance) runWindowed(ctx context.Context, client Client) error {
	return ErrNoWindow
}

package ddraw

// The operations below belong to legacy features that are not emulated:
// overlays, palettes, color keys, device contexts, page locking, batch and
// fast blits, and attachment enumeration. They always report ErrUnsupported.

// ColorKey is a color key range.
type ColorKey struct {
	Low, High uint32
}

// Palette is an opaque palette handle.
type Palette struct{}

// BltFast reports ErrUnsupported once the lock state has been checked.
func (s *Surface) BltFast(x, y int, src *Surface, srcRect *Rect, trans uint32) error {
	if s.locked {
		return ErrLockedSurfaces
	}
	return ErrUnsupported
}

// BltBatch reports ErrUnsupported once the lock state has been checked.
func (s *Surface) BltBatch(count int, flags uint32) error {
	if s.locked {
		return ErrLockedSurfaces
	}
	return ErrUnsupported
}

func (s *Surface) AddOverlayDirtyRect(rect *Rect) error { return ErrUnsupported }

func (s *Surface) DeleteAttachedSurface(flags uint32, a *Surface) error { return ErrUnsupported }

func (s *Surface) EnumAttachedSurfaces(fn func(*Surface, SurfaceDesc) bool) error {
	return ErrUnsupported
}

func (s *Surface) EnumOverlayZOrders(flags uint32, fn func(*Surface, SurfaceDesc) bool) error {
	return ErrUnsupported
}

func (s *Surface) GetBltStatus(flags uint32) error { return ErrUnsupported }

func (s *Surface) GetCaps() (Caps, error) { return 0, ErrUnsupported }

func (s *Surface) GetColorKey(flags uint32) (ColorKey, error) { return ColorKey{}, ErrUnsupported }

func (s *Surface) SetColorKey(flags uint32, key *ColorKey) error { return ErrUnsupported }

func (s *Surface) GetDC() (uintptr, error) { return 0, ErrUnsupported }

func (s *Surface) ReleaseDC(dc uintptr) error { return ErrUnsupported }

func (s *Surface) GetFlipStatus(flags uint32) error { return ErrUnsupported }

func (s *Surface) GetOverlayPosition() (x, y int, err error) { return 0, 0, ErrUnsupported }

func (s *Surface) SetOverlayPosition(x, y int) error { return ErrUnsupported }

func (s *Surface) GetPalette() (*Palette, error) { return nil, ErrUnsupported }

func (s *Surface) SetPalette(p *Palette) error { return ErrUnsupported }

func (s *Surface) UpdateOverlay(srcRect *Rect, dst *Surface, dstRect *Rect, flags uint32) error {
	return ErrUnsupported
}

func (s *Surface) UpdateOverlayDisplay(flags uint32) error { return ErrUnsupported }

func (s *Surface) UpdateOverlayZOrder(flags uint32, reference *Surface) error {
	return ErrUnsupported
}

func (s *Surface) GetDDInterface() (*DirectDraw, error) { return nil, ErrUnsupported }

func (s *Surface) PageLock(flags uint32) error { return ErrUnsupported }

func (s *Surface) PageUnlock(flags uint32) error { return ErrUnsupported }

package ddraw

import "log/slog"

// Surface is an emulated lockable 2D pixel buffer.
type Surface struct {
	ref

	dd     *DirectDraw
	desc   SurfaceDesc
	role   Role
	buffer []byte

	// onscreen is set for surfaces created with the primary capability,
	// including the back buffer built for a primary front buffer.
	onscreen bool

	locked    bool
	dirty     bool
	destroyed bool

	back    attachment
	depth   attachment
	clipper *Clipper
}

// newSurface resolves req against the display mode and allocates the buffer.
// A back buffer is built when req asks for one.
func newSurface(dd *DirectDraw, req SurfaceDesc) *Surface {
	desc := resolveDesc(req, dd.display)

	s := &Surface{
		dd:       dd,
		buffer:   make([]byte, desc.BufferLen()),
		onscreen: desc.Caps.Has(CapsPrimarySurface),
	}
	s.ref.count = 1
	s.ref.free = s.destroy

	if desc.Flags.Has(DescBackBufferCount) && desc.BackBufferCount > 0 {
		Logger().Info("creating back buffer",
			slog.Int("requested", desc.BackBufferCount),
			slog.Int("width", desc.Width),
			slog.Int("height", desc.Height))

		// Only double buffering is supported, so the chain ends here.
		s.back.set(newSurface(dd, backBufferDesc(desc)), true)
		desc.Caps |= CapsFrontBuffer | CapsFlip | CapsVisible
	}

	s.desc = desc
	s.role = roleOf(desc.Caps)
	dd.live++

	Logger().Debug("surface created",
		slog.String("role", s.role.String()),
		slog.Int("width", desc.Width),
		slog.Int("height", desc.Height),
		slog.Int("pitch", desc.Pitch),
		slog.Int("bpp", desc.PixelFormat.BitCount))
	return s
}

// destroy releases the buffer and every attachment. Owned children are
// destroyed regardless of their reference count.
func (s *Surface) destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.back.drop()
	s.depth.drop()
	s.buffer = nil
	s.desc.Surface = nil
	s.clipper = nil
	s.locked = false
	s.dd.live--

	Logger().Debug("surface destroyed", slog.String("role", s.role.String()))
}

// AddRef adds a shared reference and returns the new count.
func (s *Surface) AddRef() int {
	return s.retain()
}

// Release drops a shared reference and returns the remaining count. The
// surface is destroyed when the count reaches zero.
func (s *Surface) Release() int {
	return s.release()
}

// Role returns the role the surface was created with.
func (s *Surface) Role() Role {
	return s.role
}

// Locked reports whether the surface is currently locked.
func (s *Surface) Locked() bool {
	return s.locked
}

// Dirty reports whether the buffer has writes not yet uploaded to the renderer.
func (s *Surface) Dirty() bool {
	return s.dirty
}

// Destroyed reports whether the last reference to the surface was released.
func (s *Surface) Destroyed() bool {
	return s.destroyed
}

// GetSurfaceDesc returns a copy of the surface descriptor. The Surface field
// is only set while the surface is locked.
func (s *Surface) GetSurfaceDesc() (SurfaceDesc, error) {
	if s.destroyed {
		return SurfaceDesc{}, ErrInvalidObject
	}
	return s.desc, nil
}

// GetPixelFormat returns the pixel format of the surface.
func (s *Surface) GetPixelFormat() (PixelFormat, error) {
	if s.destroyed {
		return PixelFormat{}, ErrInvalidObject
	}
	return s.desc.PixelFormat, nil
}

// Initialize always fails: surfaces are initialized when they are created.
func (s *Surface) Initialize(dd *DirectDraw, desc *SurfaceDesc) error {
	return ErrAlreadyInitialized
}

// IsLost always succeeds; emulated surfaces live in host memory.
func (s *Surface) IsLost() error {
	return nil
}

// Restore always succeeds; emulated surfaces cannot be lost.
func (s *Surface) Restore() error {
	return nil
}

// SetClipper stores a weak reference to c. Clipping is not applied.
func (s *Surface) SetClipper(c *Clipper) error {
	s.clipper = c
	return nil
}

// GetClipper returns the clipper set with SetClipper, or nil.
func (s *Surface) GetClipper() (*Clipper, error) {
	return s.clipper, nil
}

// Clear fills the whole buffer with color and marks the surface dirty.
func (s *Surface) Clear(color uint32) error {
	if s.destroyed {
		return ErrInvalidObject
	}
	if !fill(s.buffer, s.desc.PixelFormat.BitCount, color) {
		Logger().Warn("clear: unsupported bit depth", slog.Int("bpp", s.desc.PixelFormat.BitCount))
	}
	s.dirty = true
	return nil
}

// view returns a transient blit view of the surface buffer.
func (s *Surface) view() ImageView {
	return ImageView{
		Width:         s.desc.Width,
		Height:        s.desc.Height,
		BytesPerPixel: s.desc.PixelFormat.BytesPerPixel(),
		Pitch:         s.desc.Pitch,
		Buffer:        s.buffer,
	}
}

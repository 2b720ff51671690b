package ddraw

import "log/slog"

// LockFlags are accepted for compatibility and otherwise ignored.
type LockFlags uint32

// Lock flags understood by the legacy API.
const (
	LockWait       LockFlags = 0x00000001
	LockReadOnly   LockFlags = 0x00000010
	LockWriteOnly  LockFlags = 0x00000020
	LockNoSysLock  LockFlags = 0x00000800
	LockSurfaceMem LockFlags = 0x00000000
)

// Lock exposes the pixel buffer through the Surface field of the returned
// descriptor. The whole surface is always locked; rect is ignored. The surface
// is marked dirty since the caller is assumed to write.
func (s *Surface) Lock(rect *Rect, flags LockFlags) (SurfaceDesc, error) {
	if s.destroyed {
		return SurfaceDesc{}, ErrInvalidObject
	}
	if s.locked {
		return SurfaceDesc{}, ErrSurfaceBusy
	}

	s.desc.Surface = s.buffer
	s.desc.Flags |= DescLPSurface
	s.locked = true
	s.dirty = true

	Logger().Debug("lock", slog.String("role", s.role.String()))
	return s.desc, nil
}

// Unlock withdraws the buffer exposed by Lock. A stand-alone primary surface
// is presented immediately, which is how clients without a flip chain show
// video sequences.
func (s *Surface) Unlock() error {
	if s.destroyed {
		return ErrInvalidObject
	}
	if !s.locked {
		return ErrNotLocked
	}

	s.desc.Surface = nil
	s.desc.Flags &^= DescLPSurface
	s.locked = false

	Logger().Debug("unlock", slog.String("role", s.role.String()))

	if s.role == RolePrimary {
		s.present()
	}
	return nil
}

// present pushes a stand-alone primary buffer through the full present cycle.
func (s *Surface) present() {
	ctx := s.dd.context

	if f := s.dd.postWriteFilter(ctx.GameID()); f != nil {
		f.Apply(s.desc, s.buffer)
	}

	ctx.SwapBuffers()
	ctx.SetupViewport()
	s.dd.renderer.Upload(s.desc, s.buffer)
	s.dd.renderer.Render()
}

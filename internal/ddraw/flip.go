package ddraw

import "log/slog"

// FlipFlags are accepted for compatibility and otherwise ignored.
type FlipFlags uint32

// Flip flags understood by the legacy API.
const (
	FlipWait     FlipFlags = 0x00000001
	FlipNoVSync  FlipFlags = 0x00000008
	FlipInterval FlipFlags = 0x01000000
)

// Flip exchanges the buffers of s and its back buffer and presents the frame.
// Only a single front/back pair is supported; target and flags are ignored.
//
// When the GPU rendered the frame itself since the last check, the front
// buffer is not uploaded, since it would overwrite the GPU output, and the
// frame is presented before the CPU buffer is drawn. Otherwise the buffer is
// drawn first and presented after, which keeps static 2D screens that never
// request a GPU render visible.
func (s *Surface) Flip(target *Surface, flags FlipFlags) error {
	if s.destroyed {
		return ErrInvalidObject
	}
	back := s.back.surface
	if s.role != RoleFront || back == nil || back.destroyed {
		return ErrNotFlippable
	}
	if s.locked || back.locked {
		return ErrLockedSurfaces
	}

	ctx := s.dd.context
	renderer := s.dd.renderer

	rendered := ctx.IsRendered()
	if rendered {
		s.dirty = false
	}

	s.buffer, back.buffer = back.buffer, s.buffer
	s.dirty, back.dirty = back.dirty, s.dirty

	uploaded := s.dirty
	if s.dirty {
		renderer.Upload(s.desc, s.buffer)
		s.dirty = false
	}

	if rendered {
		ctx.SwapBuffers()
	}

	ctx.SetupViewport()
	renderer.Render()

	if !rendered {
		ctx.SwapBuffers()
	}

	Logger().Debug("flip", slog.Bool("rendered", rendered), slog.Bool("uploaded", uploaded))
	return nil
}

package ddraw

import "log/slog"

// AddAttachedSurface links a depth or back buffer to s. The role of the
// attached surface decides the slot. A previous occupant of the slot is
// replaced. The attached surface gains a shared reference. Attaching the
// surface that already fills the slot changes nothing.
func (s *Surface) AddAttachedSurface(a *Surface) error {
	if s.destroyed || a == nil || a.destroyed {
		return ErrInvalidObject
	}

	var slot *attachment
	switch a.role {
	case RoleDepth:
		slot = &s.depth
	case RoleBack:
		slot = &s.back
	default:
		return ErrCannotAttachSurface
	}

	if slot.surface == a {
		return nil
	}
	a.AddRef()
	slot.set(a, false)

	Logger().Debug("attached surface", slog.String("role", a.role.String()))
	return nil
}

// GetAttachedSurface returns the surface attached for the role named by caps.
// The back buffer slot is checked before the depth slot.
func (s *Surface) GetAttachedSurface(caps Caps) (*Surface, error) {
	if s.destroyed {
		return nil, ErrInvalidObject
	}
	if caps&CapsBackBuffer != 0 && s.back.surface != nil {
		return s.back.surface, nil
	}
	if caps&CapsZBuffer != 0 && s.depth.surface != nil {
		return s.depth.surface, nil
	}
	return nil, ErrSurfaceNotAttached
}

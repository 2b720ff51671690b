package ddraw

import "log/slog"

// Rect is a rectangle with exclusive right and bottom edges.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Dx returns the width of r.
func (r Rect) Dx() int { return r.Right - r.Left }

// Dy returns the height of r.
func (r Rect) Dy() int { return r.Bottom - r.Top }

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Clip returns r clipped to a width x height surface.
func (r Rect) Clip(width, height int) Rect {
	c := r
	c.Left = max(c.Left, 0)
	c.Top = max(c.Top, 0)
	c.Right = min(c.Right, width)
	c.Bottom = min(c.Bottom, height)
	if c.Empty() {
		return Rect{}
	}
	return c
}

// ImageView is a non-owning view of a pixel buffer used during a blit.
type ImageView struct {
	Width         int
	Height        int
	BytesPerPixel int
	Pitch         int
	Buffer        []byte
}

// Bounds returns the full rectangle of the view.
func (v ImageView) Bounds() Rect {
	return Rect{Right: v.Width, Bottom: v.Height}
}

// Blit copies the overlap of srcRect and dstRect row by row. Both rectangles
// are clipped to their own image first; the copied span is the smaller of the
// two clipped extents. No pixel format conversion is performed. Blit returns
// the number of bytes copied.
func Blit(src ImageView, srcRect Rect, dst ImageView, dstRect Rect) int {
	sr := srcRect.Clip(src.Width, src.Height)
	dr := dstRect.Clip(dst.Width, dst.Height)
	if sr.Empty() || dr.Empty() {
		return 0
	}

	w := min(sr.Dx(), dr.Dx())
	h := min(sr.Dy(), dr.Dy())
	rowBytes := w * min(src.BytesPerPixel, dst.BytesPerPixel)
	if rowBytes <= 0 {
		return 0
	}

	copied := 0
	for y := 0; y < h; y++ {
		so := (sr.Top+y)*src.Pitch + sr.Left*src.BytesPerPixel
		do := (dr.Top+y)*dst.Pitch + dr.Left*dst.BytesPerPixel
		if so+rowBytes > len(src.Buffer) || do+rowBytes > len(dst.Buffer) {
			break
		}
		copied += copy(dst.Buffer[do:do+rowBytes], src.Buffer[so:so+rowBytes])
	}
	return copied
}

// BltFlags select the operations performed by Blt.
type BltFlags uint32

// Blit flags.
const (
	BltColorFill BltFlags = 0x00000400
	BltWait      BltFlags = 0x01000000
	BltDepthFill BltFlags = 0x02000000
)

// BltFX carries the fill values for color and depth fills.
type BltFX struct {
	FillColor uint32
	FillDepth uint32
}

// Blt copies srcRect of src into dstRect of s and performs the fills
// requested by flags. Nil rectangles cover the whole surface. src may be nil
// for a pure fill.
//
// A color fill always covers the whole destination buffer, even when dstRect
// names a smaller area.
func (s *Surface) Blt(dstRect *Rect, src *Surface, srcRect *Rect, flags BltFlags, fx *BltFX) error {
	if s.destroyed {
		return ErrInvalidObject
	}
	if s.locked {
		return ErrLockedSurfaces
	}
	if src != nil {
		if src.destroyed {
			return ErrInvalidObject
		}
		if src.locked {
			return ErrLockedSurfaces
		}
	}
	if flags&BltColorFill != 0 && fx == nil {
		return ErrInvalidParams
	}

	if src != nil {
		s.dirty = true

		sv, dv := src.view(), s.view()
		sr, dr := sv.Bounds(), dv.Bounds()
		if srcRect != nil {
			sr = *srcRect
		}
		if dstRect != nil {
			dr = *dstRect
		}

		n := Blit(sv, sr, dv, dr)
		Logger().Debug("blit", slog.Int("bytes", n))
	}

	// The GPU already clears the primary chain when it renders the frame
	// itself, so the CPU clear would be wasted work.
	if s.onscreen && s.dd.context.Rendering() {
		return nil
	}

	if flags&BltColorFill != 0 {
		if dstRect != nil {
			Logger().Debug("blit: color fill ignores destination rect",
				slog.Int("left", dstRect.Left), slog.Int("top", dstRect.Top),
				slog.Int("right", dstRect.Right), slog.Int("bottom", dstRect.Bottom))
		}
		if err := s.Clear(fx.FillColor); err != nil {
			return err
		}
	}

	if flags&BltDepthFill != 0 && s.depth.surface != nil {
		if err := s.depth.surface.Clear(0); err != nil {
			return err
		}
	}

	return nil
}

package ddraw

// Clipper is a clipper object. It only remembers the window handle it was
// given; surfaces keep a weak reference and never clip against it.
type Clipper struct {
	hwnd uintptr
}

// NewClipper returns an empty clipper.
func NewClipper() *Clipper {
	return &Clipper{}
}

// SetHWnd stores the window handle the clipper tracks.
func (c *Clipper) SetHWnd(hwnd uintptr) error {
	c.hwnd = hwnd
	return nil
}

// HWnd returns the stored window handle.
func (c *Clipper) HWnd() uintptr {
	return c.hwnd
}

// GetClipList always reports ErrUnsupported.
func (c *Clipper) GetClipList() ([]Rect, error) {
	return nil, ErrUnsupported
}

package display

import "image"

// Viewport is the window area frames are drawn into, in window pixels with
// the origin at the top left.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Rect returns the viewport as an image rectangle.
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// ComputeViewport fits a dispW x dispH display into a winW x winH window
// while keeping its aspect ratio. Wider windows get bars left and right,
// taller windows get bars above and below.
func ComputeViewport(dispW, dispH, winW, winH int) Viewport {
	vp := Viewport{Width: winW, Height: winH}
	if dispW <= 0 || dispH <= 0 || winW <= 0 || winH <= 0 {
		return vp
	}

	hw := dispH * winW
	wh := dispW * winH

	switch {
	case hw > wh:
		w := wh / dispH
		vp.X = (winW - w) / 2
		vp.Width = w
	case hw < wh:
		h := hw / dispW
		vp.Y = (winH - h) / 2
		vp.Height = h
	}
	return vp
}

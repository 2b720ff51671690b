package ddraw

import (
	"errors"
	"log/slog"
)

// Default display mode used until SetDisplayMode is called.
const (
	DefaultDisplayWidth    = 640
	DefaultDisplayHeight   = 480
	DefaultDisplayBitCount = 16
)

// DirectDraw creates surfaces and tracks the emulated display mode.
type DirectDraw struct {
	renderer Renderer
	context  Context
	policies PolicySource
	display  SurfaceDesc
	live     int
}

// Option configures a DirectDraw object.
type Option func(*DirectDraw)

// WithPolicies sets the source of post-write filters for stand-alone primaries.
func WithPolicies(p PolicySource) Option {
	return func(dd *DirectDraw) {
		dd.policies = p
	}
}

// New returns a DirectDraw object that presents through renderer and ctx.
func New(renderer Renderer, ctx Context, opts ...Option) (*DirectDraw, error) {
	if renderer == nil {
		return nil, errors.New("ddraw: renderer is required")
	}
	if ctx == nil {
		return nil, errors.New("ddraw: context is required")
	}

	dd := &DirectDraw{
		renderer: renderer,
		context:  ctx,
		display:  displayDesc(DefaultDisplayWidth, DefaultDisplayHeight, DefaultDisplayBitCount),
	}
	for _, opt := range opts {
		opt(dd)
	}
	return dd, nil
}

func displayDesc(width, height, bitCount int) SurfaceDesc {
	pf, _ := StandardPixelFormat(bitCount)
	return SurfaceDesc{
		Flags:       DescWidth | DescHeight | DescPitch | DescPixelFormat,
		Width:       width,
		Height:      height,
		Pitch:       width * pf.BytesPerPixel(),
		PixelFormat: pf,
	}
}

// SetDisplayMode changes the emulated display mode. Surfaces created later
// adopt it for any attribute their descriptor leaves unset.
func (dd *DirectDraw) SetDisplayMode(width, height, bitCount int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidParams
	}
	if _, ok := StandardPixelFormat(bitCount); !ok {
		return ErrInvalidParams
	}

	dd.display = displayDesc(width, height, bitCount)
	if sizer, ok := dd.context.(DisplaySizer); ok {
		sizer.SetDisplaySize(width, height)
	}

	Logger().Info("display mode set",
		slog.Int("width", width), slog.Int("height", height), slog.Int("bpp", bitCount))
	return nil
}

// RestoreDisplayMode returns to the default display mode.
func (dd *DirectDraw) RestoreDisplayMode() error {
	return dd.SetDisplayMode(DefaultDisplayWidth, DefaultDisplayHeight, DefaultDisplayBitCount)
}

// GetDisplayMode returns the descriptor of the current display mode.
func (dd *DirectDraw) GetDisplayMode() SurfaceDesc {
	return dd.display
}

// CreateSurface builds a surface from desc. The returned surface holds one
// reference; call Release when done with it.
func (dd *DirectDraw) CreateSurface(desc SurfaceDesc) (*Surface, error) {
	if desc.Flags.Has(DescPitch) && desc.Pitch < 0 {
		return nil, ErrInvalidParams
	}
	if desc.Flags&(DescWidth|DescHeight) != 0 && (desc.Width < 0 || desc.Height < 0) {
		return nil, ErrInvalidParams
	}
	return newSurface(dd, desc), nil
}

// SetPolicies replaces the post-write filter source. nil disables filtering.
func (dd *DirectDraw) SetPolicies(p PolicySource) {
	dd.policies = p
}

// LiveSurfaces returns the number of surfaces not yet destroyed.
func (dd *DirectDraw) LiveSurfaces() int {
	return dd.live
}

func (dd *DirectDraw) postWriteFilter(gameID string) PostWriteFilter {
	if dd.policies == nil {
		return nil
	}
	return dd.policies.PostWriteFilter(gameID)
}

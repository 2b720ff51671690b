package ddraw

// DescFlags records which fields of a SurfaceDesc carry a value.
type DescFlags uint32

// Descriptor field flags.
const (
	DescCaps            DescFlags = 0x00000001
	DescHeight          DescFlags = 0x00000002
	DescWidth           DescFlags = 0x00000004
	DescPitch           DescFlags = 0x00000008
	DescBackBufferCount DescFlags = 0x00000020
	DescLPSurface       DescFlags = 0x00000800
	DescPixelFormat     DescFlags = 0x00001000
)

// Has reports whether all flags in f are set.
func (d DescFlags) Has(f DescFlags) bool {
	return d&f == f
}

// Caps is the capability set of a surface.
type Caps uint32

// Surface capabilities.
const (
	CapsBackBuffer     Caps = 0x00000004
	CapsComplex        Caps = 0x00000008
	CapsFlip           Caps = 0x00000010
	CapsFrontBuffer    Caps = 0x00000020
	CapsOffscreenPlain Caps = 0x00000040
	CapsPrimarySurface Caps = 0x00000200
	CapsSystemMemory   Caps = 0x00000800
	CapsVisible        Caps = 0x00008000
	CapsZBuffer        Caps = 0x00020000
)

// Has reports whether all capabilities in c are set.
func (caps Caps) Has(c Caps) bool {
	return caps&c == c
}

// PixelFormat describes the layout of a single pixel.
type PixelFormat struct {
	// BitCount is the number of bits per pixel.
	BitCount int
	RBitMask uint32
	GBitMask uint32
	BBitMask uint32
	ABitMask uint32
}

// BytesPerPixel returns BitCount/8. Odd bit depths round down.
func (pf PixelFormat) BytesPerPixel() int {
	return pf.BitCount / 8
}

// Palettized reports whether pixels are palette indices.
func (pf PixelFormat) Palettized() bool {
	return pf.BitCount == 8
}

// StandardPixelFormat returns the pixel format used for display modes of the
// given bit depth. ok is false for depths the display cannot be set to.
func StandardPixelFormat(bitCount int) (pf PixelFormat, ok bool) {
	switch bitCount {
	case 8:
		return PixelFormat{BitCount: 8}, true
	case 16:
		return PixelFormat{BitCount: 16, RBitMask: 0xF800, GBitMask: 0x07E0, BBitMask: 0x001F}, true
	case 24:
		return PixelFormat{BitCount: 24, RBitMask: 0xFF0000, GBitMask: 0x00FF00, BBitMask: 0x0000FF}, true
	case 32:
		return PixelFormat{BitCount: 32, RBitMask: 0xFF0000, GBitMask: 0x00FF00, BBitMask: 0x0000FF}, true
	}
	return PixelFormat{}, false
}

// SurfaceDesc describes the dimensions, layout and capabilities of a surface.
type SurfaceDesc struct {
	// Flags marks which of the fields below are valid.
	Flags DescFlags
	// Width and Height are in pixels.
	Width  int
	Height int
	// Pitch is the number of bytes per row.
	Pitch int
	// BackBufferCount requests an attached back buffer when greater than zero.
	BackBufferCount int
	PixelFormat     PixelFormat
	Caps            Caps
	// Surface is the pixel buffer. It is only set in the descriptor returned
	// by Lock and becomes invalid after Unlock.
	Surface []byte
}

// BufferLen returns the size of the pixel buffer described by d.
func (d SurfaceDesc) BufferLen() int {
	return d.Pitch * d.Height
}

// resolveDesc fills in the attributes missing from req using the display mode.
func resolveDesc(req, display SurfaceDesc) SurfaceDesc {
	d := req

	if d.Flags&(DescWidth|DescHeight) == 0 {
		d.Width = display.Width
		d.Height = display.Height
		d.Flags |= DescWidth | DescHeight
	}

	if !d.Flags.Has(DescPixelFormat) {
		d.PixelFormat = display.PixelFormat
		d.Flags |= DescPixelFormat
	}

	if !d.Flags.Has(DescPitch) {
		d.Pitch = d.Width * d.PixelFormat.BytesPerPixel()
		d.Flags |= DescPitch
	}

	d.Surface = nil
	d.Flags &^= DescLPSurface
	return d
}

// backBufferDesc derives the descriptor of the back buffer built for a front
// buffer described by parent.
func backBufferDesc(parent SurfaceDesc) SurfaceDesc {
	d := parent
	d.Caps |= CapsBackBuffer | CapsFlip
	d.Caps &^= CapsFrontBuffer | CapsVisible
	d.Flags &^= DescBackBufferCount
	d.BackBufferCount = 0
	return d
}

// Role is the part a surface plays in a surface graph. It is decided once at
// construction.
type Role int

const (
	// RoleOffscreen is a plain surface used as a blit source or scratch buffer.
	RoleOffscreen Role = iota
	// RolePrimary is a stand-alone primary surface without a flip chain.
	// Unlocking it presents its contents immediately.
	RolePrimary
	// RoleFront is the front buffer of a flip chain.
	RoleFront
	// RoleBack is the back buffer of a flip chain.
	RoleBack
	// RoleDepth is a depth buffer.
	RoleDepth
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleFront:
		return "front"
	case RoleBack:
		return "back"
	case RoleDepth:
		return "depth"
	default:
		return "offscreen"
	}
}

// roleOf classifies a capability set.
func roleOf(caps Caps) Role {
	switch {
	case caps.Has(CapsZBuffer):
		return RoleDepth
	case caps.Has(CapsBackBuffer):
		return RoleBack
	case caps.Has(CapsFlip | CapsFrontBuffer):
		return RoleFront
	case caps.Has(CapsPrimarySurface) && !caps.Has(CapsFlip):
		return RolePrimary
	default:
		return RoleOffscreen
	}
}

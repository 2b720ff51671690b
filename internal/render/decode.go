package render

import (
	"image"
	"math/bits"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// Decode converts a surface buffer to RGBA. Missing channel masks fall back
// to the standard format for the bit depth; 8-bit buffers are decoded as
// gray levels since palettes are not emulated. Alpha is always opaque.
func Decode(desc ddraw.SurfaceDesc, buf []byte) *image.RGBA {
	return DecodeInto(nil, desc, buf)
}

// DecodeInto is like Decode but reuses dst when it already has the surface
// size.
func DecodeInto(dst *image.RGBA, desc ddraw.SurfaceDesc, buf []byte) *image.RGBA {
	w, h := max(desc.Width, 0), max(desc.Height, 0)
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	pf := desc.PixelFormat
	bpp := pf.BytesPerPixel()
	if bpp == 0 || bpp > 4 {
		clear(dst.Pix)
		return dst
	}
	if pf.RBitMask|pf.GBitMask|pf.BBitMask == 0 {
		if std, ok := ddraw.StandardPixelFormat(pf.BitCount); ok {
			pf = std
		}
	}
	pitch := desc.Pitch
	if pitch <= 0 {
		pitch = w * bpp
	}

	r, g, b := newChannel(pf.RBitMask), newChannel(pf.GBitMask), newChannel(pf.BBitMask)
	gray := bpp == 1

	for y := 0; y < h; y++ {
		row := y * pitch
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			o := row + x*bpp
			px := out[x*4 : x*4+4]
			if o+bpp > len(buf) {
				px[0], px[1], px[2], px[3] = 0, 0, 0, 0xFF
				continue
			}

			var p uint32
			for i := 0; i < bpp; i++ {
				p |= uint32(buf[o+i]) << (8 * i)
			}
			if gray {
				v := uint8(p)
				px[0], px[1], px[2], px[3] = v, v, v, 0xFF
				continue
			}
			px[0], px[1], px[2], px[3] = r.value(p), g.value(p), b.value(p), 0xFF
		}
	}
	return dst
}

// channel extracts one color channel described by a bit mask and widens it
// to 8 bits.
type channel struct {
	mask  uint32
	shift int
	max   uint32
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	shift := bits.TrailingZeros32(mask)
	return channel{
		mask:  mask,
		shift: shift,
		max:   mask >> shift,
	}
}

func (c channel) value(p uint32) uint8 {
	if c.max == 0 {
		return 0
	}
	v := (p & c.mask) >> c.shift
	return uint8(v * 0xFF / c.max)
}

package main

import (
	"encoding/binary"
	"math/bits"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// packer converts 8-bit channels into pixels of one pixel format.
type packer struct {
	bpp int
	r   channel
	g   channel
	b   channel
}

type channel struct {
	shift int
	width int
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	return channel{shift: bits.TrailingZeros32(mask), width: bits.OnesCount32(mask)}
}

func (c channel) put(v uint8) uint32 {
	if c.width == 0 {
		return 0
	}
	return uint32(v>>(8-c.width)) << c.shift
}

func newPacker(pf ddraw.PixelFormat) packer {
	if pf.RBitMask == 0 && pf.GBitMask == 0 && pf.BBitMask == 0 {
		if std, ok := ddraw.StandardPixelFormat(pf.BitCount); ok {
			pf = std
		}
	}
	return packer{
		bpp: pf.BytesPerPixel(),
		r:   newChannel(pf.RBitMask),
		g:   newChannel(pf.GBitMask),
		b:   newChannel(pf.BBitMask),
	}
}

// pack returns the pixel value for r, g, b. Palettized formats get the
// luminance as palette index.
func (p packer) pack(r, g, b uint8) uint32 {
	if p.bpp == 1 {
		return uint32((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
	}
	return p.r.put(r) | p.g.put(g) | p.b.put(b)
}

// store writes v little-endian at buf[off:].
func (p packer) store(buf []byte, off int, v uint32) {
	switch p.bpp {
	case 1:
		buf[off] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(v))
	case 3:
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
	case 4:
		binary.LittleEndian.PutUint32(buf[off:], v)
	}
}

// fillRect writes v into every pixel of the w x h rectangle at x, y of a
// locked surface, clipped to its bounds.
func (p packer) fillRect(desc ddraw.SurfaceDesc, x, y, w, h int, v uint32) {
	for row := max(y, 0); row < min(y+h, desc.Height); row++ {
		for col := max(x, 0); col < min(x+w, desc.Width); col++ {
			p.store(desc.Surface, row*desc.Pitch+col*p.bpp, v)
		}
	}
}

package main

import (
	"testing"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

func TestPackerPack(t *testing.T) {
	tests := []struct {
		name    string
		bpp     int
		r, g, b uint8
		want    uint32
	}{
		{"565 white", 16, 255, 255, 255, 0xFFFF},
		{"565 red", 16, 255, 0, 0, 0xF800},
		{"565 green", 16, 0, 255, 0, 0x07E0},
		{"565 blue", 16, 0, 0, 255, 0x001F},
		{"32 bit", 32, 0x12, 0x34, 0x56, 0x123456},
		{"24 bit", 24, 0xAB, 0xCD, 0xEF, 0xABCDEF},
		{"8 bit luminance", 8, 255, 255, 255, 255},
		{"8 bit black", 8, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, _ := ddraw.StandardPixelFormat(tt.bpp)
			if got := newPacker(pf).pack(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("pack = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestPackerMissingMasks(t *testing.T) {
	p := newPacker(ddraw.PixelFormat{BitCount: 16})
	if got := p.pack(255, 0, 0); got != 0xF800 {
		t.Errorf("pack = %#x, want 0xf800", got)
	}
}

func TestPackerStore(t *testing.T) {
	tests := []struct {
		bpp  int
		v    uint32
		want []byte
	}{
		{8, 0x7F, []byte{0x7F}},
		{16, 0xF800, []byte{0x00, 0xF8}},
		{24, 0xABCDEF, []byte{0xEF, 0xCD, 0xAB}},
		{32, 0x00123456, []byte{0x56, 0x34, 0x12, 0x00}},
	}
	for _, tt := range tests {
		pf, _ := ddraw.StandardPixelFormat(tt.bpp)
		p := newPacker(pf)
		buf := make([]byte, len(tt.want))
		p.store(buf, 0, tt.v)
		for i := range buf {
			if buf[i] != tt.want[i] {
				t.Errorf("bpp %d: buf = %x, want %x", tt.bpp, buf, tt.want)
				break
			}
		}
	}
}

func TestPackerFillRectClips(t *testing.T) {
	pf, _ := ddraw.StandardPixelFormat(8)
	p := newPacker(pf)
	desc := ddraw.SurfaceDesc{Width: 4, Height: 2, Pitch: 4, Surface: make([]byte, 8)}
	p.fillRect(desc, 2, -1, 10, 10, 9)
	want := []byte{0, 0, 9, 9, 0, 0, 9, 9}
	for i := range want {
		if desc.Surface[i] != want[i] {
			t.Fatalf("buffer = %v, want %v", desc.Surface, want)
		}
	}
}

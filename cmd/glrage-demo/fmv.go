package main

import (
	"fmt"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// fmv writes frames straight into a stand-alone primary surface, the way
// video players that never build a flip chain do. Every Unlock presents.
type fmv struct {
	primary *ddraw.Surface
	pack    packer
	tick    int
}

func newFMV() *fmv {
	return &fmv{}
}

// Init creates the primary surface.
func (f *fmv) Init(dd *ddraw.DirectDraw) error {
	primary, err := dd.CreateSurface(ddraw.SurfaceDesc{
		Flags: ddraw.DescCaps,
		Caps:  ddraw.CapsPrimarySurface,
	})
	if err != nil {
		return fmt.Errorf("create primary: %w", err)
	}
	f.primary = primary
	f.pack = newPacker(dd.GetDisplayMode().PixelFormat)
	return nil
}

// Frame draws horizontally scrolling gradient bars.
func (f *fmv) Frame(dd *ddraw.DirectDraw) error {
	if f.primary == nil {
		if err := f.Init(dd); err != nil {
			return err
		}
	}
	f.tick++

	desc, err := f.primary.Lock(nil, ddraw.LockWait|ddraw.LockWriteOnly)
	if err != nil {
		return fmt.Errorf("lock primary: %w", err)
	}
	bars := [...][3]uint8{
		{255, 255, 255}, {255, 255, 0}, {0, 255, 255}, {0, 255, 0},
		{255, 0, 255}, {255, 0, 0}, {0, 0, 255}, {0, 0, 0},
	}
	barWidth := max(desc.Width/len(bars), 1)
	for y := 0; y < desc.Height; y++ {
		shade := uint32(y * 255 / max(desc.Height-1, 1))
		for x := 0; x < desc.Width; x++ {
			c := bars[((x+f.tick)/barWidth)%len(bars)]
			v := f.pack.pack(
				uint8(uint32(c[0])*shade/255),
				uint8(uint32(c[1])*shade/255),
				uint8(uint32(c[2])*shade/255),
			)
			f.pack.store(desc.Surface, y*desc.Pitch+x*f.pack.bpp, v)
		}
	}
	if err := f.primary.Unlock(); err != nil {
		return fmt.Errorf("unlock primary: %w", err)
	}
	return nil
}

// Close releases the primary surface.
func (f *fmv) Close() {
	if f.primary != nil {
		f.primary.Release()
		f.primary = nil
	}
}

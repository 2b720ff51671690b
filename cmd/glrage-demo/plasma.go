package main

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

const spriteSize = 16

// plasma draws an animated plasma into the back buffer of a flip chain,
// blits a sprite over it and flips.
type plasma struct {
	primary *ddraw.Surface
	back    *ddraw.Surface
	sprite  *ddraw.Surface
	pack    packer
	palette [256][3]uint8
	tick    int
}

func newPlasma() *plasma {
	p := &plasma{}
	for i := range p.palette {
		a := float64(i) / 256 * 2 * math.Pi
		p.palette[i] = [3]uint8{
			uint8(127 + 127*math.Sin(a)),
			uint8(127 + 127*math.Sin(a+2*math.Pi/3)),
			uint8(127 + 127*math.Sin(a+4*math.Pi/3)),
		}
	}
	return p
}

// Init creates the flip chain and the sprite surface.
func (p *plasma) Init(dd *ddraw.DirectDraw) error {
	primary, err := dd.CreateSurface(ddraw.SurfaceDesc{
		Flags:           ddraw.DescCaps | ddraw.DescBackBufferCount,
		Caps:            ddraw.CapsPrimarySurface | ddraw.CapsFlip | ddraw.CapsComplex,
		BackBufferCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create primary: %w", err)
	}
	back, err := primary.GetAttachedSurface(ddraw.CapsBackBuffer)
	if err != nil {
		return fmt.Errorf("get back buffer: %w", err)
	}
	sprite, err := dd.CreateSurface(ddraw.SurfaceDesc{
		Flags:  ddraw.DescCaps | ddraw.DescWidth | ddraw.DescHeight,
		Caps:   ddraw.CapsOffscreenPlain,
		Width:  spriteSize,
		Height: spriteSize,
	})
	if err != nil {
		return fmt.Errorf("create sprite: %w", err)
	}

	p.primary, p.back, p.sprite = primary, back, sprite
	p.pack = newPacker(dd.GetDisplayMode().PixelFormat)
	return nil
}

// Frame draws one plasma frame and flips it to the front.
func (p *plasma) Frame(dd *ddraw.DirectDraw) error {
	if p.primary == nil {
		if err := p.Init(dd); err != nil {
			return err
		}
	}
	p.tick++

	if err := p.drawPlasma(); err != nil {
		return err
	}
	if err := p.drawSprite(); err != nil {
		return err
	}

	d := p.back
	desc, err := d.GetSurfaceDesc()
	if err != nil {
		return err
	}
	x := (p.tick * 2) % max(desc.Width-spriteSize, 1)
	y := int(float64(desc.Height-spriteSize) / 2 * (1 + math.Sin(float64(p.tick)/20)))
	dst := ddraw.Rect{Left: x, Top: y, Right: x + spriteSize, Bottom: y + spriteSize}
	if err := d.Blt(&dst, p.sprite, nil, ddraw.BltWait, nil); err != nil {
		return fmt.Errorf("blit sprite: %w", err)
	}

	if err := p.primary.Flip(nil, ddraw.FlipWait); err != nil {
		return fmt.Errorf("flip: %w", err)
	}
	return nil
}

func (p *plasma) drawPlasma() error {
	desc, err := p.back.Lock(nil, ddraw.LockWait|ddraw.LockWriteOnly)
	if err != nil {
		return fmt.Errorf("lock back buffer: %w", err)
	}
	t := float64(p.tick) / 10
	for y := 0; y < desc.Height; y++ {
		fy := float64(y) / 16
		for x := 0; x < desc.Width; x++ {
			fx := float64(x) / 16
			v := math.Sin(fx+t) + math.Sin(fy+t/2) + math.Sin((fx+fy+t)/2)
			c := p.palette[uint8(int((v+3)/6*255)+p.tick)]
			p.pack.store(desc.Surface, y*desc.Pitch+x*p.pack.bpp, p.pack.pack(c[0], c[1], c[2]))
		}
	}
	return p.back.Unlock()
}

// drawSprite clears the sprite with a color fill and paints a cross on it.
func (p *plasma) drawSprite() error {
	fill := ddraw.BltFX{FillColor: p.pack.pack(255, 255, 255)}
	if err := p.sprite.Blt(nil, nil, nil, ddraw.BltColorFill|ddraw.BltWait, &fill); err != nil {
		return fmt.Errorf("fill sprite: %w", err)
	}
	desc, err := p.sprite.Lock(nil, ddraw.LockWait)
	if err != nil {
		return fmt.Errorf("lock sprite: %w", err)
	}
	ink := p.pack.pack(0, 0, 0)
	p.pack.fillRect(desc, spriteSize/2-1, 0, 2, spriteSize, ink)
	p.pack.fillRect(desc, 0, spriteSize/2-1, spriteSize, 2, ink)
	return p.sprite.Unlock()
}

// Close releases the surfaces.
func (p *plasma) Close() {
	if p.sprite != nil {
		p.sprite.Release()
	}
	if p.primary != nil {
		p.primary.Release()
	}
	p.primary, p.back, p.sprite = nil, nil, nil
}

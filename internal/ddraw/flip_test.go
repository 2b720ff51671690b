package ddraw

import (
	"errors"
	"testing"
)

func TestFlipSwapsBufferOwnership(t *testing.T) {
	f := newFixture(t)
	front := f.mustCreate(t, flipChainDesc())
	back, _ := front.GetAttachedSurface(CapsBackBuffer)

	frontBuf, backBuf := &front.buffer[0], &back.buffer[0]

	if err := front.Flip(nil, FlipWait); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}
	if &front.buffer[0] != backBuf || &back.buffer[0] != frontBuf {
		t.Fatal("first Flip did not exchange buffers")
	}

	if err := front.Flip(nil, FlipWait); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}
	if &front.buffer[0] != frontBuf || &back.buffer[0] != backBuf {
		t.Error("two flips did not return buffers to their original owners")
	}
}

func TestFlipUploadsDirtyBackBuffer(t *testing.T) {
	f := newFixture(t)
	front := f.mustCreate(t, flipChainDesc())
	back, _ := front.GetAttachedSurface(CapsBackBuffer)

	desc, err := back.Lock(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	desc.Surface[0] = 0x42
	if err := back.Unlock(); err != nil {
		t.Fatal(err)
	}

	if err := front.Flip(nil, 0); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}

	want := []string{"isRendered", "upload", "viewport", "render", "swap"}
	if !equalCalls(f.log.calls, want) {
		t.Errorf("calls = %v, want %v", f.log.calls, want)
	}
	if f.renderer.uploads[0][0] != 0x42 {
		t.Error("flip uploaded the wrong buffer")
	}
	if front.Dirty() {
		t.Error("front still dirty after upload")
	}
	if back.Dirty() {
		t.Error("back inherited a dirty flag from a clean front")
	}
}

func TestFlipCleanChainSkipsUpload(t *testing.T) {
	f := newFixture(t)
	front := f.mustCreate(t, flipChainDesc())

	if err := front.Flip(nil, 0); err != nil {
		t.Fatal(err)
	}
	want := []string{"isRendered", "viewport", "render", "swap"}
	if !equalCalls(f.log.calls, want) {
		t.Errorf("calls = %v, want %v", f.log.calls, want)
	}
}

func TestFlipAfterExternalRender(t *testing.T) {
	f := newFixture(t)
	front := f.mustCreate(t, flipChainDesc())

	if _, err := front.Lock(nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := front.Unlock(); err != nil {
		t.Fatal(err)
	}
	if !front.Dirty() {
		t.Fatal("front should be dirty before flip")
	}

	f.ctx.rendered = true
	if err := front.Flip(nil, 0); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}

	if n := f.log.count("upload"); n != 0 {
		t.Errorf("upload calls = %d, want 0 after external render", n)
	}
	want := []string{"isRendered", "swap", "viewport", "render"}
	if !equalCalls(f.log.calls, want) {
		t.Errorf("calls = %v, want %v", f.log.calls, want)
	}
	back, _ := front.GetAttachedSurface(CapsBackBuffer)
	if back.Dirty() {
		t.Error("discarded dirty flag travelled to the back buffer")
	}
	if f.ctx.rendered {
		t.Error("flip did not consume the render signal")
	}
}

func TestFlipDirtyFlagTravelsWithBuffer(t *testing.T) {
	f := newFixture(t)
	front := f.mustCreate(t, flipChainDesc())
	back, _ := front.GetAttachedSurface(CapsBackBuffer)

	// Front dirty, back clean; the dirty buffer moves to the back.
	front.dirty = true
	if err := front.Flip(nil, 0); err != nil {
		t.Fatal(err)
	}
	if front.Dirty() || !back.Dirty() {
		t.Errorf("after flip front=%v back=%v, want false/true", front.Dirty(), back.Dirty())
	}
	if f.log.count("upload") != 0 {
		t.Error("clean incoming buffer was uploaded")
	}
}

func TestFlipErrors(t *testing.T) {
	t.Run("offscreen", func(t *testing.T) {
		f := newFixture(t)
		s := f.mustCreate(t, offscreenDesc(2, 2, 16))
		if err := s.Flip(nil, 0); !errors.Is(err, ErrNotFlippable) {
			t.Errorf("Flip() error = %v, want ErrNotFlippable", err)
		}
	})

	t.Run("front without back", func(t *testing.T) {
		f := newFixture(t)
		s := f.mustCreate(t, SurfaceDesc{Flags: DescCaps, Caps: CapsPrimarySurface | CapsFrontBuffer | CapsFlip})
		if err := s.Flip(nil, 0); !errors.Is(err, ErrNotFlippable) {
			t.Errorf("Flip() error = %v, want ErrNotFlippable", err)
		}
	})

	t.Run("back buffer", func(t *testing.T) {
		f := newFixture(t)
		front := f.mustCreate(t, flipChainDesc())
		back, _ := front.GetAttachedSurface(CapsBackBuffer)
		if err := back.Flip(nil, 0); !errors.Is(err, ErrNotFlippable) {
			t.Errorf("Flip() error = %v, want ErrNotFlippable", err)
		}
	})

	t.Run("locked back", func(t *testing.T) {
		f := newFixture(t)
		front := f.mustCreate(t, flipChainDesc())
		back, _ := front.GetAttachedSurface(CapsBackBuffer)
		if _, err := back.Lock(nil, 0); err != nil {
			t.Fatal(err)
		}
		if err := front.Flip(nil, 0); !errors.Is(err, ErrLockedSurfaces) {
			t.Errorf("Flip() error = %v, want ErrLockedSurfaces", err)
		}
		if len(f.log.calls) != 0 {
			t.Errorf("failed flip called collaborators: %v", f.log.calls)
		}
	})

	t.Run("attached back", func(t *testing.T) {
		f := newFixture(t)
		front := f.mustCreate(t, SurfaceDesc{Flags: DescCaps, Caps: CapsPrimarySurface | CapsFrontBuffer | CapsFlip})
		back := f.mustCreate(t, SurfaceDesc{Flags: DescCaps, Caps: CapsBackBuffer | CapsFlip})
		if err := front.AddAttachedSurface(back); err != nil {
			t.Fatal(err)
		}
		if err := front.Flip(nil, 0); err != nil {
			t.Errorf("Flip() with attached back error = %v", err)
		}
	})
}

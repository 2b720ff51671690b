package ddraw

import (
	"bytes"
	"errors"
	"testing"
)

func TestLockStateMachine(t *testing.T) {
	f := newFixture(t)
	s := f.mustCreate(t, offscreenDesc(4, 4, 16))

	desc, err := s.Lock(nil, LockWait)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if !s.Locked() || !s.Dirty() {
		t.Fatalf("after Lock: locked=%v dirty=%v, want both true", s.Locked(), s.Dirty())
	}
	if len(desc.Surface) != desc.Pitch*desc.Height {
		t.Errorf("len(Surface) = %d, want %d", len(desc.Surface), desc.Pitch*desc.Height)
	}
	if !desc.Flags.Has(DescLPSurface) {
		t.Error("locked desc is missing the LPSurface flag")
	}

	desc.Surface[0] = 0xAB
	if s.buffer[0] != 0xAB {
		t.Error("Lock must expose the surface buffer itself, not a copy")
	}

	before := append([]byte(nil), s.buffer...)
	if _, err := s.Lock(nil, 0); !errors.Is(err, ErrSurfaceBusy) {
		t.Errorf("second Lock() error = %v, want ErrSurfaceBusy", err)
	}
	if !bytes.Equal(before, s.buffer) {
		t.Error("failed Lock mutated the buffer")
	}

	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if s.Locked() {
		t.Error("surface still locked after Unlock")
	}
	got, _ := s.GetSurfaceDesc()
	if got.Surface != nil || got.Flags.Has(DescLPSurface) {
		t.Error("Unlock must withdraw the exposed buffer")
	}

	if err := s.Unlock(); !errors.Is(err, ErrNotLocked) {
		t.Errorf("second Unlock() error = %v, want ErrNotLocked", err)
	}
	if !bytes.Equal(before, s.buffer) {
		t.Error("failed Unlock mutated the buffer")
	}
	if len(f.log.calls) != 0 {
		t.Errorf("offscreen unlock called collaborators: %v", f.log.calls)
	}
}

func TestUnlockStandalonePrimaryPresents(t *testing.T) {
	f := newFixture(t)
	s := f.mustCreate(t, SurfaceDesc{Flags: DescCaps, Caps: CapsPrimarySurface})
	if s.Role() != RolePrimary {
		t.Fatalf("role = %v, want primary", s.Role())
	}

	desc, err := s.Lock(nil, 0)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	for i := range desc.Surface {
		desc.Surface[i] = byte(i)
	}
	want := append([]byte(nil), desc.Surface...)

	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}

	wantCalls := []string{"swap", "viewport", "upload", "render"}
	if !equalCalls(f.log.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", f.log.calls, wantCalls)
	}
	if len(f.renderer.uploads) != 1 || !bytes.Equal(f.renderer.uploads[0], want) {
		t.Error("upload did not receive the full written buffer")
	}
	if f.renderer.descs[0].Surface != nil {
		t.Error("uploaded desc still exposes the locked buffer")
	}
	if !s.Dirty() {
		t.Error("present cleared the dirty flag of a stand-alone primary")
	}
}

func TestUnlockAppliesPostWriteFilter(t *testing.T) {
	var gotID string
	policies := policyFunc(func(id string) PostWriteFilter {
		gotID = id
		if id != "tomb" {
			return nil
		}
		return PostWriteFilterFunc(func(desc SurfaceDesc, buf []byte) {
			for i := range buf {
				buf[i] = 0x7F
			}
		})
	})

	f := newFixture(t, WithPolicies(policies))
	f.ctx.gameID = "tomb"
	s := f.mustCreate(t, SurfaceDesc{Flags: DescCaps, Caps: CapsPrimarySurface})

	if _, err := s.Lock(nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Unlock(); err != nil {
		t.Fatal(err)
	}

	if gotID != "tomb" {
		t.Errorf("policy looked up with %q, want tomb", gotID)
	}
	if up := f.renderer.uploads[0]; up[0] != 0x7F || up[len(up)-1] != 0x7F {
		t.Error("filter output was not uploaded")
	}
}

func TestUnlockFlipChainDoesNotPresent(t *testing.T) {
	f := newFixture(t)
	primary := f.mustCreate(t, flipChainDesc())
	back, _ := primary.GetAttachedSurface(CapsBackBuffer)

	for _, s := range []*Surface{primary, back} {
		if _, err := s.Lock(nil, 0); err != nil {
			t.Fatal(err)
		}
		if err := s.Unlock(); err != nil {
			t.Fatal(err)
		}
	}
	if len(f.log.calls) != 0 {
		t.Errorf("unlock of flip chain called collaborators: %v", f.log.calls)
	}
}

type policyFunc func(string) PostWriteFilter

func (p policyFunc) PostWriteFilter(id string) PostWriteFilter { return p(id) }

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

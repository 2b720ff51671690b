package ddraw

import "testing"

func TestFillZeroClearsEveryDepth(t *testing.T) {
	for _, bpp := range []int{8, 15, 16, 24, 32} {
		buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
		if !fill(buf, bpp, 0) {
			t.Errorf("fill(%d, 0) reported failure", bpp)
		}
		for i, b := range buf {
			if b != 0 {
				t.Errorf("bpp %d: buf[%d] = %d, want 0", bpp, i, b)
			}
		}
	}
}

func TestFillPattern(t *testing.T) {
	tests := []struct {
		name  string
		bpp   int
		color uint32
		want  []byte
	}{
		{"8 bit uses low byte", 8, 0x1234, []byte{0x34, 0x34, 0x34, 0x34, 0x34, 0x34}},
		{"16 bit", 16, 0xF81F, []byte{0x1F, 0xF8, 0x1F, 0xF8, 0x1F, 0xF8}},
		{"24 bit", 24, 0x112233, []byte{0x33, 0x22, 0x11, 0x33, 0x22, 0x11}},
		{"32 bit", 32, 0xAABBCCDD, []byte{0xDD, 0xCC, 0xBB, 0xAA, 0xDD, 0xCC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, len(tt.want))
			if !fill(buf, tt.bpp, tt.color) {
				t.Fatal("fill reported failure")
			}
			for i := range buf {
				if buf[i] != tt.want[i] {
					t.Errorf("buf = % x, want % x", buf, tt.want)
					break
				}
			}
		})
	}
}

func TestFillUnsupportedDepth(t *testing.T) {
	for _, bpp := range []int{0, 4, 15, 48} {
		buf := []byte{7, 7}
		if fill(buf, bpp, 0xFF) {
			t.Errorf("fill(%d) reported success", bpp)
		}
		if buf[0] != 7 || buf[1] != 7 {
			t.Errorf("fill(%d) modified the buffer", bpp)
		}
	}
}

func TestClearMarksDirty(t *testing.T) {
	f := newFixture(t)
	s := f.mustCreate(t, offscreenDesc(2, 2, 32))
	if err := s.Clear(0x00FF00FF); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Error("Clear did not mark the surface dirty")
	}
	if s.buffer[0] != 0xFF || s.buffer[1] != 0x00 {
		t.Errorf("first pixel = % x", s.buffer[:4])
	}
}

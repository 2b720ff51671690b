package screenshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 120), 0x40, 0xFF})
		}
	}
	return img
}

func TestEncodeFormats(t *testing.T) {
	tests := []struct {
		format string
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{FormatPNG, func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) }},
		{FormatWebP, func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) }},
		{FormatBMP, func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) }},
		{FormatTGA, func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) }},
	}
	src := testImage()
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, tt.format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			r, g, b, _ := got.At(3, 1).RGBA()
			wr, wg, wb, _ := src.At(3, 1).RGBA()
			if r>>8 != wr>>8 || g>>8 != wg>>8 || b>>8 != wb>>8 {
				t.Errorf("pixel = %v, want %v", got.At(3, 1), src.At(3, 1))
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(), "gif")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestScale(t *testing.T) {
	src := testImage()
	if Scale(src, 1) != image.Image(src) {
		t.Error("Scale(1) should return the source")
	}
	if Scale(src, 0) != image.Image(src) {
		t.Error("Scale(0) should return the source")
	}
	if got := Scale(src, 2).Bounds(); got.Dx() != 8 || got.Dy() != 4 {
		t.Errorf("Scale(2) bounds = %v", got)
	}
	if got := Scale(src, 0.1).Bounds(); got.Dx() != 1 || got.Dy() != 1 {
		t.Errorf("Scale(0.1) bounds = %v, want 1x1", got)
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 2, 42*int(time.Millisecond), time.UTC)
	if got, want := Filename(ts, "png"), "glrage-20240307-090502-042.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestWriterCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	w := NewWriter(dir, "PNG", 2)
	w.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	path, err := w.Capture(testImage())
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if filepath.Base(path) != "glrage-20240102-030405-000.png" {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width = %d, want scaled 8", img.Bounds().Dx())
	}

	// Same timestamp must not overwrite the first capture.
	if _, err := w.Capture(testImage()); err == nil {
		t.Error("second Capture() with the same name succeeded")
	}
}

func TestWriterDefaults(t *testing.T) {
	w := NewWriter(t.TempDir(), "", 0)
	if w.Format() != FormatPNG {
		t.Errorf("Format() = %q", w.Format())
	}
}

// Package screenshot encodes captured frames and writes them to disk.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Supported formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatTGA  = "tga"
	FormatBMP  = "bmp"
)

// ErrUnknownFormat is returned for formats Encode does not support.
var ErrUnknownFormat = errors.New("screenshot: unknown format")

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case FormatPNG, "":
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("screenshot: encode %s: %w", format, err)
	}
	return nil
}

// Scale resizes img by factor with Catmull-Rom filtering. Factors of 1 or
// less than or equal to 0 return img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := max(int(float64(b.Dx())*factor+0.5), 1)
	h := max(int(float64(b.Dy())*factor+0.5), 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Writer saves screenshots into a directory.
type Writer struct {
	mu     sync.Mutex
	dir    string
	format string
	scale  float64
	now    func() time.Time
}

// NewWriter returns a Writer that stores format files scaled by scale in
// dir.
func NewWriter(dir, format string, scale float64) *Writer {
	if format == "" {
		format = FormatPNG
	}
	return &Writer{
		dir:    dir,
		format: strings.ToLower(format),
		scale:  scale,
		now:    time.Now,
	}
}

// Dir returns the target directory.
func (w *Writer) Dir() string { return w.dir }

// Format returns the file format.
func (w *Writer) Format() string { return w.format }

// Capture encodes img into a new file named after the current time and
// returns its path.
func (w *Writer) Capture(img image.Image) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: create dir: %w", err)
	}

	path := filepath.Join(w.dir, Filename(w.now(), w.format))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	if err := Encode(f, Scale(img, w.scale), w.format); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("screenshot: close %s: %w", path, err)
	}
	return path, nil
}

// Filename returns the screenshot file name for t,
// glrage-YYYYMMDD-HHMMSS-NNN.ext with NNN the milliseconds.
func Filename(t time.Time, format string) string {
	return fmt.Sprintf("glrage-%s-%03d.%s", t.Format("20060102-150405"), t.Nanosecond()/int(time.Millisecond), format)
}

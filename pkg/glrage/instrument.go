package glrage

import (
	"image"

	"github.com/opd-ai/go-glrage/internal/ddraw"
	"github.com/opd-ai/go-glrage/internal/display"
)

// backend is a renderer that also serves as the window, presenter and
// viewport sink of the display context.
type backend interface {
	ddraw.Renderer
	display.Window
	display.Presenter
	display.ViewportSink
	// CaptureBack returns the frame the next Present shows.
	CaptureBack() *image.RGBA
}

// countingRenderer records renderer calls in Metrics.
type countingRenderer struct {
	next    ddraw.Renderer
	metrics *Metrics
}

func (r countingRenderer) Upload(desc ddraw.SurfaceDesc, buf []byte) {
	r.metrics.RecordUpload(len(buf))
	r.next.Upload(desc, buf)
}

func (r countingRenderer) Render() {
	r.metrics.IncrementRenders()
	r.next.Render()
}

// countingContext records buffer swaps in Metrics. The embedded Context
// keeps it a ddraw.DisplaySizer.
type countingContext struct {
	*display.Context
	metrics *Metrics
}

func (c countingContext) SwapBuffers() {
	c.metrics.IncrementSwaps()
	c.Context.SwapBuffers()
}

// captureFunc adapts a function to display.Capturer.
type captureFunc func() error

func (f captureFunc) CaptureFrame() error { return f() }

//go:build !noebiten

package render

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-glrage/internal/ddraw"
	"github.com/opd-ai/go-glrage/internal/display"
)

// EbitenRenderer renders with Ebitengine. Surfaces are uploaded into a
// texture and drawn into an offscreen back frame; Present swaps it with
// the front frame that Draw shows on screen. It also implements
// display.Window on top of the Ebitengine window functions.
//
// Images are allocated lazily, so a renderer can be built before the game
// loop starts.
type EbitenRenderer struct {
	mu sync.Mutex

	pixels  *image.RGBA
	texture *ebiten.Image
	front   *ebiten.Image
	back    *ebiten.Image

	width    int
	height   int
	viewport display.Viewport
	filter   ebiten.Filter
	op       ebiten.DrawImageOptions

	metrics *FrameMetrics
	stats   *RenderStats
}

// NewEbitenRenderer returns a renderer with width x height frames.
func NewEbitenRenderer(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		width:   width,
		height:  height,
		filter:  ebiten.FilterNearest,
		metrics: NewFrameMetrics(0),
		stats:   NewRenderStats(),
	}
}

// SetFilter selects the texture filter used when scaling into the viewport.
func (r *EbitenRenderer) SetFilter(f ebiten.Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = f
}

// Upload decodes buf and writes it into the texture.
func (r *EbitenRenderer) Upload(desc ddraw.SurfaceDesc, buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pixels = DecodeInto(r.pixels, desc, buf)
	w, h := r.pixels.Rect.Dx(), r.pixels.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if r.texture == nil || r.texture.Bounds().Dx() != w || r.texture.Bounds().Dy() != h {
		if r.texture != nil {
			r.texture.Deallocate()
		}
		r.texture = ebiten.NewImage(w, h)
	}
	r.texture.WritePixels(r.pixels.Pix)
	r.stats.RecordUpload(len(buf))
}

// Render draws the texture into the viewport of the back frame.
func (r *EbitenRenderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.RecordRender()
	if r.texture == nil {
		return
	}
	r.ensureFramesLocked()

	tb := r.texture.Bounds()
	vp := r.viewport
	if vp.Empty() {
		vp = display.Viewport{Width: r.width, Height: r.height}
	}

	r.op.GeoM = viewportGeoM(tb.Dx(), tb.Dy(), vp)
	r.op.Filter = r.filter
	r.back.DrawImage(r.texture, &r.op)
}

// viewportGeoM maps a w x h texture onto vp.
func viewportGeoM(w, h int, vp display.Viewport) ebiten.GeoM {
	var m ebiten.GeoM
	if w <= 0 || h <= 0 {
		return m
	}
	m.Scale(float64(vp.Width)/float64(w), float64(vp.Height)/float64(h))
	m.Translate(float64(vp.X), float64(vp.Y))
	return m
}

// Present swaps the front and back frames and clears the new back frame.
func (r *EbitenRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureFramesLocked()
	r.front, r.back = r.back, r.front
	r.back.Clear()
	r.stats.RecordPresent()
	r.metrics.Tick()
}

// Draw shows the front frame on screen.
func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.front == nil {
		return
	}
	screen.DrawImage(r.front, nil)
}

// CaptureBack reads the frame being composed into an RGBA image. It must be
// called while the game loop runs.
func (r *EbitenRenderer) CaptureBack() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureFramesLocked()
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.back.ReadPixels(img.Pix)
	return img
}

// SetViewport sets the target area of Render.
func (r *EbitenRenderer) SetViewport(vp display.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = vp
}

// Layout records the outside size reported by the game loop as the frame
// size and returns it.
func (r *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if outsideWidth > 0 && outsideHeight > 0 {
		r.width, r.height = outsideWidth, outsideHeight
	}
	return r.width, r.height
}

// Size returns the frame size, which follows the window client area.
func (r *EbitenRenderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// SetSize resizes the window.
func (r *EbitenRenderer) SetSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetFullscreen switches the window to fullscreen.
func (r *EbitenRenderer) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// Metrics returns the frame timing of presented frames.
func (r *EbitenRenderer) Metrics() *FrameMetrics {
	return r.metrics
}

// Stats returns the operation counters.
func (r *EbitenRenderer) Stats() *RenderStats {
	return r.stats
}

// ensureFramesLocked (re)allocates the frames when the size changed.
func (r *EbitenRenderer) ensureFramesLocked() {
	w, h := max(r.width, 1), max(r.height, 1)
	if r.back != nil && r.back.Bounds().Dx() == w && r.back.Bounds().Dy() == h {
		return
	}
	for _, img := range []*ebiten.Image{r.front, r.back} {
		if img != nil {
			img.Deallocate()
		}
	}
	r.front = ebiten.NewImage(w, h)
	r.back = ebiten.NewImage(w, h)
	r.width, r.height = w, h
}

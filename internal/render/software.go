package render

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/opd-ai/go-glrage/internal/ddraw"
	"github.com/opd-ai/go-glrage/internal/display"
)

// SoftwareRenderer renders into image.RGBA frames on the CPU. It also acts
// as the window of a headless host: its frame size is the window size.
//
// SoftwareRenderer is safe for concurrent use.
type SoftwareRenderer struct {
	mu sync.Mutex

	texture  *image.RGBA
	front    *image.RGBA
	back     *image.RGBA
	viewport display.Viewport
	scaler   draw.Scaler

	fullscreen bool

	metrics *FrameMetrics
	stats   *RenderStats
}

// NewSoftwareRenderer returns a renderer with width x height frames.
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	r := &SoftwareRenderer{
		scaler:  draw.NearestNeighbor,
		metrics: NewFrameMetrics(0),
		stats:   NewRenderStats(),
	}
	r.resizeLocked(width, height)
	return r
}

// SetScaler replaces the scaler used by Render. nil restores nearest
// neighbor scaling.
func (r *SoftwareRenderer) SetScaler(s draw.Scaler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == nil {
		s = draw.NearestNeighbor
	}
	r.scaler = s
}

// Upload decodes buf into the texture.
func (r *SoftwareRenderer) Upload(desc ddraw.SurfaceDesc, buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texture = DecodeInto(r.texture, desc, buf)
	r.stats.RecordUpload(len(buf))
}

// Render scales the texture into the viewport of the back frame. An empty
// viewport covers the whole frame.
func (r *SoftwareRenderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.RecordRender()
	if r.texture == nil || r.texture.Rect.Empty() {
		return
	}
	dr := r.back.Bounds()
	if !r.viewport.Empty() {
		dr = r.viewport.Rect().Intersect(dr)
	}
	r.scaler.Scale(r.back, dr, r.texture, r.texture.Bounds(), draw.Src, nil)
}

// Present makes the back frame the front frame and clears the new back.
func (r *SoftwareRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.front, r.back = r.back, r.front
	draw.Draw(r.back, r.back.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	r.stats.RecordPresent()
	r.metrics.Tick()
}

// SetViewport sets the target area of Render.
func (r *SoftwareRenderer) SetViewport(vp display.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = vp
}

// Front returns a copy of the last presented frame.
func (r *SoftwareRenderer) Front() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneRGBA(r.front)
}

// Back returns a copy of the frame being composed.
func (r *SoftwareRenderer) Back() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneRGBA(r.back)
}

// CaptureBack returns a copy of the frame being composed, which is the
// frame the next Present shows.
func (r *SoftwareRenderer) CaptureBack() *image.RGBA {
	return r.Back()
}

// Texture returns a copy of the last uploaded texture, or nil.
func (r *SoftwareRenderer) Texture() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.texture == nil {
		return nil
	}
	return cloneRGBA(r.texture)
}

// Size returns the frame size.
func (r *SoftwareRenderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.back.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize resizes both frames. Their contents are discarded.
func (r *SoftwareRenderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizeLocked(width, height)
}

// SetFullscreen records the fullscreen state; frames are sized by SetSize.
func (r *SoftwareRenderer) SetFullscreen(fullscreen bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fullscreen = fullscreen
}

// Fullscreen reports the state set by SetFullscreen.
func (r *SoftwareRenderer) Fullscreen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fullscreen
}

// Metrics returns the frame timing of presented frames.
func (r *SoftwareRenderer) Metrics() *FrameMetrics {
	return r.metrics
}

// Stats returns the operation counters.
func (r *SoftwareRenderer) Stats() *RenderStats {
	return r.stats
}

func (r *SoftwareRenderer) resizeLocked(width, height int) {
	width, height = max(width, 0), max(height, 0)
	rect := image.Rect(0, 0, width, height)
	if r.back != nil && r.back.Rect == rect {
		return
	}
	r.front = image.NewRGBA(rect)
	r.back = image.NewRGBA(rect)
	fillOpaque(r.front)
	fillOpaque(r.back)
}

// fillOpaque sets every pixel of img to opaque black.
func fillOpaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

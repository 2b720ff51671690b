// Package display implements the window and presentation services surfaces
// present through: the display mode, the letterboxed viewport, fullscreen
// switching, buffer swaps and screenshot scheduling.
package display

import (
	"fmt"
	"sync"
)

// Window is the host window. Size reports the client area in pixels.
type Window interface {
	Size() (width, height int)
	SetSize(width, height int)
	SetFullscreen(fullscreen bool)
}

// Presenter shows the completed frame and starts a cleared one.
type Presenter interface {
	Present()
}

// ViewportSink receives the viewport frames are drawn into.
type ViewportSink interface {
	SetViewport(vp Viewport)
}

// Capturer grabs the completed frame before it is presented.
type Capturer interface {
	CaptureFrame() error
}

// Context tracks the emulated display mode and drives presentation.
// It is safe for concurrent use; input handling may toggle fullscreen or
// schedule screenshots from another goroutine than the one flipping surfaces.
type Context struct {
	mu sync.Mutex

	width  int
	height int

	fullscreen bool
	rendered   bool
	screenshot bool
	viewport   Viewport

	window    Window
	presenter Presenter
	sink      ViewportSink
	capturer  Capturer
	desktop   func() (int, int, error)
	onError   func(error)
	gameID    string
}

// Option configures a Context.
type Option func(*Context)

// WithWindow attaches the host window. Without one the window is assumed to
// match the display size.
func WithWindow(w Window) Option {
	return func(c *Context) { c.window = w }
}

// WithPresenter sets the target of SwapBuffers.
func WithPresenter(p Presenter) Option {
	return func(c *Context) { c.presenter = p }
}

// WithViewportSink sets the receiver of SetupViewport results.
func WithViewportSink(s ViewportSink) Option {
	return func(c *Context) { c.sink = s }
}

// WithCapturer sets the screenshot capturer used by scheduled screenshots.
func WithCapturer(cp Capturer) Option {
	return func(c *Context) { c.capturer = cp }
}

// WithDesktopSize replaces the desktop size lookup.
func WithDesktopSize(fn func() (int, int, error)) Option {
	return func(c *Context) { c.desktop = fn }
}

// WithErrorHandler receives errors raised while presenting.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Context) { c.onError = fn }
}

// WithGameID sets the game identity. An empty id selects DefaultGameID.
func WithGameID(id string) Option {
	return func(c *Context) { c.gameID = id }
}

// New returns a Context with a width x height display.
func New(width, height int, opts ...Option) *Context {
	c := &Context{
		width:   width,
		height:  height,
		desktop: DesktopSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gameID == "" {
		c.gameID = DefaultGameID()
	}
	return c
}

// GameID returns the identity of the running title.
func (c *Context) GameID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

// SetGameID replaces the game identity.
func (c *Context) SetGameID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = id
}

// SetDisplaySize changes the display size. The window follows unless it is
// fullscreen.
func (c *Context) SetDisplaySize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.width = width
	c.height = height
	if !c.fullscreen {
		c.setWindowSizeLocked(width, height)
	}
}

// DisplaySize returns the current display size.
func (c *Context) DisplaySize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Fullscreen reports whether the window is fullscreen.
func (c *Context) Fullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullscreen
}

// SetFullscreen switches between fullscreen and windowed mode. Fullscreen
// windows cover the desktop; windowed ones return to the display size.
func (c *Context) SetFullscreen(fullscreen bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFullscreenLocked(fullscreen)
}

// ToggleFullscreen flips the fullscreen state.
func (c *Context) ToggleFullscreen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFullscreenLocked(!c.fullscreen)
}

func (c *Context) setFullscreenLocked(fullscreen bool) {
	c.fullscreen = fullscreen
	if c.window == nil {
		return
	}

	c.window.SetFullscreen(fullscreen)
	if fullscreen {
		if dw, dh, ok := c.desktopSizeLocked(); ok {
			c.window.SetSize(dw, dh)
		}
		return
	}
	c.setWindowSizeLocked(c.width, c.height)
}

// setWindowSizeLocked resizes the window. A windowed display as large as the
// desktop is halved so it does not cover the whole screen.
func (c *Context) setWindowSizeLocked(width, height int) {
	if c.window == nil {
		return
	}
	if dw, dh, ok := c.desktopSizeLocked(); ok && !c.fullscreen && width == dw && height == dh {
		width /= 2
		height /= 2
	}
	c.window.SetSize(width, height)
}

func (c *Context) desktopSizeLocked() (int, int, bool) {
	if c.desktop == nil {
		return 0, 0, false
	}
	w, h, err := c.desktop()
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// WindowSize returns the client area of the window, or the display size
// when there is no window.
func (c *Context) WindowSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windowSizeLocked()
}

func (c *Context) windowSizeLocked() (int, int) {
	if c.window == nil {
		return c.width, c.height
	}
	return c.window.Size()
}

// SetupViewport recomputes the viewport for the current window and display
// sizes and hands it to the viewport sink.
func (c *Context) SetupViewport() {
	c.mu.Lock()
	ww, wh := c.windowSizeLocked()
	vp := ComputeViewport(c.width, c.height, ww, wh)
	c.viewport = vp
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink.SetViewport(vp)
	}
}

// Viewport returns the viewport from the last SetupViewport call.
func (c *Context) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// RenderBegin records that the GPU is drawing the current frame itself.
func (c *Context) RenderBegin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rendered = true
}

// IsRendered reports whether RenderBegin was called since the previous
// IsRendered call and resets the signal.
func (c *Context) IsRendered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.rendered
	c.rendered = false
	return r
}

// Rendering reports the same signal as IsRendered without resetting it.
func (c *Context) Rendering() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendered
}

// ScheduleScreenshot captures the next completed frame.
func (c *Context) ScheduleScreenshot() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screenshot = true
}

// SwapBuffers captures a scheduled screenshot of the completed frame, then
// presents it. Capture errors go to the error handler and do not stop the
// swap.
func (c *Context) SwapBuffers() {
	c.mu.Lock()
	capture := c.screenshot
	c.screenshot = false
	capturer, presenter, onError := c.capturer, c.presenter, c.onError
	c.mu.Unlock()

	if capture && capturer != nil {
		if err := capturer.CaptureFrame(); err != nil && onError != nil {
			onError(fmt.Errorf("screenshot: %w", err))
		}
	}

	if presenter != nil {
		presenter.Present()
	}
}

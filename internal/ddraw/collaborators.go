package ddraw

// Renderer pushes CPU pixel buffers to the GPU and draws them.
type Renderer interface {
	// Upload copies buf, laid out as described by desc, into the texture
	// store. Failures are fatal to the host and are not reported here.
	Upload(desc SurfaceDesc, buf []byte)
	// Render draws the most recently uploaded buffer into the current frame.
	Render()
}

// Context provides window, viewport and presentation services.
type Context interface {
	// IsRendered reports whether GPU-driven rendering happened since the
	// previous call and resets that signal.
	IsRendered() bool
	// Rendering reports the same signal as IsRendered without resetting it.
	Rendering() bool
	// SwapBuffers presents the completed frame.
	SwapBuffers()
	// SetupViewport recomputes the viewport from the window and display size.
	SetupViewport()
	// GameID returns an opaque identity used to look up post-write policies.
	GameID() string
}

// DisplaySizer is implemented by contexts that track the emulated display
// mode. SetDisplayMode forwards the new size to it.
type DisplaySizer interface {
	SetDisplaySize(width, height int)
}

// PostWriteFilter rewrites a stand-alone primary buffer after the client has
// unlocked it and before it is uploaded.
type PostWriteFilter interface {
	Apply(desc SurfaceDesc, buf []byte)
}

// PostWriteFilterFunc adapts a function to PostWriteFilter.
type PostWriteFilterFunc func(desc SurfaceDesc, buf []byte)

// Apply calls f(desc, buf).
func (f PostWriteFilterFunc) Apply(desc SurfaceDesc, buf []byte) {
	f(desc, buf)
}

// PolicySource selects the post-write filter for a game identity.
// PostWriteFilter returns nil when no filter applies.
type PolicySource interface {
	PostWriteFilter(gameID string) PostWriteFilter
}

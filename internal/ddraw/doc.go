// Package ddraw emulates the legacy lockable, flippable 2D surface API on top
// of host-memory pixel buffers.
//
// Surfaces are created from a [SurfaceDesc] through a [DirectDraw] object.
// Missing attributes are filled in from the current display mode. Clients lock
// a surface to get direct access to its bytes, unlock it, blit between surfaces
// and finally flip the primary surface. Presentation is delegated to two
// collaborators:
//
//   - [Renderer] uploads CPU buffers to the GPU and draws them.
//   - [Context] owns the window, the viewport and buffer presentation.
//
// The flip protocol reconciles both presentation models. A frame that was
// already drawn by the GPU (reported through [Context.IsRendered]) is never
// overwritten by a stale CPU buffer, and a frame produced only through the CPU
// path is rendered before it is presented.
//
// # Threading
//
// The package is single-threaded like the API it emulates. All calls on a
// surface graph must come from the goroutine that drives the host loop.
//
// # Errors
//
// Every operation reports failure through an [Error] value that carries the
// original HRESULT code. Compare with errors.Is:
//
//	if err := s.Unlock(); errors.Is(err, ddraw.ErrNotLocked) {
//		// ...
//	}
package ddraw

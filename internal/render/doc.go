// Package render turns surface buffers into frames.
//
// Two renderers implement the same cycle: Upload decodes a surface buffer
// into a texture, Render scales the texture into the viewport of the back
// frame, and Present makes the back frame visible and starts a cleared one.
// [SoftwareRenderer] works on image.RGBA frames and needs no GPU.
// [EbitenRenderer] draws with Ebitengine and is excluded by the noebiten
// build tag.
package render

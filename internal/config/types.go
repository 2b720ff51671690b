// Package config provides configuration data structures for glrage.
// A configuration selects the initial display mode, window behavior,
// screenshot output and the per-title quirks applied to video surfaces.
package config

import "maps"

// Config represents the complete glrage configuration.
type Config struct {
	// Display is the display mode surfaces adopt until the client sets one.
	Display DisplayConfig `json:"display"`
	// Window contains host window settings.
	Window WindowConfig `json:"window"`
	// Screenshot controls how captured frames are written.
	Screenshot ScreenshotConfig `json:"screenshot"`
	// Game holds the identity of the running title.
	Game GameConfig `json:"game"`
	// Quirks maps game identity substrings to per-title fixups.
	Quirks map[string]QuirkConfig `json:"quirks"`
}

// DisplayConfig holds the initial emulated display mode.
type DisplayConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	BitDepth int `json:"bit_depth"`
}

// WindowConfig holds host window settings.
type WindowConfig struct {
	// Title is the window title.
	Title string `json:"title"`
	// Fullscreen starts the window in fullscreen mode.
	Fullscreen bool `json:"fullscreen"`
	// VSync synchronizes presentation with the monitor refresh.
	VSync bool `json:"vsync"`
	// Scale multiplies the display size to get the initial window size.
	Scale float64 `json:"scale"`
}

// ScreenshotConfig controls screenshot output.
type ScreenshotConfig struct {
	// Dir is the directory screenshots are written to.
	Dir string `json:"dir"`
	// Format is one of png, webp, tga or bmp.
	Format string `json:"format"`
	// Scale resizes captured frames before encoding. 1 keeps the frame size.
	Scale float64 `json:"scale"`
}

// GameConfig identifies the running title.
type GameConfig struct {
	// ID overrides the identity derived from the executable name.
	ID string `json:"id"`
}

// QuirkConfig enables fixups for one title.
type QuirkConfig struct {
	// LineDoubling copies even scanlines over odd ones on video surfaces.
	LineDoubling bool `json:"line_doubling"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Quirks = maps.Clone(c.Quirks)
	return out
}

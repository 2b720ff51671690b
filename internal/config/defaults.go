package config

// Default values for configuration options.
const (
	// DefaultWidth is the default display width in pixels.
	DefaultWidth = 640
	// DefaultHeight is the default display height in pixels.
	DefaultHeight = 480
	// DefaultBitDepth is the default display bit depth.
	DefaultBitDepth = 16
	// DefaultTitle is the default window title.
	DefaultTitle = "glrage"
	// DefaultScreenshotFormat is the default screenshot image format.
	DefaultScreenshotFormat = "png"
)

// DefaultConfig returns a Config with sensible default values.
// Tomb Raider video sequences are interlaced, so its quirk is on by default.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			BitDepth: DefaultBitDepth,
		},
		Window: WindowConfig{
			Title: DefaultTitle,
			VSync: true,
			Scale: 1,
		},
		Screenshot: ScreenshotConfig{
			Dir:    ".",
			Format: DefaultScreenshotFormat,
			Scale:  1,
		},
		Quirks: map[string]QuirkConfig{
			"tomb": {LineDoubling: true},
		},
	}
}

package glrage

import "time"

// Options configures an Instance.
type Options struct {
	// Headless renders on the CPU without opening a window.
	Headless bool

	// Frames limits the number of client frames run in headless mode.
	// Zero runs until Stop is called or the client quits.
	Frames int

	// FrameInterval paces headless frames. Zero runs them back to back.
	FrameInterval time.Duration

	// WindowTitle overrides the configured window title.
	WindowTitle string

	// Logger receives debug/info messages, including those of the surface
	// layer. If nil, no logging is performed.
	Logger Logger

	// Metrics sets a custom metrics collector.
	// If nil, DefaultMetrics() is used.
	Metrics *Metrics

	// WatchConfig reloads the configuration file when it changes on disk.
	// It only applies to instances created with New.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

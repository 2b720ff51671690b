package glrage

import "time"

// Status represents the current state of an Instance.
type Status struct {
	// Running indicates if Run is active.
	Running bool
	// StartTime is when Run was last started (zero if never started).
	StartTime time.Time
	// Frames is the number of client frames run since the last start.
	Frames uint64
	// LastError is the most recent error reported (nil if none).
	LastError error
	// ConfigSource describes the configuration source.
	ConfigSource string
	// GameID is the identity post-write quirks are selected by.
	GameID string
	// Fullscreen reports the window state.
	Fullscreen bool
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a lifecycle event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates lifecycle event types.
type EventType int

const (
	// EventStarted is emitted when Run starts.
	EventStarted EventType = iota
	// EventStopped is emitted when Run returns.
	EventStopped
	// EventConfigReloaded is emitted when a reloaded configuration takes effect.
	EventConfigReloaded
	// EventScreenshot is emitted with the path of each saved screenshot.
	EventScreenshot
	// EventError is emitted when an error is reported.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventScreenshot:
		return "screenshot"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

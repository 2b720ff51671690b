package glrage

import (
	"errors"
	"sync"
	"time"
)

// ErrScreenshotsSuspended is returned for screenshots requested while
// captures are suspended after repeated failures.
var ErrScreenshotsSuspended = errors.New("glrage: screenshots suspended after repeated failures")

// Capture guard defaults.
const (
	defaultCaptureFailures = 3
	defaultCaptureCooldown = 30 * time.Second
)

// guardState is the state of a captureGuard.
type guardState int

const (
	guardClosed guardState = iota
	guardOpen
	guardHalfOpen
)

func (s guardState) String() string {
	switch s {
	case guardClosed:
		return "closed"
	case guardOpen:
		return "open"
	case guardHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// captureGuard is a circuit breaker around screenshot captures. After
// threshold consecutive failures it rejects captures for cooldown, then lets
// a single trial capture through; its result closes or reopens the guard.
type captureGuard struct {
	mu        sync.Mutex
	state     guardState
	failures  int
	openedAt  time.Time
	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

func newCaptureGuard(threshold int, cooldown time.Duration) *captureGuard {
	if threshold <= 0 {
		threshold = defaultCaptureFailures
	}
	if cooldown <= 0 {
		cooldown = defaultCaptureCooldown
	}
	return &captureGuard{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Do runs fn unless the guard is open.
func (g *captureGuard) Do(fn func() error) error {
	if !g.allow() {
		return ErrScreenshotsSuspended
	}
	err := fn()
	g.record(err)
	return err
}

// State returns the current state.
func (g *captureGuard) State() guardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == guardOpen && g.now().Sub(g.openedAt) >= g.cooldown {
		return guardHalfOpen
	}
	return g.state
}

// Reset closes the guard.
func (g *captureGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = guardClosed
	g.failures = 0
}

func (g *captureGuard) allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case guardClosed:
		return true
	case guardOpen:
		if g.now().Sub(g.openedAt) >= g.cooldown {
			g.state = guardHalfOpen
			return true
		}
	}
	// Half-open lets only the one trial through.
	return false
}

func (g *captureGuard) record(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err == nil {
		g.state = guardClosed
		g.failures = 0
		return
	}

	g.failures++
	if g.state == guardHalfOpen || g.failures >= g.threshold {
		g.state = guardOpen
		g.openedAt = g.now()
	}
}

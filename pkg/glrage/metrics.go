package glrage

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics counts what an instance does. It uses Go's expvar package for
// exposition, available at /debug/vars when an HTTP server is running.
//
// Thread-safe for concurrent use.
type Metrics struct {
	frames        atomic.Int64
	uploads       atomic.Int64
	uploadedBytes atomic.Int64
	renders       atomic.Int64
	swaps         atomic.Int64
	screenshots   atomic.Int64
	configReloads atomic.Int64
	errorsTotal   atomic.Int64

	frameLatencyNs    atomic.Int64
	frameLatencyCount atomic.Int64

	currentlyRunning atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics with the expvar package.
// Safe to call multiple times; subsequent calls are no-ops. Only one Metrics
// per process may be registered since expvar names are global.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	expvar.Publish("glrage_frames_total", expvar.Func(func() any { return m.frames.Load() }))
	expvar.Publish("glrage_uploads_total", expvar.Func(func() any { return m.uploads.Load() }))
	expvar.Publish("glrage_uploaded_bytes_total", expvar.Func(func() any { return m.uploadedBytes.Load() }))
	expvar.Publish("glrage_renders_total", expvar.Func(func() any { return m.renders.Load() }))
	expvar.Publish("glrage_swaps_total", expvar.Func(func() any { return m.swaps.Load() }))
	expvar.Publish("glrage_screenshots_total", expvar.Func(func() any { return m.screenshots.Load() }))
	expvar.Publish("glrage_config_reloads_total", expvar.Func(func() any { return m.configReloads.Load() }))
	expvar.Publish("glrage_errors_total", expvar.Func(func() any { return m.errorsTotal.Load() }))
	expvar.Publish("glrage_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("glrage_frame_latency_avg_ms", expvar.Func(func() any {
		return float64(safeDivide(m.frameLatencyNs.Load(), m.frameLatencyCount.Load())) / 1e6
	}))
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Frames:          m.frames.Load(),
		Uploads:         m.uploads.Load(),
		UploadedBytes:   m.uploadedBytes.Load(),
		Renders:         m.renders.Load(),
		Swaps:           m.swaps.Load(),
		Screenshots:     m.screenshots.Load(),
		ConfigReloads:   m.configReloads.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		Running:         m.currentlyRunning.Load() > 0,
		FrameLatencyAvg: safeDivide(m.frameLatencyNs.Load(), m.frameLatencyCount.Load()),
	}
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Frames        int64
	Uploads       int64
	UploadedBytes int64
	Renders       int64
	Swaps         int64
	Screenshots   int64
	ConfigReloads int64
	ErrorsTotal   int64

	Running bool

	// FrameLatencyAvg is the average time a client frame took.
	FrameLatencyAvg time.Duration
}

// RecordFrame records a client frame and its duration.
func (m *Metrics) RecordFrame(d time.Duration) {
	m.frames.Add(1)
	m.frameLatencyNs.Add(d.Nanoseconds())
	m.frameLatencyCount.Add(1)
}

// RecordUpload records an upload of n buffer bytes to the renderer.
func (m *Metrics) RecordUpload(n int) {
	m.uploads.Add(1)
	m.uploadedBytes.Add(int64(n))
}

// IncrementRenders records a draw of the uploaded buffer.
func (m *Metrics) IncrementRenders() {
	m.renders.Add(1)
}

// IncrementSwaps records a presented frame.
func (m *Metrics) IncrementSwaps() {
	m.swaps.Add(1)
}

// IncrementScreenshots records a saved screenshot.
func (m *Metrics) IncrementScreenshots() {
	m.screenshots.Add(1)
}

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() {
	m.configReloads.Add(1)
}

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() {
	m.errorsTotal.Add(1)
}

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.currentlyRunning.Store(1)
	} else {
		m.currentlyRunning.Store(0)
	}
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.frames.Store(0)
	m.uploads.Store(0)
	m.uploadedBytes.Store(0)
	m.renders.Store(0)
	m.swaps.Store(0)
	m.screenshots.Store(0)
	m.configReloads.Store(0)
	m.errorsTotal.Store(0)
	m.frameLatencyNs.Store(0)
	m.frameLatencyCount.Store(0)
	m.currentlyRunning.Store(0)
}

// safeDivide performs safe division, returning 0 for divide by zero.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}

package render

import (
	"sync/atomic"
	"time"
)

// FrameMetrics tracks frame timing and performance statistics.
// It provides real-time FPS monitoring and frame time analysis.
type FrameMetrics struct {
	frameCount    atomic.Int64
	totalFrames   atomic.Int64
	lastFPS       atomic.Int64 // FPS * 1000 for precision
	lastFrameTime atomic.Int64 // nanoseconds
	minFrameTime  atomic.Int64
	maxFrameTime  atomic.Int64
	totalTime     atomic.Int64
	lastUpdate    atomic.Int64 // Unix nano
	lastFrame     atomic.Int64 // Unix nano of the previous Tick
	updatePeriod  time.Duration
}

// NewFrameMetrics creates a new FrameMetrics instance.
// The updatePeriod determines how often FPS is recalculated (default: 1 second).
func NewFrameMetrics(updatePeriod time.Duration) *FrameMetrics {
	if updatePeriod <= 0 {
		updatePeriod = time.Second
	}
	fm := &FrameMetrics{
		updatePeriod: updatePeriod,
	}
	fm.lastUpdate.Store(time.Now().UnixNano())
	fm.minFrameTime.Store(int64(time.Hour))
	return fm
}

// Tick records a presented frame, measuring its duration from the previous
// Tick. The first Tick only starts the clock.
func (fm *FrameMetrics) Tick() {
	now := time.Now().UnixNano()
	prev := fm.lastFrame.Swap(now)
	if prev == 0 {
		return
	}
	fm.RecordFrame(time.Duration(now - prev))
}

// RecordFrame records a new frame with its duration.
func (fm *FrameMetrics) RecordFrame(frameTime time.Duration) {
	frameNanos := frameTime.Nanoseconds()

	fm.frameCount.Add(1)
	fm.totalFrames.Add(1)
	fm.lastFrameTime.Store(frameNanos)
	fm.totalTime.Add(frameNanos)

	for {
		currentMin := fm.minFrameTime.Load()
		if frameNanos >= currentMin || fm.minFrameTime.CompareAndSwap(currentMin, frameNanos) {
			break
		}
	}
	for {
		currentMax := fm.maxFrameTime.Load()
		if frameNanos <= currentMax || fm.maxFrameTime.CompareAndSwap(currentMax, frameNanos) {
			break
		}
	}

	now := time.Now().UnixNano()
	lastUpdate := fm.lastUpdate.Load()
	elapsed := time.Duration(now - lastUpdate)

	if elapsed >= fm.updatePeriod {
		if fm.lastUpdate.CompareAndSwap(lastUpdate, now) {
			frames := fm.frameCount.Swap(0)
			if elapsed > 0 {
				fps := float64(frames) / elapsed.Seconds()
				fm.lastFPS.Store(int64(fps * 1000))
			}
		}
	}
}

// FPS returns the frames per second of the last completed period.
func (fm *FrameMetrics) FPS() float64 {
	return float64(fm.lastFPS.Load()) / 1000.0
}

// Frames returns the number of frames recorded since the last Reset.
func (fm *FrameMetrics) Frames() int64 {
	return fm.totalFrames.Load()
}

// LastFrameTime returns the duration of the last frame.
func (fm *FrameMetrics) LastFrameTime() time.Duration {
	return time.Duration(fm.lastFrameTime.Load())
}

// MinFrameTime returns the minimum frame time recorded.
func (fm *FrameMetrics) MinFrameTime() time.Duration {
	return time.Duration(fm.minFrameTime.Load())
}

// MaxFrameTime returns the maximum frame time recorded.
func (fm *FrameMetrics) MaxFrameTime() time.Duration {
	return time.Duration(fm.maxFrameTime.Load())
}

// AverageFrameTime returns the average frame time.
func (fm *FrameMetrics) AverageFrameTime() time.Duration {
	total := fm.totalTime.Load()
	count := fm.totalFrames.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

// Reset clears all metrics to their initial state.
func (fm *FrameMetrics) Reset() {
	fm.frameCount.Store(0)
	fm.totalFrames.Store(0)
	fm.lastFPS.Store(0)
	fm.lastFrameTime.Store(0)
	fm.minFrameTime.Store(int64(time.Hour))
	fm.maxFrameTime.Store(0)
	fm.totalTime.Store(0)
	fm.lastFrame.Store(0)
	fm.lastUpdate.Store(time.Now().UnixNano())
}

// RenderStats counts renderer operations.
type RenderStats struct {
	uploads       atomic.Int64
	uploadedBytes atomic.Int64
	renders       atomic.Int64
	presents      atomic.Int64
	resetTime     atomic.Int64
}

// NewRenderStats creates a new RenderStats.
func NewRenderStats() *RenderStats {
	rs := &RenderStats{}
	rs.resetTime.Store(time.Now().UnixNano())
	return rs
}

// RecordUpload records an upload of n buffer bytes.
func (rs *RenderStats) RecordUpload(n int) {
	rs.uploads.Add(1)
	rs.uploadedBytes.Add(int64(n))
}

// RecordRender records a draw into the back frame.
func (rs *RenderStats) RecordRender() {
	rs.renders.Add(1)
}

// RecordPresent records a presented frame.
func (rs *RenderStats) RecordPresent() {
	rs.presents.Add(1)
}

// Stats returns the current counter values.
func (rs *RenderStats) Stats() (uploads, uploadedBytes, renders, presents int64) {
	return rs.uploads.Load(), rs.uploadedBytes.Load(), rs.renders.Load(), rs.presents.Load()
}

// Reset clears all counters.
func (rs *RenderStats) Reset() {
	rs.uploads.Store(0)
	rs.uploadedBytes.Store(0)
	rs.renders.Store(0)
	rs.presents.Store(0)
	rs.resetTime.Store(time.Now().UnixNano())
}

// TimeSinceReset returns the time elapsed since the last reset.
func (rs *RenderStats) TimeSinceReset() time.Duration {
	return time.Duration(time.Now().UnixNano() - rs.resetTime.Load())
}

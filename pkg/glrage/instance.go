package glrage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/opd-ai/go-glrage/internal/config"
	"github.com/opd-ai/go-glrage/internal/ddraw"
	"github.com/opd-ai/go-glrage/internal/display"
	"github.com/opd-ai/go-glrage/internal/quirks"
	"github.com/opd-ai/go-glrage/internal/render"
	"github.com/opd-ai/go-glrage/internal/screenshot"
)

var errNoDesktop = errors.New("glrage: no desktop in headless mode")

// Instance owns the renderer, the display context and the DirectDraw object
// a client draws through.
//
// DirectDraw and its surfaces must only be used from the goroutine running
// Run, which includes the client's Frame method. The other methods are safe
// for concurrent use.
type Instance struct {
	opts      Options
	source    string
	watchPath string
	loader    func() (*config.Config, error)

	backend backend
	display *display.Context
	dd      *ddraw.DirectDraw
	guard   *captureGuard
	metrics *Metrics
	logger  Logger

	mu           sync.RWMutex
	cfg          *config.Config
	writer       *screenshot.Writer
	errorHandler ErrorHandler
	eventHandler EventHandler
	startTime    time.Time
	cancel       context.CancelFunc

	pending   atomic.Pointer[config.Config]
	running   atomic.Bool
	frames    atomic.Uint64
	lastError atomic.Pointer[CategorizedError]
}

func newInstance(cfg *config.Config, opts Options, source, watchPath string, loader func() (*config.Config, error)) (*Instance, error) {
	i := &Instance{
		opts:      opts,
		source:    source,
		watchPath: watchPath,
		loader:    loader,
		cfg:       cfg,
		guard:     newCaptureGuard(0, 0),
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
	if i.metrics == nil {
		i.metrics = DefaultMetrics()
	}
	if i.logger == nil {
		i.logger = NopLogger()
	}
	ddraw.SetLogger(slogFor(i.logger))

	width, height := windowSize(cfg)
	if opts.Headless {
		i.backend = render.NewSoftwareRenderer(width, height)
	} else {
		b, err := newWindowBackend(width, height)
		if err != nil {
			return nil, err
		}
		i.backend = b
	}
	i.writer = newScreenshotWriter(cfg)

	displayOpts := []display.Option{
		display.WithWindow(i.backend),
		display.WithPresenter(i.backend),
		display.WithViewportSink(i.backend),
		display.WithCapturer(captureFunc(i.captureFrame)),
		display.WithGameID(cfg.Game.ID),
		display.WithErrorHandler(func(err error) {
			i.notifyError(NewCategorizedError(err, ErrorCategoryScreenshot, SeverityWarning))
		}),
	}
	if opts.Headless {
		displayOpts = append(displayOpts, display.WithDesktopSize(func() (int, int, error) {
			return 0, 0, errNoDesktop
		}))
	}
	i.display = display.New(cfg.Display.Width, cfg.Display.Height, displayOpts...)

	dd, err := ddraw.New(
		countingRenderer{next: i.backend, metrics: i.metrics},
		countingContext{Context: i.display, metrics: i.metrics},
		ddraw.WithPolicies(quirks.FromConfig(*cfg)),
	)
	if err != nil {
		return nil, err
	}
	if err := dd.SetDisplayMode(cfg.Display.Width, cfg.Display.Height, cfg.Display.BitDepth); err != nil {
		return nil, fmt.Errorf("display mode %dx%dx%d: %w",
			cfg.Display.Width, cfg.Display.Height, cfg.Display.BitDepth, err)
	}
	i.dd = dd

	i.logger.Debug("instance created",
		"source", source,
		"game_id", i.display.GameID(),
		"headless", opts.Headless,
		"window", fmt.Sprintf("%dx%d", width, height))
	return i, nil
}

// windowSize scales the display size by the configured window scale.
func windowSize(cfg *config.Config) (int, int) {
	scale := cfg.Window.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(float64(cfg.Display.Width) * scale))
	h := int(math.Round(float64(cfg.Display.Height) * scale))
	return max(w, 1), max(h, 1)
}

func newScreenshotWriter(cfg *config.Config) *screenshot.Writer {
	return screenshot.NewWriter(cfg.Screenshot.Dir, cfg.Screenshot.Format, cfg.Screenshot.Scale)
}

// DirectDraw returns the object clients create surfaces with.
func (i *Instance) DirectDraw() *ddraw.DirectDraw {
	return i.dd
}

// Context returns the display context surfaces present through.
func (i *Instance) Context() *display.Context {
	return i.display
}

// Config returns a copy of the active configuration.
func (i *Instance) Config() config.Config {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.cfg.Clone()
}

// Metrics returns the metrics collector for this instance.
func (i *Instance) Metrics() *Metrics {
	return i.metrics
}

// Run drives client until it quits, Stop is called, the window is closed
// or, in headless mode, Options.Frames frames have run. In windowed mode Run
// must be called from the main goroutine.
func (i *Instance) Run(client Client) error {
	if client == nil {
		return errors.New("glrage: client is required")
	}
	if !i.running.CompareAndSwap(false, true) {
		return errors.New("glrage: instance already running")
	}
	defer i.running.Store(false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	i.mu.Lock()
	i.cancel = cancel
	i.startTime = time.Now()
	i.mu.Unlock()

	i.frames.Store(0)
	i.metrics.SetRunning(true)
	defer i.metrics.SetRunning(false)

	if w := i.startWatcher(); w != nil {
		defer w.stop()
	}

	if init, ok := client.(Initializer); ok {
		if err := init.Init(i.dd); err != nil {
			return fmt.Errorf("client init: %w", err)
		}
	}

	i.emitEvent(EventStarted, "Run started")
	var err error
	if i.opts.Headless {
		err = i.runHeadless(ctx, client)
	} else {
		err = i.runWindowed(ctx, client)
	}

	snap := i.metrics.Snapshot()
	i.logger.Info("run finished",
		"frames", i.frames.Load(),
		"swaps", snap.Swaps,
		"uploaded", humanize.Bytes(uint64(max(snap.UploadedBytes, 0))),
		"live_surfaces", i.dd.LiveSurfaces())
	i.emitEvent(EventStopped, "Run stopped")
	return err
}

func (i *Instance) runHeadless(ctx context.Context, client Client) error {
	var tick <-chan time.Time
	if i.opts.FrameInterval > 0 {
		ticker := time.NewTicker(i.opts.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; i.opts.Frames <= 0 || n < i.opts.Frames; n++ {
		if n > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := i.frame(client); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

// frame applies a pending configuration and runs one client frame. It runs
// on the loop goroutine.
func (i *Instance) frame(client Client) error {
	if cfg := i.pending.Swap(nil); cfg != nil {
		i.applyConfig(cfg)
	}

	start := time.Now()
	err := client.Frame(i.dd)
	i.metrics.RecordFrame(time.Since(start))
	i.frames.Add(1)

	if err != nil && !errors.Is(err, ErrQuit) {
		err = fmt.Errorf("client frame: %w", err)
		i.notifyError(clientError(err))
	}
	return err
}

// Stop ends a running Run. It is a no-op otherwise.
func (i *Instance) Stop() {
	i.mu.RLock()
	cancel := i.cancel
	i.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// IsRunning reports whether Run is active.
func (i *Instance) IsRunning() bool {
	return i.running.Load()
}

// ReloadConfig parses the configuration source again. The new quirks,
// screenshot settings and game ID take effect before the next frame; the
// display mode stays under client control. The previous configuration
// remains active if parsing fails.
func (i *Instance) ReloadConfig() error {
	cfg, err := i.loader()
	if err != nil {
		wrapped := fmt.Errorf("config reload failed: %w", err)
		i.notifyError(NewCategorizedError(wrapped, ErrorCategoryConfig, SeverityWarning))
		return wrapped
	}
	if i.running.Load() {
		i.pending.Store(cfg)
		return nil
	}
	i.applyConfig(cfg)
	return nil
}

func (i *Instance) applyConfig(cfg *config.Config) {
	i.dd.SetPolicies(quirks.FromConfig(*cfg))
	if cfg.Game.ID != "" {
		i.display.SetGameID(cfg.Game.ID)
	}

	i.mu.Lock()
	i.cfg = cfg
	i.writer = newScreenshotWriter(cfg)
	i.mu.Unlock()
	i.guard.Reset()

	i.metrics.IncrementConfigReloads()
	i.logger.Info("configuration reloaded", "source", i.source, "game_id", i.display.GameID())
	i.emitEvent(EventConfigReloaded, "Configuration reloaded")
}

func (i *Instance) startWatcher() *configWatcher {
	if !i.opts.WatchConfig || i.watchPath == "" {
		return nil
	}
	w, err := startConfigWatcher(i.watchPath, i.opts.WatchDebounce,
		func() { i.ReloadConfig() },
		func(err error) {
			i.notifyError(NewCategorizedError(fmt.Errorf("config watch: %w", err), ErrorCategoryIO, SeverityWarning))
		})
	if err != nil {
		i.notifyError(NewCategorizedError(fmt.Errorf("config watch: %w", err), ErrorCategoryIO, SeverityWarning))
		return nil
	}
	i.logger.Debug("watching configuration", "path", i.watchPath)
	return w
}

// captureFrame saves the frame about to be presented. The display context
// calls it from SwapBuffers.
func (i *Instance) captureFrame() error {
	i.mu.RLock()
	w := i.writer
	i.mu.RUnlock()

	var path string
	err := i.guard.Do(func() error {
		var err error
		path, err = w.Capture(i.backend.CaptureBack())
		return err
	})
	if err != nil {
		return err
	}

	i.metrics.IncrementScreenshots()
	i.logger.Info("screenshot saved", "path", path)
	i.emitEvent(EventScreenshot, path)
	return nil
}

// Status returns detailed status information about the instance.
func (i *Instance) Status() Status {
	i.mu.RLock()
	startTime := i.startTime
	i.mu.RUnlock()

	var lastErr error
	if e := i.lastError.Load(); e != nil {
		lastErr = e
	}
	return Status{
		Running:      i.running.Load(),
		StartTime:    startTime,
		Frames:       i.frames.Load(),
		LastError:    lastErr,
		ConfigSource: i.source,
		GameID:       i.display.GameID(),
		Fullscreen:   i.display.Fullscreen(),
	}
}

// SetErrorHandler registers a callback for runtime errors. Errors passed
// to it are *CategorizedError values.
func (i *Instance) SetErrorHandler(handler ErrorHandler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (i *Instance) SetEventHandler(handler EventHandler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.eventHandler = handler
}

// notifyError stores an error, logs it and invokes the error handler.
func (i *Instance) notifyError(err *CategorizedError) {
	i.lastError.Store(err)
	i.metrics.IncrementErrors()

	if err.Severity >= SeverityError {
		i.logger.Error("runtime error", "category", err.Category, "error", err.Err)
	} else {
		i.logger.Warn("runtime error", "category", err.Category, "error", err.Err)
	}

	i.mu.RLock()
	handler := i.errorHandler
	i.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					i.logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	i.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (i *Instance) emitEvent(eventType EventType, message string) {
	i.mu.RLock()
	handler := i.eventHandler
	i.mu.RUnlock()

	if handler == nil {
		return
	}
	ev := Event{Type: eventType, Timestamp: time.Now(), Message: message}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				i.logger.Error("event handler panicked", "panic", r, "event", eventType)
			}
		}()
		handler(ev)
	}()
}

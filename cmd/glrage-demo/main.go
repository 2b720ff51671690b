// Package main provides glrage-demo, a legacy-style client that exercises
// the surface API: a plasma drawn into a flip chain with a blitted sprite,
// or, with -fmv, a stand-alone primary surface written like a video player
// would.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-glrage/internal/profiling"
	"github.com/opd-ai/go-glrage/pkg/glrage"
)

// Version is the current version of glrage-demo.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("c", "", "Path to configuration file (Lua or JSON)")
	version := flag.Bool("v", false, "Print version and exit")
	headless := flag.Bool("headless", false, "Render on the CPU without a window")
	frames := flag.Int("frames", 0, "Number of frames to run in headless mode (0 = until interrupted)")
	fmv := flag.Bool("fmv", false, "Draw through a stand-alone primary surface instead of a flip chain")
	debug := flag.Bool("debug", false, "Enable debug logging, including per-call surface traces")
	cpuProfile := flag.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := flag.String("memprofile", "", "Write memory profile to file")
	shot := flag.Bool("screenshot", false, "Save a screenshot of the first presented frame")
	flag.Parse()

	if *version {
		fmt.Printf("glrage-demo version %s\n", Version)
		return 0
	}

	profConfig := profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
	}
	if profConfig.Enabled() {
		session, err := profiling.Start(profConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	opts := glrage.Options{
		Headless:      *headless,
		Frames:        *frames,
		FrameInterval: time.Second / 60,
		WatchConfig:   *configPath != "",
		Logger:        glrage.DefaultLogger(),
	}
	if *debug {
		opts.Logger = glrage.DebugLogger()
	}

	inst, err := newInstance(*configPath, &opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating glrage instance: %v\n", err)
		return 1
	}
	inst.SetErrorHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	})
	inst.SetEventHandler(func(e glrage.Event) {
		fmt.Printf("[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Message)
	})
	if *shot {
		inst.Context().ScheduleScreenshot()
	}

	client := newClient(*fmv)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handleSignals(ctx, inst)
	})

	// The window has to be driven from the main goroutine.
	runErr := inst.Run(client)
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Signal handling error: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", runErr)
		return 1
	}
	return 0
}

type demoClient interface {
	glrage.Client
	glrage.Initializer
	Close()
}

func newClient(fmv bool) demoClient {
	if fmv {
		return newFMV()
	}
	return newPlasma()
}

func newInstance(configPath string, opts *glrage.Options) (*glrage.Instance, error) {
	if configPath == "" {
		return glrage.NewDefault(opts)
	}
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("accessing configuration file %s: %w", configPath, err)
	}
	return glrage.New(configPath, opts)
}

// handleSignals reloads the configuration on SIGHUP and stops the instance
// on SIGINT or SIGTERM. It returns when ctx is done.
func handleSignals(ctx context.Context, inst *glrage.Instance) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				fmt.Println("Received SIGHUP, reloading configuration...")
				if err := inst.ReloadConfig(); err != nil {
					fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				}
				continue
			}
			fmt.Println("Shutting down...")
			inst.Stop()
		}
	}
}

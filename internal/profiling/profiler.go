// Package profiling writes CPU and heap profiles of a glrage session.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Config names the profile outputs. Empty paths disable the profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// ErrActive is returned by Start while an earlier session is still running.
var ErrActive = errors.New("profiling: session already active")

var (
	activeMu sync.Mutex
	active   bool
)

// Session is a running profile. The CPU profile covers the time between
// Start and Stop; the heap profile is taken by Stop.
type Session struct {
	cfg     Config
	cpuFile *os.File
	once    sync.Once
	err     error
}

// Start begins a profiling session. The runtime allows a single CPU profile
// per process, so only one session may be active at a time.
func Start(cfg Config) (*Session, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active {
		return nil, ErrActive
	}

	s := &Session{cfg: cfg}
	if cfg.CPUProfilePath != "" {
		f, err := os.Create(cfg.CPUProfilePath)
		if err != nil {
			return nil, fmt.Errorf("profiling: create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("profiling: start cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	active = true
	return s, nil
}

// Stop ends the session and writes the heap profile. Later calls return the
// result of the first.
func (s *Session) Stop() error {
	s.once.Do(func() {
		var errs []error
		if s.cpuFile != nil {
			pprof.StopCPUProfile()
			if err := s.cpuFile.Close(); err != nil {
				errs = append(errs, fmt.Errorf("profiling: close cpu profile: %w", err))
			}
		}
		if s.cfg.MemProfilePath != "" {
			if err := WriteHeapProfile(s.cfg.MemProfilePath); err != nil {
				errs = append(errs, err)
			}
		}
		s.err = errors.Join(errs...)

		activeMu.Lock()
		active = false
		activeMu.Unlock()
	})
	return s.err
}

// WriteHeapProfile runs a collection and writes the heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("profiling: create heap profile: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("profiling: write heap profile: %w", err)
	}
	return nil
}

package glrage

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConfigWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glrage.lua")
	writeFile(t, path, "initial")

	var changes atomic.Int32
	w, err := startConfigWatcher(path, 50*time.Millisecond, func() { changes.Add(1) }, nil)
	if err != nil {
		t.Fatalf("startConfigWatcher() error = %v", err)
	}
	defer w.stop()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "modified")
	time.Sleep(300 * time.Millisecond)

	if n := changes.Load(); n != 1 {
		t.Errorf("changes = %d, want 1", n)
	}
}

func TestConfigWatcherDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glrage.lua")
	writeFile(t, path, "initial")

	var changes atomic.Int32
	w, err := startConfigWatcher(path, 150*time.Millisecond, func() { changes.Add(1) }, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.stop()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		writeFile(t, path, "edit")
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if n := changes.Load(); n != 1 {
		t.Errorf("changes = %d, want 1 after a burst", n)
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glrage.lua")
	writeFile(t, path, "initial")

	var changes atomic.Int32
	w, err := startConfigWatcher(path, 50*time.Millisecond, func() { changes.Add(1) }, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.stop()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.lua"), "noise")
	time.Sleep(200 * time.Millisecond)

	if n := changes.Load(); n != 0 {
		t.Errorf("changes = %d, want 0", n)
	}
}

func TestConfigWatcherStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glrage.lua")
	writeFile(t, path, "initial")

	w, err := startConfigWatcher(path, 0, func() {}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v, want default", w.debounce)
	}
	w.stop()
	w.stop()
}

func TestConfigWatcherErrors(t *testing.T) {
	if _, err := startConfigWatcher(filepath.Join(t.TempDir(), "missing", "x.lua"), 0, func() {}, nil); err == nil {
		t.Error("watching a missing directory succeeded")
	}
	if _, err := startConfigWatcher("x.lua", 0, nil, nil); err == nil {
		t.Error("nil callback accepted")
	}
}

func TestWatchConfigReloadsRunningInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glrage.json")
	writeFile(t, path, `{"game": {"id": "before"}}`)

	metrics := NewMetrics()
	inst, err := New(path, &Options{
		Headless:      true,
		FrameInterval: 5 * time.Millisecond,
		WatchConfig:   true,
		WatchDebounce: 20 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	var wrote atomic.Bool
	go func() {
		done <- inst.Run(ClientFunc(func(*ddraw.DirectDraw) error {
			if inst.Context().GameID() == "after" {
				return ErrQuit
			}
			if !wrote.Load() && inst.Status().Frames > 5 {
				wrote.Store(true)
				return os.WriteFile(path, []byte(`{"game": {"id": "after"}}`), 0o644)
			}
			return nil
		}))
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		inst.Stop()
		t.Fatal("reload never reached the running instance")
	}
	if metrics.Snapshot().ConfigReloads < 1 {
		t.Error("no reload recorded")
	}
}

package glrage

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	tests := []struct {
		name string
		log  func(string, ...any)
		msg  string
	}{
		{"debug", adapter.Debug, "debug message"},
		{"info", adapter.Info, "info message"},
		{"warn", adapter.Warn, "warn message"},
		{"error", adapter.Error, "error message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log(tt.msg, "key", "value")
			if !strings.Contains(buf.String(), tt.msg) || !strings.Contains(buf.String(), "key=value") {
				t.Errorf("logged %q", buf.String())
			}
		})
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	if a := NewSlogAdapter(nil); a.Slog() != slog.Default() {
		t.Error("NewSlogAdapter(nil) should wrap slog.Default()")
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := JSONLogger(&buf, slog.LevelWarn)
	l.Info("dropped")
	l.Warn("kept", "n", 1)
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("output = %q", out)
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

// recordingLogger is a Logger that is not backed by slog.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) add(level, msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprint(append([]any{level, msg}, args...)...))
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.add("DEBUG", msg, args...) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.add("INFO", msg, args...) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.add("WARN", msg, args...) }
func (r *recordingLogger) Error(msg string, args ...any) { r.add("ERROR", msg, args...) }

func TestSlogForBridgesCustomLogger(t *testing.T) {
	rec := &recordingLogger{}
	l := slogFor(rec)
	if l == nil {
		t.Fatal("slogFor returned nil for a custom logger")
	}

	l.With("surface", "primary").WithGroup("mode").Warn("limit", "bpp", 16)
	l.Debug("trace")

	if len(rec.lines) != 2 {
		t.Fatalf("lines = %q", rec.lines)
	}
	if got := rec.lines[0]; !strings.Contains(got, "WARN") || !strings.Contains(got, "surface") ||
		!strings.Contains(got, "mode.bpp") {
		t.Errorf("warn line = %q", got)
	}
	if !strings.HasPrefix(rec.lines[1], "DEBUG") {
		t.Errorf("debug line = %q", rec.lines[1])
	}
}

func TestSlogFor(t *testing.T) {
	if slogFor(nil) != nil || slogFor(NopLogger()) != nil {
		t.Error("discarding loggers should map to nil")
	}
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if slogFor(NewSlogAdapter(base)) != base {
		t.Error("SlogAdapter should hand out its own logger")
	}
}

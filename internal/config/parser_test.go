package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"lua config", "glrage.config = { width = 320 }", FormatLua},
		{"lua games only", "-- quirks\nglrage.games = {}", FormatLua},
		{"lua indented", "  glrage.config={}", FormatLua},
		{"commented lua", "-- glrage.config = {}", ""},
		{"json", `{"display": {"width": 320}}`, FormatJSON},
		{"json leading space", "\n  {}", FormatJSON},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat([]byte(tt.content)); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParserParse(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.Parse([]byte(`glrage.config = { width = 320, height = 200 }`))
	if err != nil {
		t.Fatalf("Parse(lua) failed: %v", err)
	}
	if cfg.Display.Width != 320 || cfg.Display.Height != 200 {
		t.Errorf("lua display = %+v", cfg.Display)
	}

	cfg, err = p.Parse([]byte(`{"display": {"width": 800, "height": 600, "bit_depth": 32}}`))
	if err != nil {
		t.Fatalf("Parse(json) failed: %v", err)
	}
	if cfg.Display.Width != 800 || cfg.Display.BitDepth != 32 {
		t.Errorf("json display = %+v", cfg.Display)
	}

	if _, err := p.Parse([]byte("width 640")); err == nil {
		t.Error("Parse accepted an unrecognized format")
	}
}

func TestParserParseFile(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	path := filepath.Join(t.TempDir(), "glrage.lua")
	content := "glrage.config = { title = \"Tomb Raider\", fullscreen = true }\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if cfg.Window.Title != "Tomb Raider" || !cfg.Window.Fullscreen {
		t.Errorf("window = %+v", cfg.Window)
	}

	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("ParseFile of a missing file succeeded")
	}
}

func TestParserParseFromFS(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	fsys := fstest.MapFS{
		"configs/glrage.json": {Data: []byte(`{"game": {"id": "tomb"}}`)},
	}
	cfg, err := p.ParseFromFS(fsys, "configs/glrage.json")
	if err != nil {
		t.Fatalf("ParseFromFS failed: %v", err)
	}
	if cfg.Game.ID != "tomb" {
		t.Errorf("game id = %q", cfg.Game.ID)
	}
}

func TestParserParseReader(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.ParseReader(strings.NewReader(`{"window": {"scale": 2}}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseReader(json) failed: %v", err)
	}
	if cfg.Window.Scale != 2 {
		t.Errorf("scale = %g", cfg.Window.Scale)
	}

	if _, err := p.ParseReader(strings.NewReader("{}"), "yaml"); err == nil {
		t.Error("ParseReader accepted an unknown format")
	}
}

package config

import (
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Errorf("default config invalid: %v", result.Error())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("default config warnings: %v", result.Warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }, "display.width"},
		{"negative height", func(c *Config) { c.Display.Height = -1 }, "display.height"},
		{"bad depth", func(c *Config) { c.Display.BitDepth = 15 }, "display.bit_depth"},
		{"window scale", func(c *Config) { c.Window.Scale = 0 }, "window.scale"},
		{"format", func(c *Config) { c.Screenshot.Format = "gif" }, "screenshot.format"},
		{"shot scale", func(c *Config) { c.Screenshot.Scale = -2 }, "screenshot.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			result := NewValidator().Validate(&cfg)
			if result.IsValid() {
				t.Fatal("expected validation error")
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", result.Errors[0].Field, tt.field)
			}
			if !strings.Contains(result.Error().Error(), tt.field) {
				t.Errorf("combined error %q does not name %s", result.Error(), tt.field)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Width = 8000
	cfg.Window.Title = ""
	cfg.Screenshot.Format = "PNG"
	cfg.Quirks[" "] = QuirkConfig{LineDoubling: true}

	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Fatalf("warnings reported as errors: %v", result.Error())
	}
	if len(result.Warnings) != 3 {
		t.Errorf("warnings = %v, want 3", result.Warnings)
	}

	strict := NewValidator().WithStrictMode(true).Validate(&cfg)
	if strict.IsValid() || len(strict.Errors) != 3 {
		t.Errorf("strict errors = %v", strict.Errors)
	}
}

func TestValidateHelper(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	cfg.Display.BitDepth = 0
	if err := Validate(&cfg); err == nil {
		t.Error("Validate() accepted bit depth 0")
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Clone()
	c.Quirks["quake"] = QuirkConfig{}
	if _, ok := cfg.Quirks["quake"]; ok {
		t.Error("Clone shares the quirk map")
	}
}

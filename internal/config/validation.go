package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Validator checks a Config for values the host cannot honor.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateDisplay(&cfg.Display, result)
	v.validateWindow(&cfg.Window, result)
	v.validateScreenshot(&cfg.Screenshot, result)
	v.validateQuirks(cfg.Quirks, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

// maxDimension bounds display sizes considered plausible for legacy titles.
const maxDimension = 4096

func (v *Validator) validateDisplay(dc *DisplayConfig, result *ValidationResult) {
	if dc.Width <= 0 {
		result.AddError("display.width", fmt.Sprintf("must be positive, got %d", dc.Width))
	}
	if dc.Height <= 0 {
		result.AddError("display.height", fmt.Sprintf("must be positive, got %d", dc.Height))
	}
	if dc.Width > maxDimension {
		result.AddWarning("display.width", fmt.Sprintf("unusually large value %d", dc.Width))
	}
	if dc.Height > maxDimension {
		result.AddWarning("display.height", fmt.Sprintf("unusually large value %d", dc.Height))
	}

	switch dc.BitDepth {
	case 8, 16, 24, 32:
	default:
		result.AddError("display.bit_depth", fmt.Sprintf("must be 8, 16, 24 or 32, got %d", dc.BitDepth))
	}
}

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Scale <= 0 {
		result.AddError("window.scale", fmt.Sprintf("must be positive, got %g", wc.Scale))
	}
	if wc.Title == "" {
		result.AddWarning("window.title", "empty title")
	}
}

// ScreenshotFormats lists the accepted screenshot formats.
var ScreenshotFormats = []string{"png", "webp", "tga", "bmp"}

func (v *Validator) validateScreenshot(sc *ScreenshotConfig, result *ValidationResult) {
	known := false
	for _, f := range ScreenshotFormats {
		if strings.EqualFold(sc.Format, f) {
			known = true
			break
		}
	}
	if !known {
		result.AddError("screenshot.format",
			fmt.Sprintf("unknown format %q (expected %s)", sc.Format, strings.Join(ScreenshotFormats, ", ")))
	}
	if sc.Scale <= 0 {
		result.AddError("screenshot.scale", fmt.Sprintf("must be positive, got %g", sc.Scale))
	}
	if sc.Dir == "" {
		result.AddWarning("screenshot.dir", "empty directory, using the working directory")
	}
}

func (v *Validator) validateQuirks(quirks map[string]QuirkConfig, result *ValidationResult) {
	for key := range quirks {
		if strings.TrimSpace(key) == "" {
			result.AddWarning("quirks", "empty game key never matches")
		}
	}
}

// Validate validates cfg with a default Validator and returns the combined
// error, or nil.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg).Error()
}

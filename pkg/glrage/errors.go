package glrage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// ErrorCategory tells where a reported error came from.
type ErrorCategory int

const (
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig covers parsing, validation and reload failures.
	ErrorCategoryConfig
	// ErrorCategorySurface covers result codes returned by the surface API.
	ErrorCategorySurface
	ErrorCategoryRender
	ErrorCategoryScreenshot
	// ErrorCategoryIO covers the config watcher.
	ErrorCategoryIO
)

var categoryNames = map[ErrorCategory]string{
	ErrorCategoryConfig:     "config",
	ErrorCategorySurface:    "surface",
	ErrorCategoryRender:     "render",
	ErrorCategoryScreenshot: "screenshot",
	ErrorCategoryIO:         "io",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ErrorSeverity says whether the instance kept running after an error.
type ErrorSeverity int

const (
	// SeverityWarning is for failures the instance keeps running through.
	SeverityWarning ErrorSeverity = iota
	// SeverityError is for failures that end Run.
	SeverityError
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// CategorizedError is what the error handler and Status receive.
type CategorizedError struct {
	Err       error
	Category  ErrorCategory
	Severity  ErrorSeverity
	Timestamp time.Time
	// Context holds extra key-value details, such as the result code of a
	// surface error.
	Context map[string]string
}

func (e *CategorizedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%s] ", e.Severity, e.Category)
	if e.Err == nil {
		b.WriteString("(no error)")
	} else {
		b.WriteString(e.Err.Error())
	}
	if code, ok := e.Context["code"]; ok {
		fmt.Fprintf(&b, " (%s)", code)
	}
	return b.String()
}

func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError stamps err with the current time.
func NewCategorizedError(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Severity:  severity,
		Timestamp: time.Now(),
	}
}

// WithContext sets key to value and returns e.
func (e *CategorizedError) WithContext(key, value string) *CategorizedError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// clientError classifies an error returned by a client frame. Result codes
// of the surface API are recorded in hex under "code".
func clientError(err error) *CategorizedError {
	var de ddraw.Error
	if errors.As(err, &de) {
		return NewCategorizedError(err, ErrorCategorySurface, SeverityError).
			WithContext("code", fmt.Sprintf("0x%08X", de.Code()))
	}
	return NewCategorizedError(err, ErrorCategoryUnknown, SeverityError)
}

package ddraw

import (
	"errors"
	"fmt"
)

// Error is a surface API result code. The numeric value is the HRESULT the
// legacy API reports for the same condition.
type Error uint32

// Result codes returned by surface operations.
const (
	// ErrAlreadyInitialized is returned by Initialize; surfaces are fully
	// initialized at construction.
	ErrAlreadyInitialized Error = 0x88760005
	// ErrCannotAttachSurface is returned when an attached surface is neither
	// a back buffer nor a depth buffer.
	ErrCannotAttachSurface Error = 0x8876000A
	// ErrInvalidObject is returned for nil or already destroyed surfaces.
	ErrInvalidObject Error = 0x88760082
	// ErrLockedSurfaces is returned when a blit or flip touches a locked surface.
	ErrLockedSurfaces Error = 0x887600A0
	// ErrSurfaceBusy is returned when locking an already locked surface.
	ErrSurfaceBusy Error = 0x887601AE
	// ErrNotFlippable is returned by Flip on surfaces without a flip chain.
	ErrNotFlippable Error = 0x88760246
	// ErrNotLocked is returned when unlocking a surface that is not locked.
	ErrNotLocked Error = 0x88760248
	// ErrSurfaceNotAttached is returned when no surface fills the queried role.
	ErrSurfaceNotAttached Error = 0x88760262
	// ErrUnsupported is returned by legacy features that are not emulated.
	ErrUnsupported Error = 0x80004001
	// ErrInvalidParams is returned for malformed arguments.
	ErrInvalidParams Error = 0x80070057
)

// codeOK is the HRESULT for success.
const codeOK = 0

// codeFail is the generic E_FAIL HRESULT used for foreign errors.
const codeFail = 0x80004005

var errorNames = map[Error]string{
	ErrAlreadyInitialized:  "already initialized",
	ErrCannotAttachSurface: "cannot attach surface",
	ErrInvalidObject:       "invalid object",
	ErrLockedSurfaces:      "locked surfaces",
	ErrSurfaceBusy:         "surface busy",
	ErrNotFlippable:        "not flippable",
	ErrNotLocked:           "not locked",
	ErrSurfaceNotAttached:  "surface not attached",
	ErrUnsupported:         "unsupported",
	ErrInvalidParams:       "invalid params",
}

// Error implements the error interface.
func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return "ddraw: " + name
	}
	return fmt.Sprintf("ddraw: result 0x%08X", uint32(e))
}

// Code returns the HRESULT value of the result code.
func (e Error) Code() uint32 {
	return uint32(e)
}

// Code maps an error returned by this package to an HRESULT.
// nil maps to DD_OK and errors that are not an [Error] map to E_FAIL.
func Code(err error) uint32 {
	if err == nil {
		return codeOK
	}
	var e Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return codeFail
}

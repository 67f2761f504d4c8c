// Package errors provides structured error types for the milabel application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, correctable by the caller
//   - ENCODE_*: Barcode encoding failures, fatal for the affected render
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidIdentifier, "NSN %q is not 13 characters", nsn)
//	if errors.Is(err, errors.ErrCodeInvalidIdentifier) {
//	    // Handle validation error
//	}
//
// Non-fatal compliance findings are represented by [Warning] values, which are
// collected on a label record and surfaced to the caller without aborting the
// render.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors (caller-correctable, raised before rendering)
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	ErrCodeInvalidLot        Code = "INVALID_LOT"
	ErrCodeInvalidDate       Code = "INVALID_DATE"
	ErrCodeInvalidSize       Code = "INVALID_SIZE"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidInput      Code = "INVALID_INPUT"

	// Barcode encoding errors (fatal for the affected render)
	ErrCodeEncodeFailed       Code = "ENCODE_FAILED"
	ErrCodeEmptyPayloadGroups Code = "EMPTY_PAYLOAD_GROUPS"

	// Resource not found errors
	ErrCodeProductNotFound Code = "PRODUCT_NOT_FOUND"
	ErrCodeFontNotFound    Code = "FONT_NOT_FOUND"

	// Storage errors
	ErrCodeCatalogIO Code = "CATALOG_IO"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries one of the caller-correctable
// validation codes. Validation errors are raised before any rendering
// begins; no partial output exists when one is returned.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidIdentifier, ErrCodeInvalidLot, ErrCodeInvalidDate,
		ErrCodeInvalidSize, ErrCodeInvalidConfig, ErrCodeInvalidInput:
		return true
	}
	return false
}

// WarningCode identifies a non-fatal compliance finding.
type WarningCode string

// Warning codes.
const (
	// WarnOverrideWithoutReport flags a manual re-qualification date
	// override supplied without an accompanying test report reference.
	WarnOverrideWithoutReport WarningCode = "OVERRIDE_WITHOUT_TEST_REPORT"
)

// Warning is a non-fatal compliance finding surfaced alongside a successful
// result. Warnings never block output.
type Warning struct {
	Code    WarningCode
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// NewWarning creates a Warning with a formatted message.
func NewWarning(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

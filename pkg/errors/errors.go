// Package errors provides structured error types for the pagebind application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: configuration and settings validation failures
//   - SOURCE_*: input image and file problems
//   - MARGINS_EXCEED_PAGE: layout failures (content box collapsed)
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRotation, "rotation must be a multiple of 90: %d", deg)
//	if errors.Is(err, errors.ErrCodeInvalidRotation) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceDecode, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors: malformed or out-of-range settings. These
	// abort before any layout work is attempted for the image.
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPageSize  Code = "INVALID_PAGE_SIZE"
	ErrCodeInvalidMargins   Code = "INVALID_MARGINS"
	ErrCodeInvalidRotation  Code = "INVALID_ROTATION"
	ErrCodeInvalidScaling   Code = "INVALID_SCALING"
	ErrCodeInvalidAlignment Code = "INVALID_ALIGNMENT"
	ErrCodeInvalidDPI       Code = "INVALID_DPI"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Layout errors: the placement computation itself failed. Fatal for
	// the whole run; a partially written document is not a meaningful
	// artifact.
	ErrCodeMarginsExceedPage Code = "MARGINS_EXCEED_PAGE"

	// Source errors: missing or unreadable inputs.
	ErrCodeSourceNotFound Code = "SOURCE_NOT_FOUND"
	ErrCodeSourceEmpty    Code = "SOURCE_EMPTY"
	ErrCodeSourceDecode   Code = "SOURCE_DECODE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsConfig reports whether err carries any configuration-class code.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPageSize, ErrCodeInvalidMargins,
		ErrCodeInvalidRotation, ErrCodeInvalidScaling, ErrCodeInvalidAlignment,
		ErrCodeInvalidDPI, ErrCodeInvalidFormat:
		return true
	}
	return false
}

// IsSource reports whether err carries any source-class code.
func IsSource(err error) bool {
	switch GetCode(err) {
	case ErrCodeSourceNotFound, ErrCodeSourceEmpty, ErrCodeSourceDecode:
		return true
	}
	return false
}

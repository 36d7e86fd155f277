// Package errors provides structured error types for eggplot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the library and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (style directives, data, config)
//   - NOT_FOUND: Missing resources such as terminals or files
//   - EXEC_FAILED: The gnuplot subprocess could not run
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMarker, "Marker must be one of o+*.xsd^v><ph or none")
//	if errors.Is(err, errors.ErrCodeInvalidMarker) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExec, origErr, "gnuplot %s", script)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Style input errors, raised when a directive is recorded
	ErrCodeInvalidIndex    Code = "INVALID_INDEX"
	ErrCodeInvalidProperty Code = "INVALID_PROPERTY"
	ErrCodeInvalidValue    Code = "INVALID_VALUE"

	// Style render errors, raised when a record is rendered for a terminal
	ErrCodeInvalidLineStyle Code = "INVALID_LINE_STYLE"
	ErrCodeInvalidMarker    Code = "INVALID_MARKER"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"

	// Other input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidData     Code = "INVALID_DATA"
	ErrCodeInvalidTarget   Code = "INVALID_TARGET"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidTerminal Code = "INVALID_TERMINAL"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Subprocess errors
	ErrCodeExec Code = "EXEC_FAILED"

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

// IsValidation reports whether err carries one of the INVALID_* codes.
// The HTTP API maps these to 400 responses.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidIndex, ErrCodeInvalidProperty, ErrCodeInvalidValue,
		ErrCodeInvalidLineStyle, ErrCodeInvalidMarker, ErrCodeInvalidColor,
		ErrCodeInvalidInput, ErrCodeInvalidData, ErrCodeInvalidTarget,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeInvalidTerminal:
		return true
	}
	return false
}

// Package errors provides structured error types for swipecard.
//
// Every failure a card can hit during a batch run carries a machine-readable
// code so the batch driver can count and report it without string matching:
//   - ASSET_LOAD: template or illustration missing or undecodable
//   - LOOKUP: identifier absent from the tabular source
//   - LAYOUT_OVERFLOW: content cannot fit the canvas after all shrink steps
//   - FONT_RESOLUTION: a font candidate was skipped (warning, never fatal)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLookup, "identifier %s not found", id)
//	if errors.Is(err, errors.ErrCodeLookup) {
//	    // skip the card
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAssetLoad, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Per-card failures
	ErrCodeAssetLoad      Code = "ASSET_LOAD"
	ErrCodeLookup         Code = "LOOKUP"
	ErrCodeLayoutOverflow Code = "LAYOUT_OVERFLOW"

	// Non-fatal warnings
	ErrCodeFontResolution Code = "FONT_RESOLUTION"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
	var o *OverflowError
	if errors.As(err, &o) {
		return code == ErrCodeLayoutOverflow
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
	var o *OverflowError
	if errors.As(err, &o) {
		return o.Code()
	}
	return ""
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// OverflowError reports a layout that could not be made to fit.
// Needed and Available are pixel counts at the point of failure: widths for
// the "title" stage, heights otherwise.
type OverflowError struct {
	Stage     string // "title", "correction" or "placement"
	Needed    int
	Available int
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: %s needs %dpx but only %dpx remain", ErrCodeLayoutOverflow, e.Stage, e.Needed, e.Available)
}

// Code returns the error code for this error type.
func (e *OverflowError) Code() Code {
	return ErrCodeLayoutOverflow
}

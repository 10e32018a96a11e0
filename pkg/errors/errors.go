// Package errors provides structured error types for the voltpath application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Engine codes map one-to-one onto the calculation failure taxonomy: every
// failure the Calculator can produce is a design-time modeling error the user
// must fix in the source network, so none of them are retryable.
//
//   - MISSING_SUPPLY: the network contains no supply blocks
//   - MISSING_EQUIPMENT: a block that needs catalog equipment has none
//   - TOPOLOGY_VIOLATION: branches reconnect or supplies share blocks
//   - VOLTAGE_MISMATCH: a transformer is fed with neither rated voltage
//   - CATALOG_EXHAUSTED: no catalog conductor fits the drop limit
//
// INVALID_* and NOT_FOUND_* codes cover input validation on the outer
// CLI/API surfaces.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingEquipment, "conductor %q (id %d) has no cable assigned", name, id)
//	if errors.Is(err, errors.ErrCodeMissingEquipment) {
//	    // Handle the modeling error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidNetwork, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Calculation engine errors
	ErrCodeMissingSupply     Code = "MISSING_SUPPLY"
	ErrCodeMissingEquipment  Code = "MISSING_EQUIPMENT"
	ErrCodeTopologyViolation Code = "TOPOLOGY_VIOLATION"
	ErrCodeVoltageMismatch   Code = "VOLTAGE_MISMATCH"
	ErrCodeCatalogExhausted  Code = "CATALOG_EXHAUSTED"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidNetwork Code = "INVALID_NETWORK"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidName    Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeNetworkNotFound Code = "NETWORK_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

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

// IsModelingError reports whether err is one of the calculation engine
// failures the user must fix in the source network. Modeling errors are
// never retryable and always abort the whole calculation.
func IsModelingError(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingSupply, ErrCodeMissingEquipment, ErrCodeTopologyViolation,
		ErrCodeVoltageMismatch, ErrCodeCatalogExhausted:
		return true
	}
	return false
}

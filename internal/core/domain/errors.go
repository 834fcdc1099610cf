// Package domain defines the core domain models for QuestKeep.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes follow the QK-<AREA>-<NNNN> format.
type DomainError struct {
	Code    string // Error code (e.g., "QK-SETT-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Settings Errors (SETT)
// ============================================================================

var (
	// ErrSettingInvalid indicates a setting value outside its recognized options.
	ErrSettingInvalid = NewDomainError("QK-SETT-4000", "invalid setting value")

	// ErrSettingUnknown indicates the setting name is not recognized.
	ErrSettingUnknown = NewDomainError("QK-SETT-4040", "unknown setting")
)

// ============================================================================
// Progress Errors (PROG)
// ============================================================================

var (
	// ErrProgressInvalid indicates a progress value that cannot be stored.
	ErrProgressInvalid = NewDomainError("QK-PROG-4000", "invalid progress value")
)

// ============================================================================
// Snapshot Errors (SNAP)
// ============================================================================

var (
	// ErrSnapshotInvalid indicates an imported snapshot could not be decoded.
	ErrSnapshotInvalid = NewDomainError("QK-SNAP-4000", "invalid snapshot")
)

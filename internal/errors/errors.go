package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuthenticationFailed indicates invalid credentials at login.
	ErrCodeAuthenticationFailed ErrorCode = "authentication_failed"
	// ErrCodeSessionExpired indicates an expired or malformed session,
	// detected at restore time or reactively from a 401 response.
	ErrCodeSessionExpired ErrorCode = "session_expired"
	// ErrCodeAuthorizationDenied indicates a role requirement was not met.
	ErrCodeAuthorizationDenied ErrorCode = "authorization_denied"
	// ErrCodeValidation indicates the backend returned structured
	// field-level validation feedback.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeBackend indicates a failed backend call (network error or
	// non-2xx response without a more specific mapping).
	ErrCodeBackend ErrorCode = "backend"
	// ErrCodeInternal indicates an internal error in this service.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, a user-facing
// message, optional field-level detail, and an optional cause. It supports
// errors.Is and errors.As through Unwrap.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Fields carries backend validation feedback keyed by form field.
	Fields map[string]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// AuthenticationFailed creates an authentication failure error.
func AuthenticationFailed(message string) *AppError {
	return &AppError{Code: ErrCodeAuthenticationFailed, Message: message}
}

// SessionExpired creates a session expiry error.
func SessionExpired(message string) *AppError {
	return &AppError{Code: ErrCodeSessionExpired, Message: message}
}

// AuthorizationDenied creates an authorization denial error.
func AuthorizationDenied(message string) *AppError {
	return &AppError{Code: ErrCodeAuthorizationDenied, Message: message}
}

// Validation creates a validation error with per-field messages.
func Validation(message string, fields map[string]string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// NotFound creates a not-found error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Backend creates a backend-call error.
func Backend(message string) *AppError {
	return &AppError{Code: ErrCodeBackend, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error carries a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuthenticationFailed checks for an authentication failure.
func IsAuthenticationFailed(err error) bool {
	return isCode(err, ErrCodeAuthenticationFailed)
}

// IsSessionExpired checks for a session expiry error.
func IsSessionExpired(err error) bool {
	return isCode(err, ErrCodeSessionExpired)
}

// IsValidation checks for a validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsNotFound checks for a not-found error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// ValidationFields extracts field-level messages from a validation error,
// or nil when err is not one.
func ValidationFields(err error) map[string]string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeValidation {
		return appErr.Fields
	}
	return nil
}

// UserMessage returns the message suitable for display. Non-AppError values
// collapse to a generic message so transport details never reach the page.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType classifies errors surfaced to the admin user
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeMissingAuth   ErrorType = "missing_auth"
	ErrorTypeAuthorization ErrorType = "authorization"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeTransport     ErrorType = "transport"
	ErrorTypeBackend       ErrorType = "backend"
	ErrorTypeInternal      ErrorType = "internal"
)

// MissingTokenMessage is shown whenever an action runs without a session token
const MissingTokenMessage = "Authentication token not found. Please login first."

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code"`
	Internal   error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewMissingAuthError is returned when no session token is present
func NewMissingAuthError() *AppError {
	return &AppError{
		Type:       ErrorTypeMissingAuth,
		Message:    MissingTokenMessage,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthenticationError reports a token that is present but unusable
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingAuth,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthorization,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewTransportError wraps a failed round trip to the admin backend.
// The message is the generic "failed to X" text shown to the user.
func NewTransportError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeTransport,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewBackendError reports a failure the backend declared itself, either through
// a non-2xx status or success:false. status is the backend's HTTP status.
func NewBackendError(message string, status int) *AppError {
	code := http.StatusBadGateway
	if status >= 400 && status < 500 {
		code = status
	}
	return &AppError{
		Type:       ErrorTypeBackend,
		Message:    message,
		StatusCode: code,
		Details:    map[string]interface{}{"backend_status": status},
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// As extracts an *AppError from err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// MessageOf returns the user-visible message for err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	if appErr, ok := As(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// ErrorResponse represents the JSON error response
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Type      ErrorType              `json:"type"`
		Message   string                 `json:"message"`
		Details   map[string]interface{} `json:"details,omitempty"`
		RequestID string                 `json:"request_id,omitempty"`
		Timestamp string                 `json:"timestamp"`
	} `json:"error"`
}

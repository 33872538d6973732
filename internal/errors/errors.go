package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNetwork    = "NETWORK_ERROR"
	ErrCodeParse      = "PARSE_ERROR"
	ErrCodeConfig     = "CONFIG_ERROR"
	ErrCodeEngine     = "ENGINE_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "NETWORK_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code used by the serve command
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNetworkError wraps a transport failure or a non-2xx response from a remote API.
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// NewParseError reports malformed input such as a game entry or a PGN text.
func NewParseError(what string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("cannot parse %s", what),
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

// NewConfigError reports a missing or invalid configuration value.
func NewConfigError(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeConfig,
		Message: fmt.Sprintf("invalid configuration %s", key),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewEngineError reports a failure talking to the UCI engine process.
func NewEngineError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeEngine,
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// As unwraps err into an *AppError when one is present in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an *AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

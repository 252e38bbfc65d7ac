package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an AppError for logging and response mapping
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindNotFound   ErrorKind = "not_found"
	KindSignature  ErrorKind = "signature"
	KindUpstream   ErrorKind = "upstream"
	KindStorage    ErrorKind = "storage"
)

// AppError represents an application error
type AppError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, kind ErrorKind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationFailed creates a 400 error for bad or missing input
func ValidationFailed(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, KindValidation, message, err)
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, KindAuth, message, err)
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message, err)
}

// SignatureError creates a 400 error for a payment signature mismatch
func SignatureError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, KindSignature, message, err)
}

// UpstreamError creates a 500 error for a failed payment gateway call
func UpstreamError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, KindUpstream, message, err)
}

// StorageError creates a 500 error for a failed persistence call
func StorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, KindStorage, message, err)
}

// GetAppError returns the AppError in err's chain, if any
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err carries an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

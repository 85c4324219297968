package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// Storefront domain errors. These are the recoverable validation failures the
// services report back to the caller with state left unchanged.
var (
	ErrCategoryInUse = &AppError{Code: http.StatusConflict, Message: "Cannot delete category with items"}
	ErrEmptyCart     = &AppError{Code: http.StatusBadRequest, Message: "Cart is empty"}
	ErrNoPaymentMode = &AppError{Code: http.StatusBadRequest, Message: "Please select a payment mode"}
	ErrWeakPin       = &AppError{Code: http.StatusUnprocessableEntity, Message: "PIN must be at least 4 characters"}
	ErrPinMismatch   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid PIN"}
)

// ErrPersistence is the sentinel for storage read/write failures. Concrete
// failures are created with NewPersistenceError and match it via errors.Is.
var ErrPersistence = &AppError{Code: http.StatusInternalServerError, Message: "Storage operation failed"}

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
		cause:   ErrNotFound,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewPersistenceError wraps an underlying storage failure. The in-memory
// state the write was attempting to persist is not rolled back by the
// storage layer; callers decide whether to retry.
func NewPersistenceError(err error) *AppError {
	msg := ErrPersistence.Message
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: msg,
		cause:   ErrPersistence,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidEntity indicates an account, label or record is missing an identity field
// (or repeats one) and therefore cannot take part in a join.
var ErrInvalidEntity = errors.New("invalid entity")

// ErrMixedCurrency indicates rows tagged with different currencies were fed into one total.
var ErrMixedCurrency = errors.New("mixed currencies")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewInvalidEntityError returns an error matching ErrInvalidEntity for the given entity kind.
func NewInvalidEntityError(kind string, index int, reason string) error {
	return fmt.Errorf("%w: %s at position %d: %s", ErrInvalidEntity, kind, index, reason)
}

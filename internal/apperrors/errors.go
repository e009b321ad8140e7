package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
// Callers must re-fetch current state before retrying; a blind retry will fail again.
var ErrConflict = errors.New("resource state conflict")

// ErrPeriodNotPostable indicates that the fiscal period covering the posting
// date is missing or no longer OPEN. Raised by the authoritative re-check
// inside the posting transaction; the pre-check in the service layer reports
// the same condition before the transaction starts.
var ErrPeriodNotPostable = errors.New("fiscal period not open for posting")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a message and the wrapped cause.
// Repositories use it to report infrastructure failures without leaking driver details.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

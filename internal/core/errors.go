// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrInvalidInput   = errors.New("invalid input")
	ErrValidation     = errors.New("constraint violation")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrSessionExpired = errors.New("session expired")
	ErrPersistence    = errors.New("persistence failure")
)

// AppError is an error that knows how it should be presented to a client.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
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

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// ConstraintError reports a storage-level rule the database rejected, such
// as a check constraint on an enumeration column.
type ConstraintError struct {
	Kind       error
	Constraint string
	Column     string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := e.Kind.Error()
	if e.Constraint != "" {
		msg += " (" + e.Constraint + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func NewInvalidInput(message string) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

func NewForbidden(message string) error {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
		Err:     ErrForbidden,
	}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func SessionExpiredError() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    "SESSION_EXPIRED",
		Message: "session has expired, please log in again",
		Err:     ErrSessionExpired,
	}
}

func ForbiddenError(message string) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
		Err:     ErrForbidden,
	}
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
		Err:     ErrNotFound,
	}
}

func DuplicateError(field string) *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    "DUPLICATE",
		Message: field + " already exists",
		Field:   field,
		Err:     ErrDuplicateKey,
	}
}

func BadRequestError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

func InternalError(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		Err:     err,
	}
}

// ToAppError classifies any error returned by a service. Authentication and
// authorization failures keep distinct codes so clients can tell a re-login
// prompt apart from a data error.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		status := http.StatusBadRequest
		code := "VALIDATION_FAILED"
		if errors.Is(constraintErr.Kind, ErrDuplicateKey) {
			status = http.StatusConflict
			code = "DUPLICATE"
		}
		return &AppError{
			Status:  status,
			Code:    code,
			Message: constraintErr.Error(),
			Field:   firstNonEmpty(constraintErr.Constraint, constraintErr.Column),
			Err:     err,
		}
	}

	switch {
	case errors.Is(err, ErrSessionExpired):
		return SessionExpiredError()
	case errors.Is(err, ErrUnauthorized):
		return UnauthorizedError("authentication required")
	case errors.Is(err, ErrForbidden):
		return ForbiddenError("not authorized for this workspace")
	case errors.Is(err, ErrNotFound):
		return NotFoundError("resource")
	case errors.Is(err, ErrDuplicateKey):
		return DuplicateError("resource")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return BadRequestError(err.Error())
	case errors.Is(err, ErrPersistence):
		return &AppError{
			Status:  http.StatusInternalServerError,
			Code:    "PERSISTENCE_ERROR",
			Message: "the operation could not be stored",
			Err:     err,
		}
	default:
		return InternalError(err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// internal/apperrors/errors.go
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind is the closed set of failure categories services may return.
// Handlers translate a Kind to an HTTP status exactly once.
type Kind int

const (
	KindExecution Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindTimedOut
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation error codes used across services.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeMinImages         = "MIN_IMAGES_REQUIRED"
	CodeMaxImages         = "MAX_IMAGES_EXCEEDED"
	CodeNoUpdateData      = "NO_UPDATE_DATA"
	CodeInvalidImageID    = "INVALID_IMAGE_ID"
	CodeFilterNoCriteria  = "FILTER_NO_CRITERIA"
	CodePriceRange        = "INVALID_PRICE_RANGE"
)

// Conflict error codes.
const (
	CodeAlreadyExists  = "ALREADY_EXISTS"
	CodeReferenceInUse = "REFERENCE_IN_USE"
)

func Validation(code, message string, details interface{}) *Error {
	if code == "" {
		code = CodeValidation
	}
	return &Error{Kind: KindValidation, Code: code, Message: message, Details: details}
}

func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

func Conflict(code, message string) *Error {
	if code == "" {
		code = "CONFLICT"
	}
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func TimedOut(operation string, err error) *Error {
	return &Error{
		Kind:    KindTimedOut,
		Code:    "TIMED_OUT",
		Message: operation + " timed out",
		Err:     err,
	}
}

func Execution(message string, err error) *Error {
	return &Error{
		Kind:    KindExecution,
		Code:    "EXECUTION_ERROR",
		Message: message,
		Err:     err,
	}
}

// KindOf extracts the Kind from an error chain, defaulting to execution.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindExecution
}

func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// Postgres SQLSTATE codes surfaced through the pgx driver, plus the
// sqlite equivalents used by the in-memory test database.
const (
	sqlstateUniqueViolation     = "SQLSTATE 23505"
	sqlstateForeignKeyViolation = "SQLSTATE 23503"
	sqliteUniqueViolation       = "UNIQUE constraint failed"
	sqliteForeignKeyViolation   = "FOREIGN KEY constraint failed"
)

func isUniqueViolation(msg string) bool {
	return strings.Contains(msg, sqlstateUniqueViolation) ||
		strings.Contains(msg, sqliteUniqueViolation)
}

func isForeignKeyViolation(msg string) bool {
	return strings.Contains(msg, sqlstateForeignKeyViolation) ||
		strings.Contains(msg, sqliteForeignKeyViolation)
}

// FromDB tags a raw persistence error with the matching Kind. The
// resource name is used for not-found and conflict messages.
func FromDB(err error, resource string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource)
	case errors.Is(err, context.DeadlineExceeded):
		return TimedOut(resource+" operation", err)
	case isUniqueViolation(err.Error()):
		return &Error{
			Kind:    KindConflict,
			Code:    CodeAlreadyExists,
			Message: resource + " already exists",
			Err:     err,
		}
	case isForeignKeyViolation(err.Error()):
		return &Error{
			Kind:    KindConflict,
			Code:    CodeReferenceInUse,
			Message: resource + " is referenced by another record",
			Err:     err,
		}
	}

	return Execution("database error", err)
}

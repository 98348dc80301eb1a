package application

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes failures reported to callers.
type ErrorCode string

const (
	// CodeValidation marks malformed input rejected before reaching the store.
	CodeValidation ErrorCode = "VALIDATION"

	// CodeNotFound marks an operation that targets a nonexistent id.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeStoreUnavailable marks a store that cannot be reached or a
	// transaction that failed. It is never retried automatically.
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Error is the error type returned across package boundaries.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending input for validation errors.
	Field string

	// ID is the targeted record for not-found errors.
	ID int64

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed input for field.
func NewValidationError(field, message string) *Error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

// NewNotFound reports that no application has the given id.
func NewNotFound(id int64) *Error {
	return &Error{Code: CodeNotFound, ID: id, Message: fmt.Sprintf("application %d not found", id)}
}

// NewStoreUnavailable wraps a storage failure.
func NewStoreUnavailable(op string, err error) *Error {
	return &Error{Code: CodeStoreUnavailable, Message: op, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsStoreUnavailable reports whether err is a store failure.
func IsStoreUnavailable(err error) bool { return CodeOf(err) == CodeStoreUnavailable }

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeStorage  ErrorCode = "STORAGE"
	ErrCodeRender   ErrorCode = "RENDER"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrNoEmployerConfigured = NewError(ErrCodeNotFound, "no employer configured")
	ErrCustomerNotFound     = NewError(ErrCodeNotFound, "customer not found")
	ErrEmployeeNotFound     = NewError(ErrCodeNotFound, "employee not found")
	ErrDraftNotFound        = NewError(ErrCodeNotFound, "invoice draft not found")
	ErrInvalidPayload       = NewError(ErrCodeInvalid, "invalid payload")
)

// MissingFieldError reports a required metadata field absent on a customer
// or employer record. It names the record so operators can fix the data.
type MissingFieldError struct {
	Entity string // "customer" or "employer"
	Record string // display name of the offending record
	Field  string // dotted path of the missing field, e.g. "address.city"
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s %q: missing required field %q", e.Entity, e.Record, e.Field)
}

// NewMissingFieldError builds a MissingFieldError wrapped in an INVALID
// domain error so callers can match either way.
func NewMissingFieldError(entity, record, field string) error {
	return WrapError(
		ErrCodeInvalid,
		"incomplete "+entity+" profile",
		&MissingFieldError{Entity: entity, Record: record, Field: field},
	)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// AsMissingField extracts a MissingFieldError if err carries one.
func AsMissingField(err error) (*MissingFieldError, bool) {
	var mErr *MissingFieldError
	if errors.As(err, &mErr) {
		return mErr, true
	}
	return nil, false
}

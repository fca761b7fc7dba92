package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInvalid        ErrorCode = "INVALID"
	ErrCodeConflict       ErrorCode = "CONFLICT"
	ErrCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeMissingToken   ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidToken   ErrorCode = "INVALID_TOKEN"
	ErrCodeUnknownAccount ErrorCode = "UNKNOWN_ACCOUNT"
	ErrCodeInternal       ErrorCode = "INTERNAL"
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

// Internal wraps an unexpected failure. The message is safe to show to clients.
func Internal(err error) *Error {
	return WrapError(ErrCodeInternal, "Internal Server Error", err)
}

// Common domain errors.
var (
	ErrAccountNotFound = NewError(ErrCodeNotFound, "account not found")
	ErrEmailTaken      = NewError(ErrCodeConflict, "This email is already registered")
	ErrTaskNotFound    = NewError(ErrCodeNotFound, "task not found")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "Invalid request payload")

	ErrMissingToken   = NewError(ErrCodeMissingToken, "Token not found")
	ErrInvalidToken   = NewError(ErrCodeInvalidToken, "Invalid token")
	ErrUnknownAccount = NewError(ErrCodeUnknownAccount, "Account not found")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the classification of err, INTERNAL for anything that is not a domain error.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) && dErr != nil {
		return dErr.Code
	}
	return ErrCodeInternal
}

// MessageOf returns the client-facing message carried by err.
func MessageOf(err error) string {
	var dErr *Error
	if errors.As(err, &dErr) && dErr != nil && dErr.Code != ErrCodeInternal {
		return dErr.Message
	}
	return "Internal Server Error"
}

package errors

import (
	"errors"
	"fmt"
)

var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error is an error carrying an application code
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError pairs a code and a client-safe message with an optional cause
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message returns the client-safe message without the wrapped cause
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

func InvalidArgument(message string, err error) *AppError {
	return NewAppError(ErrInvalidArgument, message, err)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(ErrNotFound, message, err)
}

func Unauthenticated(message string, err error) *AppError {
	return NewAppError(ErrUnauthenticated, message, err)
}

// Forbidden uses the UNAUTHORIZED code, which maps to 403
func Forbidden(message string, err error) *AppError {
	return NewAppError(ErrUnauthorized, message, err)
}

// Conflict reports a request that clashes with the current resource state
func Conflict(message string, err error) *AppError {
	return NewAppError(ErrConflict, message, err)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrInternal, message, err)
}

// Wrap wraps err with message, keeping the code of an inner AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf returns the first AppError code in the chain, or INTERNAL
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

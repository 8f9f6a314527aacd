// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-vec.
// Layout and allocation failures are recoverable error values; out-of-
// bounds subscripts are contract violations and panic at the call site.

package api

import "fmt"

// Common errors used across the library. Structured errors produced by
// the constructors below wrap these sentinels, so errors.Is matches.
var (
	ErrLayoutOverflow  = fmt.Errorf("layout size overflows the address space")
	ErrAllocRejected   = fmt.Errorf("allocator rejected the request")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeLayout
	ErrCodeAllocFailed
	ErrCodeInvalidArgument
	ErrCodeInternal
)

// Error represents a structured error with code, cause and context.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the underlying sentinel or allocator error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewLayoutError reports an unrepresentable size/alignment/count request.
func NewLayoutError(message string) *Error {
	return NewError(ErrCodeLayout, message, ErrLayoutOverflow)
}

// NewAllocError reports an allocator rejection. cause may carry the
// platform error (for example from mmap); it defaults to ErrAllocRejected.
func NewAllocError(message string, cause error) *Error {
	if cause == nil {
		cause = ErrAllocRejected
	}
	return NewError(ErrCodeAllocFailed, message, cause)
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Source decoding errors
	ErrDialectDecode  ErrorCode = "DIALECT_DECODE"
	ErrDialectUnknown ErrorCode = "DIALECT_UNKNOWN"
	ErrInvalidEntry   ErrorCode = "INVALID_ENTRY"

	// Cross-reference errors
	ErrMalformedReference ErrorCode = "MALFORMED_REFERENCE"
	ErrUnresolvedLanguage ErrorCode = "UNRESOLVED_LANGUAGE"

	// Rendering errors
	ErrRender   ErrorCode = "RENDER"
	ErrTemplate ErrorCode = "TEMPLATE"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// DictusError represents a structured error with code and details
type DictusError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DictusError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DictusError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DictusError carrying the same code
func (e *DictusError) Is(target error) bool {
	var targetErr *DictusError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DictusError with the given code and message
func New(code ErrorCode, message string) *DictusError {
	return &DictusError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DictusError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DictusError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a DictusError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DictusError {
	if err == nil {
		return nil
	}
	return &DictusError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DictusError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *DictusError) WithDetail(key string, value interface{}) *DictusError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DictusError) WithDetails(details map[string]interface{}) *DictusError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dictusErr *DictusError
	if errors.As(err, &dictusErr) {
		return dictusErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DictusError
func GetErrorCode(err error) ErrorCode {
	var dictusErr *DictusError
	if errors.As(err, &dictusErr) {
		return dictusErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DictusError
func GetErrorDetails(err error) map[string]interface{} {
	var dictusErr *DictusError
	if errors.As(err, &dictusErr) {
		return dictusErr.Details
	}
	return nil
}

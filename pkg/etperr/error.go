package etperr

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategorySchema    Category = "schema"
	CategoryTransport Category = "transport"
	CategoryProtocol  Category = "protocol"
	CategoryConfig    Category = "config"
)

// EtpError is a structured error with a registered code.
type EtpError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (schema, transport, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EtpError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EtpError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *EtpError with the same code.
func (e *EtpError) Is(target error) bool {
	t, ok := target.(*EtpError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *EtpError) WithDetail(d string) *EtpError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *EtpError) WithDetailf(format string, args ...any) *EtpError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *EtpError) Wrap(err error) *EtpError {
	e.Wrapped = err
	return e
}

// New creates an EtpError from a registered error code.
func New(code string) *EtpError {
	tmpl, ok := registry[code]
	if !ok {
		return &EtpError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &EtpError{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
	}
}

// Newf creates a new EtpError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *EtpError {
	return &EtpError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// CategoryOf returns the category of err, or "" when err carries none.
func CategoryOf(err error) Category {
	var ee *EtpError
	if stderrors.As(err, &ee) {
		return ee.Category
	}
	var pe *ProtocolException
	if stderrors.As(err, &pe) {
		return CategoryProtocol
	}
	return ""
}

// Is and As re-export the standard library helpers so callers need a
// single errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

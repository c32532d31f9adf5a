package etperr

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// EmptyExceptionMessage is reported when the peer sends a ProtocolException
// without any error detail.
const EmptyExceptionMessage = "Empty Exception, Unknown Reason"

// ErrorDetail is one error entry of a ProtocolException.
type ErrorDetail struct {
	Code    int32
	Message string
}

// ProtocolException is a structured error sent by the peer.
type ProtocolException struct {
	Code    int32
	Message string

	// Errors holds per-item failures of a batch request, keyed the same way
	// as the request map.
	Errors map[string]ErrorDetail
}

// NewProtocolException creates a ProtocolException with a single error.
func NewProtocolException(code int32, message string) *ProtocolException {
	return &ProtocolException{Code: code, Message: message}
}

// NewEmptyProtocolException is used when the peer's exception carried nothing.
func NewEmptyProtocolException() *ProtocolException {
	return &ProtocolException{Code: 0, Message: EmptyExceptionMessage}
}

// Error implements the error interface.
func (pe *ProtocolException) Error() string {
	if len(pe.Errors) == 0 {
		return fmt.Sprintf("E300: ProtocolException: %d, %s", pe.Code, pe.Message)
	}

	keys := make([]string, 0, len(pe.Errors))
	for k := range pe.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		d := pe.Errors[k]
		parts = append(parts, fmt.Sprintf("%s=%d %s", k, d.Code, d.Message))
	}
	return fmt.Sprintf("E300: ProtocolException: %d, %s [%s]", pe.Code, pe.Message, strings.Join(parts, "; "))
}

// IsEmpty reports whether the exception carries no detail at all.
func (pe *ProtocolException) IsEmpty() bool {
	return pe.Code == 0 && pe.Message == EmptyExceptionMessage && len(pe.Errors) == 0
}

// ErrProtocolException matches any *ProtocolException through errors.Is.
var ErrProtocolException = &EtpError{Code: "E300", Category: CategoryProtocol, Message: "Protocol exception received"}

// ErrEmptyException matches a *ProtocolException that carried no detail.
var ErrEmptyException = stderrors.New(EmptyExceptionMessage)

// Is lets errors.Is match ErrProtocolException and, for empty exceptions,
// ErrEmptyException.
func (pe *ProtocolException) Is(target error) bool {
	if target == ErrEmptyException {
		return pe.IsEmpty()
	}
	if t, ok := target.(*EtpError); ok {
		return t.Code == "E300"
	}
	return false
}

package dialogue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes dialogue failure semantics across the core.
type ErrorCode string

const (
	// CodeInvalidInput rejects a turn before any state change; the turn is
	// not counted.
	CodeInvalidInput ErrorCode = "invalid_input"
	// CodeNotFound marks a missing session or question row.
	CodeNotFound ErrorCode = "not_found"
	// CodeExpired marks a session idle past its timeout.
	CodeExpired ErrorCode = "expired"
	CodeConflict ErrorCode = "conflict"
	// CodeRetryable marks transient storage contention (deadlock,
	// serialization failure); the caller may resubmit with the same
	// idempotency key.
	CodeRetryable ErrorCode = "retryable"
	// CodeStorage marks a failed persistence attempt; the turn is not
	// considered processed.
	CodeStorage  ErrorCode = "storage"
	CodeInternal ErrorCode = "internal"
)

// Error is the canonical dialogue error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a dialogue error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// WrapError annotates an existing error, keeping an already-coded error's
// code when none is forced.
func WrapError(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// CodeOf extracts the dialogue error code when available.
func CodeOf(err error) ErrorCode {
	var de *Error
	if !errors.As(err, &de) {
		return ""
	}
	return de.Code
}

// Retriable reports whether the caller may safely resubmit the same request.
func Retriable(err error) bool {
	switch CodeOf(err) {
	case CodeRetryable, CodeStorage:
		return true
	default:
		return false
	}
}

package scheduling

import (
	"errors"
	"fmt"
)

// ErrorCode classifies engine failures for callers. Conflict is expected
// under legitimate concurrent demand and should be retried with a different
// slot; PolicyViolation is terminal for the request as issued.
type ErrorCode string

const (
	CodeInvalidInput    ErrorCode = "invalid_input"
	CodePolicyViolation ErrorCode = "policy_violation"
	CodeConflict        ErrorCode = "conflict"
	CodeNotFound        ErrorCode = "not_found"
	CodeUnauthorized    ErrorCode = "unauthorized"
	CodeBusy            ErrorCode = "busy"
)

// Error is the engine's typed error.
type Error struct {
	Code    ErrorCode
	Message string
	// ConflictID identifies the appointment a conflicting candidate
	// overlaps, when Code is CodeConflict.
	ConflictID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func errInvalidInput(format string, args ...interface{}) *Error {
	return newError(CodeInvalidInput, format, args...)
}

func errPolicyViolation(format string, args ...interface{}) *Error {
	return newError(CodePolicyViolation, format, args...)
}

func errConflict(withID string, format string, args ...interface{}) *Error {
	e := newError(CodeConflict, format, args...)
	e.ConflictID = withID
	return e
}

func errNotFound(format string, args ...interface{}) *Error {
	return newError(CodeNotFound, format, args...)
}

func errUnauthorized(format string, args ...interface{}) *Error {
	return newError(CodeUnauthorized, format, args...)
}

func errBusy(format string, args ...interface{}) *Error {
	return newError(CodeBusy, format, args...)
}

// CodeOf extracts the ErrorCode from err, or "" for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

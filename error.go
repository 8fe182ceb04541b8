package uxaudit

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"   // validation failed; maps to HTTP 400
	ENOTFOUND = "not_found" // entity does not exist
	EUPSTREAM = "upstream"  // model provider returned a failure
	EINTERNAL = "internal"  // internal error
)

// Error represents an application error. Application errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the application error code constants.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("uxaudit error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var ue *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ue):
		return EUPSTREAM
	case errors.As(err, &e):
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// UpstreamError carries a model provider's non-success response so the
// HTTP boundary can forward the upstream status code and raw body
// verbatim. The body is never reinterpreted: the caller may need the
// provider's own diagnostic text.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

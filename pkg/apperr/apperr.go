// Package apperr defines the stable error taxonomy shared by all API
// endpoints. The integer codes are a wire contract consumed by clients and
// must not change between releases.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable wire error code.
type Code int

const (
	CodeCouldntAuthenticate   Code = 300
	CodeEmailOrUsernameUsed   Code = 310
	CodeParsingRequestContent Code = 400
	CodeInvalidData           Code = 410
	CodeInvalidEmailOrPw      Code = 411
	CodeUnauthorized          Code = 430
	CodeInternal              Code = 500
)

// Message returns the client-facing text for the code.
func (c Code) Message() string {
	switch c {
	case CodeCouldntAuthenticate:
		return "Couldn't authenticate request"
	case CodeEmailOrUsernameUsed:
		return "Email or username already in use"
	case CodeParsingRequestContent:
		return "Error parsing request content"
	case CodeInvalidData:
		return "Invalid content"
	case CodeInvalidEmailOrPw:
		return "Invalid email or password"
	case CodeUnauthorized:
		return "Unauthorized"
	default:
		return "Internal error"
	}
}

// Error is a failure classified into the taxonomy. It optionally wraps the
// underlying cause; the cause is for server-side logging only and never
// reaches the wire.
type Error struct {
	Code  Code
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (code %d): %v", e.Code.Message(), e.Code, e.cause)
	}
	return fmt.Sprintf("%s (code %d)", e.Code.Message(), e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two taxonomy errors by code, so sentinels below work with
// errors.Is regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns a bare taxonomy error.
func New(code Code) *Error { return &Error{Code: code} }

// Wrap attaches a cause to a taxonomy error.
func Wrap(code Code, cause error) *Error { return &Error{Code: code, cause: cause} }

// Sentinel values for the common failure categories.
var (
	ErrCouldntAuthenticate   = New(CodeCouldntAuthenticate)
	ErrEmailOrUsernameUsed   = New(CodeEmailOrUsernameUsed)
	ErrParsingRequestContent = New(CodeParsingRequestContent)
	ErrInvalidData           = New(CodeInvalidData)
	ErrInvalidEmailOrPw      = New(CodeInvalidEmailOrPw)
	ErrUnauthorized          = New(CodeUnauthorized)
	ErrInternal              = New(CodeInternal)
)

// CodeOf classifies an arbitrary error. Anything outside the taxonomy is an
// infrastructure failure.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Package errors provides the coded errors shared by every boxaro package.
//
// Each error carries a [Code] that callers can test without matching on
// message text. The parser attaches one to every diagnostic, the pipeline
// returns them for fatal failures, and the CLI maps them to exit statuses
// with [ExitCode].
//
// # Error Codes
//
//   - INVALID_*, MALFORMED_SCOPE, DUPLICATE_BOX: problems in the document or the arguments
//   - UNKNOWN_BOX, FILE_NOT_FOUND: references that do not resolve
//   - DECODE_ERROR, RENDER_ERROR, INTERNAL_ERROR: processing failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedScope, "label outside of a box: %q", line)
//	if errors.Is(err, errors.ErrCodeMalformedScope) {
//	    // Handle structural error
//	}
//
//	err = errors.Wrap(errors.ErrCodeRender, cause, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Document and argument errors.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"      // bad argument, config value or strict-mode failure
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"     // unknown output format
	ErrCodeInvalidConnection Code = "INVALID_CONNECTION" // connection line does not match the grammar
	ErrCodeInvalidShape      Code = "INVALID_SHAPE"      // unknown `shape` value
	ErrCodeInvalidName       Code = "INVALID_NAME"       // unusable box name
	ErrCodeMalformedScope    Code = "MALFORMED_SCOPE"    // line in a block that cannot hold it
	ErrCodeDuplicateBox      Code = "DUPLICATE_BOX"      // box name declared twice
)

// Resolution errors.
const (
	ErrCodeUnknownBox   Code = "UNKNOWN_BOX"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
)

// Processing errors.
const (
	ErrCodeDecode   Code = "DECODE_ERROR"
	ErrCodeRender   Code = "RENDER_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, followed by the
// cause if any. Errors of other types are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

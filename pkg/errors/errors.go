// Package errors defines the coded errors questcanvas reports to users.
//
// Every failure that leaves the CLI or the HTTP API carries a [Code]. The
// core packages (quest, codec, layout, index) degrade their output instead of
// failing, so codes originate at the strict entry points (codec.Decode) and
// the outer layers (config, file I/O, rendering, HTTP decoding).
//
//	err := errors.New(errors.ErrCodeInvalidDocument, "top level is a %s, not a mapping", kind)
//	err = errors.Annotate(err, "parse %s", path) // still INVALID_DOCUMENT
//	if errors.Is(err, errors.ErrCodeInvalidDocument) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code and message with an optional cause.
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

// New returns an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with the given code whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Annotate wraps err with a message and keeps its code. Uncoded errors
// become INTERNAL_ERROR.
func Annotate(err error, format string, args ...any) *Error {
	return Wrap(CodeOf(err), err, format, args...)
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost coded error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// CodeOf is GetCode with INTERNAL_ERROR for non-nil uncoded errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if code := GetCode(err); code != "" {
		return code
	}
	return ErrCodeInternal
}

// UserMessage returns the message of the outermost coded error, or the plain
// error text.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

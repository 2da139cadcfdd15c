// Package errors defines the coded errors shared by every minid3 layer.
//
// A *Error pairs a machine-readable [Code] with a message and an optional
// cause. Selections keep the first *Error of a chain, the server maps codes
// to HTTP statuses and the CLI prints a [Hint] for the code.
//
//	err := errors.New(errors.ErrCodeInvalidDomain, "zero-width domain [%v, %v]", lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidDomain) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeNetwork, cause, "fetch %s", url)
//
// Codes are grouped by prefix: INVALID_* for bad input, *NOT_FOUND for
// missing things, NETWORK_ERROR and TIMEOUT for dataset fetches.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSelector Code = "INVALID_SELECTOR"
	ErrCodeInvalidDomain   Code = "INVALID_DOMAIN"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeKeyNotFound  Code = "KEY_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// ErrCodeUnmaterialized is returned when an operation needs a real
	// node but the selection slot holds an enter placeholder.
	ErrCodeUnmaterialized Code = "UNMATERIALIZED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var hints = map[Code]string{
	ErrCodeInvalidSelector: "selectors are tag names, #id or .class, optionally combined with spaces",
	ErrCodeInvalidDomain:   "check that the dataset has at least one row with a positive value",
	ErrCodeInvalidFormat:   "valid formats are html, svg, png, pdf and dot",
	ErrCodeInvalidTemplate: `run "minid3 templates" to list the built-in templates`,
	ErrCodeInvalidConfig:   "see examples/bar.toml for a complete chart config",
	ErrCodeKeyNotFound:     "label_field and value_field must name keys present in every row",
	ErrCodeFileNotFound:    "relative dataset paths are resolved against the config file's directory",
	ErrCodeNetwork:         "the dataset URL could not be fetched; check the address or try again",
	ErrCodeTimeout:         "the dataset URL did not answer in time",
	ErrCodeUnsupported:     "PNG and PDF output need rsvg-convert on PATH",
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error with code whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// Hint returns a short remediation for err's code, or "" when none is known.
func Hint(err error) string {
	return hints[GetCode(err)]
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the error taxonomy at the component boundaries
type ErrorKind string

const (
	// KindInput marks empty/oversized/malformed raw text. Terminal,
	// surfaced immediately, no tier is attempted.
	KindInput ErrorKind = "input"

	// KindExternalCall marks network failure, timeout, or a non-conforming
	// response from an external tier. Recovered locally by advancing tiers.
	KindExternalCall ErrorKind = "external_call"

	// KindValidation marks a candidate document failing validator checks.
	// Treated identically to an external call failure for fallback.
	KindValidation ErrorKind = "validation"

	// KindConfiguration marks missing required credentials/configuration.
	// Terminal at startup, never per request.
	KindConfiguration ErrorKind = "configuration"
)

// Violation is one validator finding, addressed by document path
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Path + ": " + v.Message
}

// Error is a structured error with a kind discriminator and an optional
// per-field violation list
type Error struct {
	Kind       ErrorKind   `json:"kind"`
	Reason     string      `json:"reason"`
	Violations []Violation `json:"violations,omitempty"`
	Err        error       `json:"-"` // wrapped cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if len(e.Violations) > 0 {
		b.WriteString(" (")
		for i, v := range e.Violations {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(v.String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInputError creates an input-class error
func NewInputError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInput, Reason: fmt.Sprintf(format, args...)}
}

// NewExternalError wraps an external call failure
func NewExternalError(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindExternalCall, Reason: fmt.Sprintf(format, args...), Err: err}
}

// NewValidationError creates a validation-class error carrying all findings
func NewValidationError(violations []Violation) *Error {
	return &Error{
		Kind:       KindValidation,
		Reason:     fmt.Sprintf("document failed validation (%d violations)", len(violations)),
		Violations: violations,
	}
}

// NewConfigError creates a configuration-class error
func NewConfigError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err if it is a structured error, or "" otherwise
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsInputError reports whether err is input-class
func IsInputError(err error) bool {
	return KindOf(err) == KindInput
}

// IsConfigError reports whether err is configuration-class
func IsConfigError(err error) bool {
	return KindOf(err) == KindConfiguration
}

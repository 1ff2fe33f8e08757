// Package errors carries bwstat's user-facing errors: a category code, what
// went wrong, the underlying cause and what to do about it.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Each maps to its own process exit status.
const (
	ErrConfig = "CONFIG" // bad flags, missing or invalid config file
	ErrFetch  = "FETCH"  // the sample file could not be copied off the board
	ErrParse  = "PARSE"  // the sample file is not a usable CSV
	ErrStats  = "STATS"  // nothing to compute (no samples)
	ErrPlot   = "PLOT"   // a plot or workbook could not be written
	ErrSSH    = "SSH"
	ErrExec   = "EXEC"
)

var exitCodes = map[string]int{
	ErrConfig: 2,
	ErrFetch:  3,
	ErrSSH:    3,
	ErrExec:   3,
	ErrParse:  4,
	ErrStats:  4,
	ErrPlot:   5,
}

// Error is printed to the terminal as:
//
//	✗ <Message>
//
//	  <Cause>
//
//	  <Suggestion>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode attaches err as the cause of a new Error.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  %s\n", e.Cause.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s\n", e.Suggestion)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether the outermost *Error in err's chain has code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// ExitCode maps err to a process exit status: 0 for nil, 1 for errors
// without a known code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[CodeOf(err)]; ok {
		return code
	}
	return 1
}

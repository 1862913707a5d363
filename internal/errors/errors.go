// Package errors defines the stable error codes shared by every failure
// mode in serviceowners. All errors are deterministic and non-retryable:
// the same inputs always fail the same way.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseError indicates a SERVICEOWNERS line is structurally invalid
	ParseError ErrorCode = "PARSE_ERROR"
	// PatternInvalid indicates a rule pattern is not a valid glob
	PatternInvalid ErrorCode = "PATTERN_INVALID"
	// ConfigInvalid indicates the config file is malformed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// GitError indicates a git invocation failed
	GitError ErrorCode = "GIT_ERROR"
	// GitHubError indicates a GitHub API call failed
	GitHubError ErrorCode = "GITHUB_ERROR"
	// UsageError indicates invalid CLI usage
	UsageError ErrorCode = "USAGE_ERROR"
)

// OwnersError is the error type returned across package boundaries. It
// carries a stable code plus optional file/line context so callers can
// point users at the offending SERVICEOWNERS line.
type OwnersError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	File    string    `json:"file,omitempty"`
	Line    int       `json:"line,omitempty"`
	cause   error
}

// New creates an OwnersError with the given code and message
func New(code ErrorCode, message string) *OwnersError {
	return &OwnersError{Code: code, Message: message}
}

// Wrap creates an OwnersError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *OwnersError {
	return &OwnersError{Code: code, Message: message, cause: cause}
}

// AtLine attaches file and 1-based line context to the error
func (e *OwnersError) AtLine(file string, line int) *OwnersError {
	e.File = file
	e.Line = line
	return e
}

// Error implements the error interface
func (e *OwnersError) Error() string {
	loc := ""
	if e.File != "" && e.Line > 0 {
		loc = fmt.Sprintf("%s:%d: ", e.File, e.Line)
	} else if e.File != "" {
		loc = e.File + ": "
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s%s: %v", e.Code, loc, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s%s", e.Code, loc, e.Message)
}

// Unwrap returns the underlying error
func (e *OwnersError) Unwrap() error {
	return e.cause
}

// CodeOf returns the ErrorCode carried by err, or empty if err is not an
// OwnersError.
func CodeOf(err error) ErrorCode {
	if oe, ok := err.(*OwnersError); ok {
		return oe.Code
	}
	return ""
}

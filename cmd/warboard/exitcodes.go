package main

import "fmt"

// Exit codes for the warboard CLI.
const (
	ExitOK          = 0 // Report written.
	ExitInvalidArgs = 1 // Invalid arguments, flags, or config.
	ExitWarnings    = 2 // Report written, but --strict and the data raised warnings.
	ExitLoadFailure = 3 // Source could not be fetched or decoded; no report.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitWarnings:
			msg = "warboard: data produced warnings"
		case ExitLoadFailure:
			msg = "warboard: failed to load data"
		default:
			msg = "warboard: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

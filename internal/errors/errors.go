package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitFailure = 2
)

// CommandError is an error that carries the process exit code.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the exit code the process should end with.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{ExitCode: code, Err: err}
}

// ErrVerificationFailed is returned by verify when the verdict is FAILURE and the
// caller asked for a failing exit code.
var ErrVerificationFailed = errors.New("watermark verification failed")

// NewVerificationFailure reports a FAILURE verdict as an error.
func NewVerificationFailure(ratio string) *CommandError {
	return NewCommandError(fmt.Errorf("%w: %s watermarks found", ErrVerificationFailed, ratio), ExitFailure)
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for a
// CommandError and ExitError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitError
}

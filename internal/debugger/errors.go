package debugger

import (
	"errors"
	"fmt"
)

var (
	// ErrDriverLaunch is returned when a debugger session could not be started or completed.
	ErrDriverLaunch = errors.New("debugger session failed")
	// ErrExtraction is returned when the inspected value cannot be recovered from the output.
	ErrExtraction = errors.New("failed to extract variable value")
	// ErrUnknownDialect is returned by Lookup for unsupported debuggers.
	ErrUnknownDialect = errors.New("unknown debugger dialect")
)

// LaunchError describes a failed debugger session.
type LaunchError struct {
	SessionID string
	Stage     string
	Err       error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: session %s: %s: %v", ErrDriverLaunch, e.SessionID, e.Stage, e.Err)
}

// Is reports ErrDriverLaunch as the kind of every LaunchError.
func (e *LaunchError) Is(target error) bool {
	return target == ErrDriverLaunch
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

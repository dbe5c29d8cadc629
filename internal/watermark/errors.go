package watermark

import (
	"errors"
	"fmt"
)

// ErrMalformedDescriptor is returned when a listing line does not describe a watermark.
var ErrMalformedDescriptor = errors.New("malformed watermark descriptor")

// MalformedDescriptorError reports which listing line failed to parse and why.
type MalformedDescriptorError struct {
	SourceLine int
	Text       string
	Reason     string
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("%s at line %d (%q): %s", ErrMalformedDescriptor, e.SourceLine, e.Text, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedDescriptor.
func (e *MalformedDescriptorError) Unwrap() error {
	return ErrMalformedDescriptor
}

func malformed(sourceLine int, text, format string, args ...interface{}) error {
	return &MalformedDescriptorError{
		SourceLine: sourceLine,
		Text:       text,
		Reason:     fmt.Sprintf(format, args...),
	}
}

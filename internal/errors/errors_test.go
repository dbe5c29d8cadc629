package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("plain")))
	assert.Equal(t, 7, ExitCode(NewCommandError(errors.New("custom"), 7)))
	assert.Equal(t, ExitFailure, ExitCode(fmt.Errorf("wrapped: %w", NewVerificationFailure("1/2"))))
}

func TestVerificationFailure(t *testing.T) {
	err := NewVerificationFailure("1/3")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, "watermark verification failed: 1/3 watermarks found", err.Error())
}

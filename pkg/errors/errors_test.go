// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exitErr struct{ code int }

func (e exitErr) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e exitErr) ExitCode() int { return e.code }

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "prerequisite_error",
			code:    errors.ErrPrerequisite,
			message: "base packages failed",
			wantStr: "[PREREQUISITE_FAILED] base packages failed",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("boom")

	err := errors.Wrapf(base, errors.ErrCommandFailed, "running %s", "apt-get")
	require.NotNil(t, err)
	assert.Equal(t, "[COMMAND_FAILED] running apt-get: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.Nil(t, errors.Wrap(nil, errors.ErrCommandFailed, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrCommandFailed, "nothing %d", 1))
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrLockHeld, "busy"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrLockHeld, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrPrivilege, "")))
	assert.True(t, errors.IsErrorCode(err, errors.ErrLockHeld))
	assert.Equal(t, errors.ErrLockHeld, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCatalogInvalid, "bad entry").
		WithDetail("index", 3).
		WithDetail("name", "Docker")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, 3, details["index"])
	assert.Equal(t, "Docker", details["name"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestExitCode(t *testing.T) {
	wrapped := errors.Wrap(exitErr{code: 100}, errors.ErrCommandFailed, "apt-get install")

	code, ok := errors.ExitCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 100, code)

	_, ok = errors.ExitCode(stderrors.New("no status"))
	assert.False(t, ok)
}

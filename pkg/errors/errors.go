package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrCatalogLoad    ErrorCode = "CATALOG_LOAD"
	ErrCatalogInvalid ErrorCode = "CATALOG_INVALID"

	// Run errors
	ErrPrerequisite   ErrorCode = "PREREQUISITE_FAILED"
	ErrTaskFailed     ErrorCode = "TASK_FAILED"
	ErrProbeAmbiguous ErrorCode = "PROBE_AMBIGUOUS"
	ErrInterrupted    ErrorCode = "INTERRUPTED"
	ErrPrivilege      ErrorCode = "PRIVILEGE"
	ErrLockHeld       ErrorCode = "LOCK_HELD"

	// Execution errors
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
)

// RigupError represents a structured error with code and details
type RigupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RigupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RigupError) Unwrap() error {
	return e.Wrapped
}

// Is matches any RigupError carrying the same code
func (e *RigupError) Is(target error) bool {
	var targetErr *RigupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RigupError with the given code and message
func New(code ErrorCode, message string) *RigupError {
	return &RigupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RigupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RigupError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a RigupError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *RigupError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RigupError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *RigupError) WithDetail(key string, value interface{}) *RigupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RigupError
func GetErrorCode(err error) ErrorCode {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RigupError
func GetErrorDetails(err error) map[string]interface{} {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Details
	}
	return nil
}

// ExitCode extracts a process exit status from anywhere in err's chain.
// It reports false when no wrapped error exposes one.
func ExitCode(err error) (int, bool) {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}

package rigup

import (
	stderrors "errors"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Process exit statuses
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// ExitCode maps the error returned by a command to the process status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsErrorCode(err, errors.ErrInterrupted):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}

// ErrorLine is the one-line error main prints. Errors the summary already
// explained are shown without their wrapped cause.
func ErrorLine(err error) string {
	var re *errors.RigupError
	if stderrors.As(err, &re) && reported(err) {
		return "Error: " + re.Message
	}
	return "Error: " + err.Error()
}

func reported(err error) bool {
	return errors.IsErrorCode(err, errors.ErrPrerequisite) ||
		errors.IsErrorCode(err, errors.ErrInterrupted) ||
		errors.IsErrorCode(err, errors.ErrTaskFailed)
}

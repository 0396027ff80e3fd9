package types

import (
	"fmt"
	"time"
)

// OutcomeKind classifies the result of evaluating one task
type OutcomeKind string

const (
	// OutcomeApplied means the action ran and succeeded
	OutcomeApplied OutcomeKind = "applied"

	// OutcomeAlreadyPresent means the probe was satisfied and nothing ran
	OutcomeAlreadyPresent OutcomeKind = "already_present"

	// OutcomeNotApplicable means the guard rejected the environment
	OutcomeNotApplicable OutcomeKind = "not_applicable"

	// OutcomeFailed means the probe was ambiguous or the action failed
	OutcomeFailed OutcomeKind = "failed"
)

// Kinds lists every outcome kind in report order
var Kinds = []OutcomeKind{
	OutcomeApplied,
	OutcomeAlreadyPresent,
	OutcomeNotApplicable,
	OutcomeFailed,
}

// NoExitCode marks a failure that did not come from a process exit status
const NoExitCode = -1

// Outcome is the immutable result of evaluating one task
type Outcome struct {
	kind     OutcomeKind
	detail   string
	exitCode int
	duration time.Duration
}

// Applied returns an Applied outcome
func Applied(d time.Duration) Outcome {
	return Outcome{kind: OutcomeApplied, exitCode: NoExitCode, duration: d}
}

// AlreadyPresent returns an AlreadyPresent outcome
func AlreadyPresent() Outcome {
	return Outcome{kind: OutcomeAlreadyPresent, exitCode: NoExitCode}
}

// NotApplicable returns a NotApplicable outcome with the guard's reason
func NotApplicable(reason string) Outcome {
	return Outcome{kind: OutcomeNotApplicable, detail: reason, exitCode: NoExitCode}
}

// Failed returns a Failed outcome. exitCode is NoExitCode when unknown.
func Failed(detail string, exitCode int, d time.Duration) Outcome {
	return Outcome{kind: OutcomeFailed, detail: detail, exitCode: exitCode, duration: d}
}

// Kind returns the outcome classification
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Detail returns the failure detail or not-applicable reason
func (o Outcome) Detail() string { return o.detail }

// ExitCode returns the action's exit status, or NoExitCode
func (o Outcome) ExitCode() int { return o.exitCode }

// Duration returns how long the action ran
func (o Outcome) Duration() time.Duration { return o.duration }

// IsFailure reports whether the outcome is Failed
func (o Outcome) IsFailure() bool { return o.kind == OutcomeFailed }

// String renders a compact form for logs
func (o Outcome) String() string {
	switch o.kind {
	case OutcomeFailed:
		if o.exitCode != NoExitCode {
			return fmt.Sprintf("failed (exit %d): %s", o.exitCode, o.detail)
		}
		return fmt.Sprintf("failed: %s", o.detail)
	case OutcomeNotApplicable:
		return fmt.Sprintf("not applicable: %s", o.detail)
	default:
		return string(o.kind)
	}
}

package types

import (
	"context"
	"io"
)

// Probe checks whether a task's goal state already holds. It must not have
// side effects. A non-nil error means the state could not be determined.
type Probe interface {
	Check(ctx context.Context) (bool, error)
}

// ProbeFunc adapts a function to the Probe interface
type ProbeFunc func(ctx context.Context) (bool, error)

// Check implements Probe
func (f ProbeFunc) Check(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Guard decides whether a task is relevant to the current environment.
// When it is not, reason explains why.
type Guard interface {
	Applies(ctx context.Context) (ok bool, reason string)
}

// GuardFunc adapts a function to the Guard interface
type GuardFunc func(ctx context.Context) (bool, string)

// Applies implements Guard
func (f GuardFunc) Applies(ctx context.Context) (bool, string) {
	return f(ctx)
}

// Action performs the side effects of a task. Everything the action prints
// must go to out. Errors that expose ExitCode() int carry the exit status.
type Action interface {
	Run(ctx context.Context, out io.Writer) error
}

// ActionFunc adapts a function to the Action interface
type ActionFunc func(ctx context.Context, out io.Writer) error

// Run implements Action
func (f ActionFunc) Run(ctx context.Context, out io.Writer) error {
	return f(ctx, out)
}

// Task is one named unit of idempotent provisioning work
type Task struct {
	// Name is the human-readable label shown on the console
	Name string

	// Description is optional catalog text
	Description string

	// Probe reports whether the task's goal is already present
	Probe Probe

	// Action makes the goal present
	Action Action

	// Guard optionally gates whether the task applies here at all
	Guard Guard

	// Prerequisite marks a task whose failure invalidates every later task
	Prerequisite bool

	// Privileged tasks need an elevated session before their action runs
	Privileged bool
}

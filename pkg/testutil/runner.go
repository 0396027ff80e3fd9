package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/rigup/pkg/executor"
)

// ExitError is a command failure carrying an exit status
type ExitError struct {
	Code int
}

// Error implements error
func (e ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode exposes the status the way *exec.ExitError does
func (e ExitError) ExitCode() int { return e.Code }

// FakeRunner is an executor.Runner that records every command. RunFunc and
// OutputFunc decide the result; nil funcs succeed with no output.
type FakeRunner struct {
	RunFunc    func(cmd executor.Command, out io.Writer) error
	OutputFunc func(cmd executor.Command) ([]byte, error)

	mu    sync.Mutex
	calls []executor.Command
}

// Run implements executor.Runner
func (f *FakeRunner) Run(ctx context.Context, cmd executor.Command, out io.Writer) error {
	f.record(cmd)
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.RunFunc != nil {
		return f.RunFunc(cmd, out)
	}
	return nil
}

// Output implements executor.Runner
func (f *FakeRunner) Output(ctx context.Context, cmd executor.Command) ([]byte, error) {
	f.record(cmd)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.OutputFunc != nil {
		return f.OutputFunc(cmd)
	}
	return nil, nil
}

func (f *FakeRunner) record(cmd executor.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
}

// Calls returns the recorded commands in order
func (f *FakeRunner) Calls() []executor.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]executor.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns recorded commands joined into single strings
func (f *FakeRunner) CommandLines() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, CommandLine(c))
	}
	return out
}

// Count returns how many recorded commands match line exactly
func (f *FakeRunner) Count(line string) int {
	n := 0
	for _, l := range f.CommandLines() {
		if l == line {
			n++
		}
	}
	return n
}

// CommandLine joins a command's name and arguments with spaces
func CommandLine(cmd executor.Command) string {
	return strings.TrimSpace(cmd.Name + " " + strings.Join(cmd.Args, " "))
}

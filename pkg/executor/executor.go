package executor

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/rs/zerolog"
)

// waitDelay bounds how long Wait blocks on inherited pipes after a kill
const waitDelay = 5 * time.Second

// Command describes one external process invocation
type Command struct {
	Name string
	Args []string

	// Env holds extra KEY=VALUE pairs appended to the current environment
	Env []string

	// Dir is the working directory, empty for the current one
	Dir string

	// Interactive attaches the process to the terminal instead of out
	Interactive bool
}

// Runner executes commands
type Runner interface {
	// Run executes cmd with stdout and stderr written to out
	Run(ctx context.Context, cmd Command, out io.Writer) error

	// Output executes cmd and returns its stdout
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// System runs commands on the host through os/exec
type System struct {
	logger zerolog.Logger
}

// NewSystem creates a host command runner
func NewSystem() *System {
	return &System{logger: logging.GetLogger("executor")}
}

// Run implements Runner
func (s *System) Run(ctx context.Context, cmd Command, out io.Writer) error {
	c := s.build(ctx, cmd)
	if cmd.Interactive {
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	} else {
		// Same writer for both streams so exec serialises writes.
		c.Stdout = out
		c.Stderr = out
	}

	logging.LogCommand(s.logger, cmd.Name, cmd.Args)
	return s.classify(ctx, cmd, c.Run())
}

// Output implements Runner
func (s *System) Output(ctx context.Context, cmd Command) ([]byte, error) {
	c := s.build(ctx, cmd)
	var stderr bytes.Buffer
	c.Stderr = &stderr

	logging.LogCommand(s.logger, cmd.Name, cmd.Args)
	output, err := c.Output()
	if err != nil {
		s.logger.Debug().
			Str("command", cmd.Name).
			Str("stderr", stderr.String()).
			Msg("Command output failed")
	}
	return output, s.classify(ctx, cmd, err)
}

func (s *System) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

func (s *System) classify(ctx context.Context, cmd Command, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Wrapf(err, errors.ErrInterrupted, "%s interrupted", cmd.Name)
	}
	wrapped := errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", cmd.Name)
	if code, ok := errors.ExitCode(err); ok {
		wrapped.WithDetail("exit_code", code)
	}
	return wrapped
}

// Elevate rewrites cmd to run through sudo unless the process is already
// root. Extra environment is passed as sudo VAR=value arguments because sudo
// resets the environment.
func Elevate(cmd Command, isRoot bool) Command {
	return ElevateWith(cmd, "sudo", isRoot)
}

// ElevateWith is Elevate with a sudo-compatible binary other than sudo
func ElevateWith(cmd Command, via string, isRoot bool) Command {
	if isRoot {
		return cmd
	}
	if via == "" {
		via = "sudo"
	}

	args := make([]string, 0, len(cmd.Env)+len(cmd.Args)+1)
	args = append(args, cmd.Env...)
	args = append(args, cmd.Name)
	args = append(args, cmd.Args...)

	return Command{
		Name:        via,
		Args:        args,
		Dir:         cmd.Dir,
		Interactive: cmd.Interactive,
	}
}

package harness

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/report"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/rs/zerolog"
)

// Console receives one condensed status line per task
type Console interface {
	NotApplicable(task, reason string)
	AlreadyPresent(task string)

	// Begin marks the start of an action; Applied or Failed ends it
	Begin(task string)
	Applied(task string, d time.Duration)
	Failed(task, detail string, exitCode int, logPath string)

	// Output is where raw action output is mirrored, nil to keep it in the
	// sink only
	Output() io.Writer
}

// Sink is the append-only destination for action output
type Sink interface {
	io.Writer
	Path() string
	Section(name string, at time.Time)
}

// Escalator provides an elevated session for privileged tasks
type Escalator interface {
	Ensure(ctx context.Context) error
	Stop()
}

// Options configures a Harness
type Options struct {
	Console   Console
	Sink      Sink
	Privilege Escalator

	// Now defaults to time.Now
	Now func() time.Time
}

// Harness evaluates tasks and accumulates the run report
type Harness struct {
	console   Console
	sink      Sink
	privilege Escalator
	now       func() time.Time
	logger    zerolog.Logger

	report report.Report
	closed bool
}

// New creates a harness
func New(opts Options) *Harness {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Harness{
		console:   opts.Console,
		sink:      opts.Sink,
		privilege: opts.Privilege,
		now:       now,
		logger:    logging.GetLogger("harness"),
	}
}

// Evaluate runs one task through guard, probe and action, records the
// outcome and returns it. It never panics or returns an error for a task
// failure; failures are outcomes.
func (h *Harness) Evaluate(ctx context.Context, task types.Task) types.Outcome {
	outcome := h.evaluate(ctx, task)
	h.report = h.report.Append(task.Name, outcome)

	h.logger.Info().
		Str("task", task.Name).
		Str("outcome", string(outcome.Kind())).
		Str("detail", outcome.Detail()).
		Dur("duration", outcome.Duration()).
		Msg("Task evaluated")
	return outcome
}

func (h *Harness) evaluate(ctx context.Context, task types.Task) types.Outcome {
	if task.Guard != nil {
		if ok, reason := task.Guard.Applies(ctx); !ok {
			h.console.NotApplicable(task.Name, reason)
			return types.NotApplicable(reason)
		}
	}

	if task.Probe != nil {
		present, err := task.Probe.Check(ctx)
		if err != nil {
			return h.fail(task.Name, fmt.Sprintf("cannot determine state: %v", err), types.NoExitCode, 0)
		}
		if present {
			h.console.AlreadyPresent(task.Name)
			return types.AlreadyPresent()
		}
	}

	if task.Action == nil {
		return h.fail(task.Name, "no action defined", types.NoExitCode, 0)
	}

	if task.Privileged && h.privilege != nil {
		if err := h.privilege.Ensure(ctx); err != nil {
			return h.fail(task.Name, err.Error(), types.NoExitCode, 0)
		}
	}

	return h.apply(ctx, task)
}

func (h *Harness) apply(ctx context.Context, task types.Task) types.Outcome {
	start := h.now()
	h.sink.Section(task.Name, start)

	var out io.Writer = h.sink
	if mirror := h.console.Output(); mirror != nil {
		out = io.MultiWriter(h.sink, mirror)
	}

	h.console.Begin(task.Name)
	err := task.Action.Run(ctx, out)
	elapsed := h.now().Sub(start)

	if err != nil {
		code, ok := errors.ExitCode(err)
		if !ok {
			code = types.NoExitCode
		}
		fmt.Fprintf(h.sink, "!! %s failed: %v\n", task.Name, err)
		return h.fail(task.Name, err.Error(), code, elapsed)
	}

	h.console.Applied(task.Name, elapsed)
	return types.Applied(elapsed)
}

func (h *Harness) fail(task, detail string, code int, d time.Duration) types.Outcome {
	h.console.Failed(task, detail, code, h.sink.Path())
	return types.Failed(detail, code, d)
}

// Run evaluates tasks strictly in order. Independent failures are recorded
// and the run continues; a failed prerequisite stops the run with a
// PREREQUISITE_FAILED error. Cancellation stops the run with INTERRUPTED.
// The report always holds every task evaluated so far.
func (h *Harness) Run(ctx context.Context, tasks []types.Task) (report.Report, error) {
	done := logging.LogOperationStart(h.logger, "run")
	defer done()

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return h.report, h.interrupted(err, len(tasks)-i)
		}

		outcome := h.Evaluate(ctx, task)
		if !outcome.IsFailure() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return h.report, h.interrupted(err, len(tasks)-i-1)
		}
		if task.Prerequisite {
			h.logger.Error().Str("task", task.Name).Int("remaining", len(tasks)-i-1).Msg("Prerequisite failed, aborting run")
			return h.report, errors.Newf(errors.ErrPrerequisite, "prerequisite %q failed: %s", task.Name, outcome.Detail()).
				WithDetail("task", task.Name).
				WithDetail("log", h.sink.Path())
		}
	}
	return h.report, nil
}

func (h *Harness) interrupted(cause error, remaining int) error {
	h.logger.Warn().Int("remaining", remaining).Msg("Run interrupted")
	return errors.Wrap(cause, errors.ErrInterrupted, "run interrupted").WithDetail("remaining", remaining)
}

// Finalize returns the report of everything evaluated so far
func (h *Harness) Finalize() report.Report {
	return h.report
}

// Close stops the privilege keep-alive. It is safe to call more than once.
func (h *Harness) Close() {
	if h.closed {
		return
	}
	h.closed = true
	if h.privilege != nil {
		h.privilege.Stop()
	}
}

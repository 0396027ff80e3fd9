package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/stretchr/testify/mock"
)

const sinkPath = "/tmp/rigup-test.log"

type memorySink struct {
	bytes.Buffer
}

func (s *memorySink) Path() string { return sinkPath }

func (s *memorySink) Section(name string, _ time.Time) {
	fmt.Fprintf(&s.Buffer, "==> %s\n", name)
}

type recordingConsole struct {
	mu     sync.Mutex
	lines  []string
	mirror io.Writer
}

func (c *recordingConsole) add(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func (c *recordingConsole) NotApplicable(task, reason string) { c.add("n/a %s (%s)", task, reason) }
func (c *recordingConsole) AlreadyPresent(task string)        { c.add("skip %s", task) }
func (c *recordingConsole) Begin(task string)                 { c.add("begin %s", task) }
func (c *recordingConsole) Applied(task string, _ time.Duration) {
	c.add("ok %s", task)
}
func (c *recordingConsole) Failed(task, detail string, code int, logPath string) {
	c.add("fail %s exit=%d log=%s", task, code, logPath)
}
func (c *recordingConsole) Output() io.Writer { return c.mirror }

func (c *recordingConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

type mockEscalator struct {
	mock.Mock
}

func (m *mockEscalator) Ensure(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockEscalator) Stop() {
	m.Called()
}

// countingAction counts runs and writes a line of output
type countingAction struct {
	runs   int
	output string
	err    error
	after  func()
}

func (a *countingAction) Run(_ context.Context, out io.Writer) error {
	a.runs++
	if a.output != "" {
		fmt.Fprintln(out, a.output)
	}
	if a.after != nil {
		a.after()
	}
	return a.err
}

func present(v bool) types.Probe {
	return types.ProbeFunc(func(context.Context) (bool, error) { return v, nil })
}

func guard(ok bool, reason string) types.Guard {
	return types.GuardFunc(func(context.Context) (bool, string) { return ok, reason })
}

type exitErr struct{ code int }

func (e exitErr) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e exitErr) ExitCode() int { return e.code }

func newHarness(console *recordingConsole, sink *memorySink, esc Escalator) *Harness {
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return New(Options{
		Console:   console,
		Sink:      sink,
		Privilege: esc,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
}

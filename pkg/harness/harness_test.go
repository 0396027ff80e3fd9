package harness

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var ctx = context.Background()

func TestEvaluateAlreadyPresent(t *testing.T) {
	console, sink := &recordingConsole{}, &memorySink{}
	h := newHarness(console, sink, nil)
	action := &countingAction{}

	outcome := h.Evaluate(ctx, types.Task{Name: "Git", Probe: present(true), Action: action})

	assert.Equal(t, types.OutcomeAlreadyPresent, outcome.Kind())
	assert.Equal(t, 0, action.runs)
	assert.Equal(t, []string{"skip Git"}, console.Lines())

	b := h.Finalize().Buckets()
	assert.Len(t, b.AlreadyPresent, 1)
	assert.Equal(t, 1, b.Total())
}

func TestEvaluateApplied(t *testing.T) {
	console, sink := &recordingConsole{}, &memorySink{}
	h := newHarness(console, sink, nil)
	action := &countingAction{output: "Setting up gh (2.62.0)"}

	outcome := h.Evaluate(ctx, types.Task{Name: "GitHub CLI", Probe: present(false), Action: action})

	assert.Equal(t, types.OutcomeApplied, outcome.Kind())
	assert.Equal(t, 1, action.runs)
	assert.Equal(t, []string{"begin GitHub CLI", "ok GitHub CLI"}, console.Lines())
	assert.Contains(t, sink.String(), "==> GitHub CLI\nSetting up gh (2.62.0)\n")
	assert.Positive(t, outcome.Duration())
}

func TestEvaluateFailedReferencesLog(t *testing.T) {
	console, sink := &recordingConsole{}, &memorySink{}
	h := newHarness(console, sink, nil)

	outcome := h.Evaluate(ctx, types.Task{
		Name:   "Widget",
		Probe:  present(false),
		Action: &countingAction{output: "E: Unable to locate package widget", err: exitErr{code: 1}},
	})

	assert.Equal(t, types.OutcomeFailed, outcome.Kind())
	assert.Equal(t, 1, outcome.ExitCode())
	assert.Equal(t, []string{"begin Widget", "fail Widget exit=1 log=" + sinkPath}, console.Lines())
	assert.Contains(t, sink.String(), "E: Unable to locate package widget")
	assert.Contains(t, sink.String(), "!! Widget failed")
}

func TestEvaluateGuardPrecedence(t *testing.T) {
	for _, probeResult := range []bool{true, false} {
		t.Run(fmt.Sprintf("probe=%v", probeResult), func(t *testing.T) {
			console, sink := &recordingConsole{}, &memorySink{}
			h := newHarness(console, sink, nil)
			action := &countingAction{}
			probed := false

			outcome := h.Evaluate(ctx, types.Task{
				Name:  "GPU Driver",
				Guard: guard(false, "no nvidia hardware detected"),
				Probe: types.ProbeFunc(func(context.Context) (bool, error) {
					probed = true
					return probeResult, nil
				}),
				Action: action,
			})

			assert.Equal(t, types.OutcomeNotApplicable, outcome.Kind())
			assert.Equal(t, "no nvidia hardware detected", outcome.Detail())
			assert.Equal(t, 0, action.runs)
			assert.False(t, probed)
			assert.Equal(t, []string{"n/a GPU Driver (no nvidia hardware detected)"}, console.Lines())

			b := h.Finalize().Buckets()
			assert.Len(t, b.NotApplicable, 1)
			assert.Equal(t, 1, b.Total())
		})
	}
}

func TestEvaluateGuardPasses(t *testing.T) {
	h := newHarness(&recordingConsole{}, &memorySink{}, nil)
	action := &countingAction{}

	outcome := h.Evaluate(ctx, types.Task{Name: "VS Code", Guard: guard(true, ""), Probe: present(false), Action: action})

	assert.Equal(t, types.OutcomeApplied, outcome.Kind())
	assert.Equal(t, 1, action.runs)
}

func TestEvaluateProbeAmbiguityIsFailure(t *testing.T) {
	console, sink := &recordingConsole{}, &memorySink{}
	h := newHarness(console, sink, nil)
	action := &countingAction{}

	outcome := h.Evaluate(ctx, types.Task{
		Name: "Dark mode",
		Probe: types.ProbeFunc(func(context.Context) (bool, error) {
			return false, stderrors.New("dbus unavailable")
		}),
		Action: action,
	})

	assert.Equal(t, types.OutcomeFailed, outcome.Kind())
	assert.Contains(t, outcome.Detail(), "dbus unavailable")
	assert.Equal(t, types.NoExitCode, outcome.ExitCode())
	assert.Equal(t, 0, action.runs)
	assert.Equal(t, []string{fmt.Sprintf("fail Dark mode exit=-1 log=%s", sinkPath)}, console.Lines())
}

func TestEvaluateWithoutActionFails(t *testing.T) {
	h := newHarness(&recordingConsole{}, &memorySink{}, nil)

	outcome := h.Evaluate(ctx, types.Task{Name: "Empty", Probe: present(false)})

	assert.Equal(t, types.OutcomeFailed, outcome.Kind())
	assert.Equal(t, "no action defined", outcome.Detail())
}

func TestEvaluateIdempotence(t *testing.T) {
	installed := false
	action := &countingAction{after: func() { installed = true }}
	task := types.Task{
		Name:   "ripgrep",
		Probe:  types.ProbeFunc(func(context.Context) (bool, error) { return installed, nil }),
		Action: action,
	}

	first := newHarness(&recordingConsole{}, &memorySink{}, nil)
	assert.Equal(t, types.OutcomeApplied, first.Evaluate(ctx, task).Kind())

	// A second run re-derives state from the environment.
	second := newHarness(&recordingConsole{}, &memorySink{}, nil)
	assert.Equal(t, types.OutcomeAlreadyPresent, second.Evaluate(ctx, task).Kind())

	// Same harness, evaluated again.
	assert.Equal(t, types.OutcomeAlreadyPresent, first.Evaluate(ctx, task).Kind())
	assert.Equal(t, 1, action.runs)
}

func TestEvaluateMirrorsOutputWhenConsoleAsks(t *testing.T) {
	var mirror bytes.Buffer
	console, sink := &recordingConsole{mirror: &mirror}, &memorySink{}
	h := newHarness(console, sink, nil)

	h.Evaluate(ctx, types.Task{Name: "curl", Probe: present(false), Action: &countingAction{output: "Unpacking curl"}})

	assert.Contains(t, mirror.String(), "Unpacking curl")
	assert.Contains(t, sink.String(), "Unpacking curl")
}

func TestPrivilegedTaskEnsuresSession(t *testing.T) {
	esc := &mockEscalator{}
	esc.On("Ensure", mock.Anything).Return(nil).Twice()
	esc.On("Stop").Return().Once()

	h := newHarness(&recordingConsole{}, &memorySink{}, esc)
	h.Evaluate(ctx, types.Task{Name: "Docker", Probe: present(false), Action: &countingAction{}, Privileged: true})
	h.Evaluate(ctx, types.Task{Name: "Git", Probe: present(true), Action: &countingAction{}, Privileged: true})
	h.Evaluate(ctx, types.Task{Name: "gh", Probe: present(false), Action: &countingAction{}, Privileged: true})
	h.Evaluate(ctx, types.Task{Name: "rustup", Probe: present(false), Action: &countingAction{}})
	h.Close()
	h.Close()

	esc.AssertExpectations(t)
}

func TestPrivilegeFailureFailsTask(t *testing.T) {
	esc := &mockEscalator{}
	esc.On("Ensure", mock.Anything).Return(errors.New(errors.ErrPrivilege, "no terminal")).Once()

	action := &countingAction{}
	h := newHarness(&recordingConsole{}, &memorySink{}, esc)
	outcome := h.Evaluate(ctx, types.Task{Name: "Docker", Probe: present(false), Action: action, Privileged: true})

	assert.Equal(t, types.OutcomeFailed, outcome.Kind())
	assert.Contains(t, outcome.Detail(), "no terminal")
	assert.Equal(t, 0, action.runs)
	esc.AssertExpectations(t)
}

func TestCloseWithoutPrivilege(t *testing.T) {
	h := newHarness(&recordingConsole{}, &memorySink{}, nil)
	assert.NotPanics(t, h.Close)
}

package console

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestPlainLines(t *testing.T) {
	var out bytes.Buffer
	c := New(Options{Format: ui.FormatText, Out: &out, Err: os.Stderr})

	c.NotApplicable("NVIDIA driver", "no nvidia hardware detected")
	c.AlreadyPresent("Git")
	c.Begin("Docker Engine")
	c.Applied("Docker Engine", 1500*time.Millisecond)
	c.Begin("Slack")
	c.Failed("Slack", "exit status 1", 1, "/tmp/rigup.log")

	assert.Equal(t, `[skip] NVIDIA driver: no nvidia hardware detected
[ok] Git: already present
[run] Docker Engine
[done] Docker Engine (1.5s)
[run] Slack
[fail] Slack: exit status 1 (exit 1), see /tmp/rigup.log
`, out.String())
	assert.Same(t, &out, c.Output())
}

func TestJSONModeUsesStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New(Options{Format: ui.FormatJSON, Out: &out, Err: &errOut})

	c.AlreadyPresent("Git")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ok] Git: already present\n", errOut.String())
	assert.Nil(t, c.Output())
}

func TestRichWithoutSpinner(t *testing.T) {
	var out bytes.Buffer
	c := New(Options{Format: ui.FormatTerminal, Out: &out})

	c.AlreadyPresent("Git")
	c.Begin("zsh")
	c.Applied("zsh", 2*time.Second)
	c.Begin("Slack")
	c.Failed("Slack", "snap failed", types.NoExitCode, "")

	text := out.String()
	assert.Contains(t, text, "Git")
	assert.Contains(t, text, "already present")
	assert.Contains(t, text, "installed")
	assert.Contains(t, text, "Slack: snap failed")
	assert.Nil(t, c.Output())
}

func TestFailureLine(t *testing.T) {
	assert.Equal(t, "Git: boom", FailureLine("Git", "boom", types.NoExitCode, ""))
	assert.Equal(t, "Git: boom (exit 100), see /tmp/x.log", FailureLine("Git", "boom", 100, "/tmp/x.log"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250*time.Millisecond + 400*time.Microsecond, "250ms"},
		{1540 * time.Millisecond, "1.5s"},
		{90*time.Second + 400*time.Millisecond, "1m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}

package summary

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/rigup/pkg/harness"
	"github.com/arthur-debert/rigup/pkg/report"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() report.Report {
	var r report.Report
	r = r.Append("Git", types.AlreadyPresent())
	r = r.Append("Docker Engine", types.Applied(1500*time.Millisecond))
	r = r.Append("NVIDIA driver", types.NotApplicable("no nvidia hardware detected"))
	r = r.Append("Slack", types.Failed("exit status 1", 1, time.Second))
	r = r.Append("zsh", types.AlreadyPresent())
	return r
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), Options{Format: ui.FormatText, LogPath: "/tmp/rigup-x.log"})
	require.NoError(t, err)

	assert.Equal(t, `
Summary
  Installed (1)
    - Docker Engine (1.5s)
  Already present (2)
    - Git
    - zsh
  Not applicable (1)
    - NVIDIA driver: no nvidia hardware detected
  Failed (1)
    - Slack: exit status 1 (exit 1)

Full log: /tmp/rigup-x.log
`, buf.String())
}

func TestRenderTextOmitsEmptyBucketsAndLog(t *testing.T) {
	var r report.Report
	r = r.Append("Git", types.AlreadyPresent())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, Options{Format: ui.FormatText, LogPath: "/tmp/x.log"}))

	assert.Equal(t, "\nSummary\n  Already present (1)\n    - Git\n", buf.String())
}

func TestRenderTextEmptyWithNote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report.Report{}, Options{Format: ui.FormatText, Note: "Run interrupted."}))

	assert.Equal(t, "\nSummary\n  No tasks were evaluated.\n\nRun interrupted.\n", buf.String())
}

func TestRenderRich(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: ui.FormatTerminal, LogPath: "/tmp/rigup-x.log"}))

	out := buf.String()
	for _, want := range []string{"Summary", "Installed", "Already present", "Not applicable", "Failed", "Docker Engine (1.5s)", "/tmp/rigup-x.log"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Installed")), bytes.Index(buf.Bytes(), []byte("Failed")))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: ui.FormatJSON, LogPath: "/tmp/rigup-x.log"}))

	var got struct {
		Applied []struct {
			Task       string `json:"task"`
			DurationMS int64  `json:"duration_ms"`
		} `json:"applied"`
		AlreadyPresent []struct {
			Task string `json:"task"`
		} `json:"already_present"`
		Failed []struct {
			Task     string `json:"task"`
			ExitCode *int   `json:"exit_code"`
		} `json:"failed"`
		Counts map[string]int `json:"counts"`
		Log    string         `json:"log"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Applied, 1)
	assert.Equal(t, int64(1500), got.Applied[0].DurationMS)
	assert.Equal(t, "Git", got.AlreadyPresent[0].Task)
	assert.Equal(t, "zsh", got.AlreadyPresent[1].Task)
	require.NotNil(t, got.Failed[0].ExitCode)
	assert.Equal(t, 1, *got.Failed[0].ExitCode)
	assert.Equal(t, map[string]int{"applied": 1, "already_present": 2, "not_applicable": 1, "failed": 1}, got.Counts)
	assert.Equal(t, "/tmp/rigup-x.log", got.Log)
}

func TestRenderJSONEmptyBucketsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report.Report{}, Options{Format: ui.FormatJSON, LogPath: "/tmp/x.log"}))

	assert.Contains(t, buf.String(), `"applied": []`)
	assert.NotContains(t, buf.String(), `"log"`)
}

func TestRenderPlans(t *testing.T) {
	plans := []harness.Plan{
		{Task: "Git", State: harness.PlanPresent},
		{Task: "Docker Engine", State: harness.PlanPending},
		{Task: "Dark mode", State: harness.PlanNotApplicable, Detail: "no graphical session"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPlans(&buf, plans, ui.FormatText))
	assert.Equal(t, `present  Git
missing  Docker Engine
n/a      Dark mode      no graphical session

1 of 3 tasks would run
`, buf.String())

	buf.Reset()
	require.NoError(t, RenderPlans(&buf, plans, ui.FormatJSON))
	assert.Contains(t, buf.String(), `"state": "pending"`)
}

package markdown

import (
	"strings"
	"testing"

	"github.com/arthur-debert/rigup/pkg/catalog"
	"github.com/arthur-debert/rigup/pkg/testutil"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestCatalogTable(t *testing.T) {
	c := &catalog.Catalog{
		Source: "tasks.toml",
		Entries: []catalog.Entry{
			{
				Name:         "Base packages",
				Prerequisite: true,
				Probe:        catalog.ProbeSpec{Package: "build-essential"},
				Action:       catalog.ActionSpec{Apt: []string{"build-essential"}},
			},
			{
				Name:   "Pipe | test",
				Guard:  catalog.GuardSpec{Graphical: true},
				Probe:  catalog.ProbeSpec{Succeeds: []string{"sh", "-c", "a | b"}},
				Action: catalog.ActionSpec{Shell: "echo hi"},
			},
		},
	}

	md := Catalog(c)
	lines := strings.Split(strings.TrimSpace(md), "\n")

	assert.Equal(t, "# Catalog", lines[0])
	assert.Contains(t, md, "Source: tasks.toml, 2 tasks")
	assert.Equal(t,
		"| 1 | **Base packages** _(prerequisite, sudo)_ | package `build-essential` installed | apt install build-essential | always |",
		lines[len(lines)-2])
	assert.Equal(t,
		"| 2 | **Pipe \\| test** | `sh -c a \\| b` succeeds | shell script | graphical session |",
		lines[len(lines)-1])
}

func TestRendererRaw(t *testing.T) {
	r := New(ui.FormatText)
	assert.True(t, r.Raw)
	assert.Equal(t, "# Title\n", r.Markdown("# Title\n"))
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestRendererStyled(t *testing.T) {
	r := &Renderer{Style: "dark", Width: 40}

	in := "# Title\n\nSome text.\n"
	out := r.Render(in, ".md")
	assert.Contains(t, out, "Title")
	assert.NotEqual(t, in, out)

	assert.Equal(t, "# raw", r.Render("# raw", ".txt"))
}

func TestRendererFallsBackOnBadStyle(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	r := &Renderer{Style: t.TempDir() + "/missing-style.json"}

	assert.Equal(t, "# Title\n", r.Markdown("# Title\n"))
	assert.Contains(t, logs.String(), "Falling back to raw markdown")
}

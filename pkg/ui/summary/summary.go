// Package summary renders the end-of-run report, grouped by outcome, and the
// side-effect-free plan shown by the status command.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/rigup/pkg/report"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/arthur-debert/rigup/pkg/ui/console"
	"github.com/arthur-debert/rigup/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
)

// Labels for each bucket, in display order
var Labels = map[types.OutcomeKind]string{
	types.OutcomeApplied:        "Installed",
	types.OutcomeAlreadyPresent: "Already present",
	types.OutcomeNotApplicable:  "Not applicable",
	types.OutcomeFailed:         "Failed",
}

var bucketStyles = map[types.OutcomeKind]string{
	types.OutcomeApplied:        "Applied",
	types.OutcomeAlreadyPresent: "AlreadyPresent",
	types.OutcomeNotApplicable:  "NotApplicable",
	types.OutcomeFailed:         "Failed",
}

// Options controls summary rendering
type Options struct {
	Format ui.Format

	// LogPath is shown when any task failed
	LogPath string

	// Note is an extra closing line, such as why the run stopped early
	Note string
}

// Render writes the report to w. Empty buckets are omitted.
func Render(w io.Writer, r report.Report, opts Options) error {
	switch opts.Format {
	case ui.FormatJSON:
		return renderJSON(w, r, opts)
	case ui.FormatTerminal:
		_, err := io.WriteString(w, renderRich(r, opts))
		return err
	default:
		_, err := io.WriteString(w, renderText(r, opts))
		return err
	}
}

func entryLine(e report.Entry) string {
	o := e.Outcome
	switch o.Kind() {
	case types.OutcomeApplied:
		return fmt.Sprintf("%s (%s)", e.Task, console.FormatDuration(o.Duration()))
	case types.OutcomeNotApplicable:
		return fmt.Sprintf("%s: %s", e.Task, o.Detail())
	case types.OutcomeFailed:
		return console.FailureLine(e.Task, o.Detail(), o.ExitCode(), "")
	default:
		return e.Task
	}
}

func renderText(r report.Report, opts Options) string {
	var b strings.Builder
	b.WriteString("\nSummary\n")

	buckets := r.Buckets()
	if buckets.Total() == 0 {
		b.WriteString("  No tasks were evaluated.\n")
	}
	for _, kind := range types.Kinds {
		entries := buckets.Get(kind)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s (%d)\n", Labels[kind], len(entries))
		for _, e := range entries {
			fmt.Fprintf(&b, "    - %s\n", entryLine(e))
		}
	}

	if opts.Note != "" {
		fmt.Fprintf(&b, "\n%s\n", opts.Note)
	}
	if r.HasFailures() && opts.LogPath != "" {
		fmt.Fprintf(&b, "\nFull log: %s\n", opts.LogPath)
	}
	return b.String()
}

func renderRich(r report.Report, opts Options) string {
	blocks := []string{styles.Render("Header", "Summary")}

	buckets := r.Buckets()
	if buckets.Total() == 0 {
		blocks = append(blocks, styles.Render("MutedItalic", "No tasks were evaluated."))
	}
	for _, kind := range types.Kinds {
		entries := buckets.Get(kind)
		if len(entries) == 0 {
			continue
		}
		lines := []string{
			styles.Render(bucketStyles[kind], Labels[kind]) + " " + styles.Render("Count", fmt.Sprintf("(%d)", len(entries))),
		}
		for _, e := range entries {
			lines = append(lines, "  • "+entryLine(e))
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	if opts.Note != "" {
		blocks = append(blocks, styles.Render("Warning", opts.Note))
	}
	if r.HasFailures() && opts.LogPath != "" {
		blocks = append(blocks, styles.Render("Muted", "Full log: ")+styles.Render("FilePath", opts.LogPath))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

type jsonEntry struct {
	Task       string `json:"task"`
	Detail     string `json:"detail,omitempty"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// jsonSummary keeps every bucket as an array, empty or not, so consumers
// see one fixed schema. Only the text and rich forms omit empty buckets.
type jsonSummary struct {
	Applied        []jsonEntry    `json:"applied"`
	AlreadyPresent []jsonEntry    `json:"already_present"`
	NotApplicable  []jsonEntry    `json:"not_applicable"`
	Failed         []jsonEntry    `json:"failed"`
	Counts         map[string]int `json:"counts"`
	Log            string         `json:"log,omitempty"`
	Note           string         `json:"note,omitempty"`
}

func toJSON(entries []report.Entry) []jsonEntry {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		o := e.Outcome
		je := jsonEntry{Task: e.Task, Detail: o.Detail(), DurationMS: o.Duration().Milliseconds()}
		if code := o.ExitCode(); code != types.NoExitCode {
			je.ExitCode = &code
		}
		out = append(out, je)
	}
	return out
}

func renderJSON(w io.Writer, r report.Report, opts Options) error {
	b := r.Buckets()
	s := jsonSummary{
		Applied:        toJSON(b.Applied),
		AlreadyPresent: toJSON(b.AlreadyPresent),
		NotApplicable:  toJSON(b.NotApplicable),
		Failed:         toJSON(b.Failed),
		Counts:         make(map[string]int, len(types.Kinds)),
		Note:           opts.Note,
	}
	for _, kind := range types.Kinds {
		s.Counts[string(kind)] = len(b.Get(kind))
	}
	if r.HasFailures() {
		s.Log = opts.LogPath
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

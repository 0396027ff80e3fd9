// Package console prints the condensed per-task status lines of a run.
//
// Terminal mode shows a pterm spinner while an action runs and keeps raw
// action output in the log sink only. Text mode prints tagged lines and
// mirrors action output so that piped runs keep a full transcript.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/arthur-debert/rigup/pkg/ui/output/styles"
	"github.com/pterm/pterm"
)

// Console receives one status line per task. It satisfies harness.Console.
type Console interface {
	NotApplicable(task, reason string)
	AlreadyPresent(task string)
	Begin(task string)
	Applied(task string, d time.Duration)
	Failed(task, detail string, exitCode int, logPath string)
	Output() io.Writer
}

// Options selects the console flavour
type Options struct {
	// Format must already be resolved; FormatAuto is treated as text
	Format ui.Format

	// Out receives status lines in terminal and text mode
	Out io.Writer

	// Err receives status lines in JSON mode so Out stays machine-readable
	Err io.Writer

	// Spinner animates running actions in terminal mode
	Spinner bool
}

// New returns the console for opts
func New(opts Options) Console {
	switch opts.Format {
	case ui.FormatTerminal:
		return &Rich{out: opts.Out, spinner: opts.Spinner}
	case ui.FormatJSON:
		return &Plain{out: opts.Err}
	default:
		return &Plain{out: opts.Out, mirror: true}
	}
}

// Plain writes tagged lines such as "[done] Git (2.1s)"
type Plain struct {
	mu     sync.Mutex
	out    io.Writer
	mirror bool
}

func (p *Plain) line(tag, format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
}

// NotApplicable implements Console
func (p *Plain) NotApplicable(task, reason string) {
	p.line("skip", "%s: %s", task, reason)
}

// AlreadyPresent implements Console
func (p *Plain) AlreadyPresent(task string) {
	p.line("ok", "%s: already present", task)
}

// Begin implements Console
func (p *Plain) Begin(task string) {
	p.line("run", "%s", task)
}

// Applied implements Console
func (p *Plain) Applied(task string, d time.Duration) {
	p.line("done", "%s (%s)", task, FormatDuration(d))
}

// Failed implements Console
func (p *Plain) Failed(task, detail string, exitCode int, logPath string) {
	p.line("fail", "%s", FailureLine(task, detail, exitCode, logPath))
}

// Output mirrors action output in text mode only
func (p *Plain) Output() io.Writer {
	if !p.mirror {
		return nil
	}
	return p.out
}

// Rich renders styled lines with pterm prefixes and an optional spinner
type Rich struct {
	mu      sync.Mutex
	out     io.Writer
	spinner bool
	active  *pterm.SpinnerPrinter
}

// NotApplicable implements Console
func (r *Rich) NotApplicable(task, reason string) {
	pterm.Info.WithWriter(r.out).Println(
		styles.Render("TaskName", task) + " " + styles.Render("NotApplicable", "not applicable: "+reason))
}

// AlreadyPresent implements Console
func (r *Rich) AlreadyPresent(task string) {
	pterm.Success.WithWriter(r.out).Println(
		styles.Render("TaskName", task) + " " + styles.Render("Muted", "already present"))
}

// Begin implements Console
func (r *Rich) Begin(task string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.spinner {
		pterm.Info.WithWriter(r.out).Println(styles.Render("TaskName", task) + " " + styles.Render("Muted", "installing"))
		return
	}
	sp, err := pterm.DefaultSpinner.
		WithWriter(r.out).
		WithRemoveWhenDone(false).
		Start(styles.Render("TaskName", task) + " " + styles.Render("Muted", "installing"))
	if err == nil {
		r.active = sp
	}
}

// Applied implements Console
func (r *Rich) Applied(task string, d time.Duration) {
	msg := styles.Render("TaskName", task) + " " + styles.Render("Applied", "installed") +
		" " + styles.Render("Count", "("+FormatDuration(d)+")")
	if sp := r.stop(); sp != nil {
		sp.Success(msg)
		return
	}
	pterm.Success.WithWriter(r.out).Println(msg)
}

// Failed implements Console
func (r *Rich) Failed(task, detail string, exitCode int, logPath string) {
	msg := styles.Render("Failed", FailureLine(task, detail, exitCode, logPath))
	if sp := r.stop(); sp != nil {
		sp.Fail(msg)
		return
	}
	pterm.Error.WithWriter(r.out).Println(msg)
}

// Output keeps action output out of the terminal
func (r *Rich) Output() io.Writer { return nil }

func (r *Rich) stop() *pterm.SpinnerPrinter {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp := r.active
	r.active = nil
	return sp
}

// FailureLine condenses a failure into one line
func FailureLine(task, detail string, exitCode int, logPath string) string {
	s := task + ": " + detail
	if exitCode != types.NoExitCode {
		s += fmt.Sprintf(" (exit %d)", exitCode)
	}
	if logPath != "" {
		s += ", see " + logPath
	}
	return s
}

// FormatDuration rounds d for display
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

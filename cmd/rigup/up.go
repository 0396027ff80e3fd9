package rigup

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/rigup/pkg/actions"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/harness"
	"github.com/arthur-debert/rigup/pkg/lock"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/privilege"
	"github.com/arthur-debert/rigup/pkg/report"
	"github.com/arthur-debert/rigup/pkg/ui/console"
	"github.com/arthur-debert/rigup/pkg/ui/summary"
	"github.com/spf13/cobra"
)

func (c *cli) newUpCmd() *cobra.Command {
	var (
		strict      bool
		catalogPath string
		only        []string
		skip        []string
	)

	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("strict") {
				cfg.Run.Strict = strict
			}
			if flags.Changed("catalog") {
				cfg.Run.Catalog = catalogPath
			}
			if flags.Changed("only") {
				cfg.Run.Only = only
			}
			if flags.Changed("skip") {
				cfg.Run.Skip = skip
			}
			return c.runUp(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	cmd.Flags().StringVar(&catalogPath, "catalog", "", MsgFlagCatalog)
	cmd.Flags().StringSliceVar(&only, "only", nil, MsgFlagOnly)
	cmd.Flags().StringSliceVar(&skip, "skip", nil, MsgFlagSkip)
	_ = cmd.RegisterFlagCompletionFunc("only", c.taskNames)
	_ = cmd.RegisterFlagCompletionFunc("skip", c.taskNames)

	return cmd
}

// runUp performs one provisioning run. The summary is printed on every path
// that reaches the harness, and temp files, the keep-alive, the sink and the
// lock are released on every path.
func (c *cli) runUp(parent context.Context) error {
	logger := logging.GetLogger("up")
	cfg := c.cfg

	format, err := c.outputFormat(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid output format")
	}
	cat, err := c.loadCatalog(cfg)
	if err != nil {
		return err
	}

	runLock := lock.New(c.appPaths().LockPath())
	if err := runLock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if uerr := runLock.Unlock(); uerr != nil {
			logger.Warn().Err(uerr).Msg("Failed to release run lock")
		}
	}()

	sink, err := logging.NewSink(paths.ExpandHome(cfg.Logging.Dir), c.app.Now())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot create run log")
	}
	defer func() { _ = sink.Close() }()
	defer func() {
		if cerr := c.app.Registry.Cleanup(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Some temporary files could not be removed")
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	isRoot := c.app.IsRoot()
	session := privilege.New(privilege.Options{
		Runner:      c.app.Runner,
		Command:     cfg.Privilege.Command,
		Interval:    cfg.Privilege.Keepalive,
		Interactive: c.app.Interactive,
		Root:        c.app.IsRoot,
	})
	h := harness.New(harness.Options{
		Console: console.New(console.Options{
			Format:  format,
			Out:     c.app.Stdout,
			Err:     c.app.Stderr,
			Spinner: cfg.Output.Spinner,
		}),
		Sink:      sink,
		Privilege: session,
		Now:       c.app.Now,
	})
	defer h.Close()

	builder := actions.NewBuilder(c.app.Runner, c.app.Registry, isRoot)
	builder.Via = cfg.Privilege.Command
	tasks := cat.Build(c.app.Env, builder)

	logger.Info().
		Str("catalog", cat.Source).
		Int("tasks", len(tasks)).
		Str("log", sink.Path()).
		Msg("Starting run")

	rep, runErr := h.Run(ctx, tasks)
	// Stop the keep-alive before printing so no sudo refresh interleaves
	// with the summary
	h.Close()

	note, runErr := c.conclude(rep, runErr, cfg.Run.Strict)
	if rerr := summary.Render(c.app.Stdout, rep, summary.Options{
		Format:  format,
		LogPath: sink.Path(),
		Note:    note,
	}); rerr != nil {
		logger.Warn().Err(rerr).Msg("Failed to render summary")
	}
	return runErr
}

// conclude applies the exit policy to a finished run and returns the note
// shown under the summary
func (c *cli) conclude(rep report.Report, runErr error, strict bool) (string, error) {
	switch {
	case errors.IsErrorCode(runErr, errors.ErrPrerequisite):
		task, _ := errors.GetErrorDetails(runErr)["task"].(string)
		return fmt.Sprintf(MsgNotePrerequisite, task), runErr
	case errors.IsErrorCode(runErr, errors.ErrInterrupted):
		remaining, _ := errors.GetErrorDetails(runErr)["remaining"].(int)
		return fmt.Sprintf(MsgNoteInterrupted, remaining), runErr
	case runErr != nil:
		return "", runErr
	}

	if failed := len(rep.Buckets().Failed); failed > 0 && strict {
		return fmt.Sprintf(MsgNoteStrict, failed), errors.Newf(errors.ErrTaskFailed, "%d task(s) failed", failed).
			WithDetail("failed", failed)
	}
	return "", nil
}

// Package actions builds the typed actions tasks run when their goal is not
// yet present. Every action writes its full output to the writer it is given.
package actions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arthur-debert/rigup/pkg/cleanup"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/executor"
	"github.com/arthur-debert/rigup/pkg/types"
)

// FilePlaceholder is replaced by the downloaded file's path in Download argv
const FilePlaceholder = "{file}"

// Builder creates actions bound to a runner and temp registry
type Builder struct {
	Runner   executor.Runner
	Registry *cleanup.Registry
	Client   *http.Client

	// Root is true when the process already runs as root, so privileged
	// commands need no sudo prefix
	Root bool

	// Via is the sudo-compatible escalation binary, "sudo" when empty
	Via string
}

// NewBuilder returns a builder using the default HTTP client settings
func NewBuilder(runner executor.Runner, registry *cleanup.Registry, root bool) *Builder {
	return &Builder{
		Runner:   runner,
		Registry: registry,
		Client:   &http.Client{Timeout: 10 * time.Minute},
		Root:     root,
	}
}

func (b *Builder) command(cmd executor.Command, privileged bool) executor.Command {
	if privileged {
		return executor.ElevateWith(cmd, b.Via, b.Root)
	}
	return cmd
}

// Command runs argv
func (b *Builder) Command(argv []string, privileged bool) types.Action {
	cmd := b.command(executor.Command{Name: argv[0], Args: argv[1:]}, privileged)
	return types.ActionFunc(func(ctx context.Context, out io.Writer) error {
		return b.Runner.Run(ctx, cmd, out)
	})
}

// Shell runs script with sh -c
func (b *Builder) Shell(script string, privileged bool) types.Action {
	return b.Command([]string{"sh", "-c", script}, privileged)
}

// AptInstall installs packages non-interactively, refreshing the package
// index first when update is set
func (b *Builder) AptInstall(packages []string, update bool) types.Action {
	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	install := b.command(executor.Command{
		Name: "apt-get",
		Args: append([]string{"install", "-y"}, packages...),
		Env:  env,
	}, true)

	steps := []executor.Command{install}
	if update {
		refresh := b.command(executor.Command{Name: "apt-get", Args: []string{"update"}, Env: env}, true)
		steps = []executor.Command{refresh, install}
	}

	return types.ActionFunc(func(ctx context.Context, out io.Writer) error {
		for _, step := range steps {
			if err := b.Runner.Run(ctx, step, out); err != nil {
				return err
			}
		}
		return nil
	})
}

// SettingSet writes a gsettings key in the user's session
func (b *Builder) SettingSet(schema, key, value string) types.Action {
	cmd := executor.Command{Name: "gsettings", Args: []string{"set", schema, key, value}}
	return types.ActionFunc(func(ctx context.Context, out io.Writer) error {
		return b.Runner.Run(ctx, cmd, out)
	})
}

// Download fetches url into a tracked temporary file, then runs then with
// every {file} replaced by that file's path
func (b *Builder) Download(url string, then []string, privileged bool) types.Action {
	return types.ActionFunc(func(ctx context.Context, out io.Writer) error {
		path, err := b.fetch(ctx, url, out)
		if err != nil {
			return err
		}

		argv := make([]string, len(then))
		for i, arg := range then {
			argv[i] = strings.ReplaceAll(arg, FilePlaceholder, path)
		}
		cmd := b.command(executor.Command{Name: argv[0], Args: argv[1:]}, privileged)
		return b.Runner.Run(ctx, cmd, out)
	})
}

func (b *Builder) fetch(ctx context.Context, url string, out io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid download URL %s", url)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(err, errors.ErrInterrupted, "download interrupted")
		}
		return "", errors.Wrapf(err, errors.ErrDownloadFailed, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf(errors.ErrDownloadFailed, "failed to download %s: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	f, err := b.Registry.TempFile("rigup-download-*")
	if err != nil {
		return "", err
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDownloadFailed, "failed to save %s", url)
	}

	fmt.Fprintf(out, "downloaded %d bytes from %s to %s\n", n, url, f.Name())
	return f.Name(), nil
}

// Sequence runs actions in order and stops at the first failure
func Sequence(steps ...types.Action) types.Action {
	return types.ActionFunc(func(ctx context.Context, out io.Writer) error {
		for _, step := range steps {
			if err := step.Run(ctx, out); err != nil {
				return err
			}
		}
		return nil
	})
}

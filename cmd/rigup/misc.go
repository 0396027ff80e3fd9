package rigup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/internal/version"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Shells lists the completion targets, with the file name each is packaged as
var Shells = map[string]string{
	"bash":       "rigup.bash",
	"zsh":        "_rigup",
	"fish":       "rigup.fish",
	"powershell": "rigup.ps1",
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenMan(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q", shell).
			WithDetail("supported", "bash, zsh, fish, powershell")
	}
}

// GenMan writes the rigup(1) man page
func GenMan(root *cobra.Command, w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "RIGUP",
		Section: "1",
		Source:  "rigup " + version.Version,
		Manual:  "rigup manual",
	}
	return doc.GenMan(root, header, w)
}

// WriteArtifacts writes the man page and every completion script into dir,
// creating it if needed. It returns the paths written.
func WriteArtifacts(root *cobra.Command, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", dir)
	}

	var written []string
	write := func(name string, gen func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", path)
		}
		if err := gen(f); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, errors.ErrInternal, "cannot generate %s", name)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
		}
		written = append(written, path)
		return nil
	}

	if err := write("rigup.1", func(w io.Writer) error { return GenMan(root, w) }); err != nil {
		return written, err
	}
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		shell := shell
		if err := write(Shells[shell], func(w io.Writer) error { return GenCompletion(root, shell, w) }); err != nil {
			return written, err
		}
	}
	return written, nil
}

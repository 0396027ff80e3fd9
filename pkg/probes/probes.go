package probes

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/executor"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/types"
)

// CommandOnPath is present when bin resolves on the search path
func CommandOnPath(env Env, bin string) types.Probe {
	return types.ProbeFunc(func(context.Context) (bool, error) {
		_, err := env.LookPath(bin)
		return err == nil, nil
	})
}

// PathExists is present when path exists; a leading ~ is expanded
func PathExists(env Env, path string) types.Probe {
	target := paths.ExpandHome(path)
	return types.ProbeFunc(func(context.Context) (bool, error) {
		_, err := env.Stat(target)
		switch {
		case err == nil:
			return true, nil
		case stderrors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return false, errors.Wrapf(err, errors.ErrProbeAmbiguous, "cannot stat %s", target)
		}
	})
}

// PackageInstalled is present when dpkg reports pkg as installed
func PackageInstalled(env Env, pkg string) types.Probe {
	return types.ProbeFunc(func(ctx context.Context) (bool, error) {
		if _, err := env.LookPath("dpkg-query"); err != nil {
			return false, errors.New(errors.ErrProbeAmbiguous, "dpkg-query is not available")
		}

		out, err := env.Output(ctx, executor.Command{
			Name: "dpkg-query",
			Args: []string{"-W", "-f=${Status}", pkg},
		})
		if err != nil {
			// dpkg-query exits 1 for unknown packages; 2 is a fatal error
			if code, ok := errors.ExitCode(err); ok && code == 1 {
				return false, nil
			}
			return false, errors.Wrapf(err, errors.ErrProbeAmbiguous, "cannot query package %s", pkg)
		}
		return bytes.Contains(out, []byte("install ok installed")), nil
	})
}

// SettingEquals is present when gsettings reports want for schema/key.
// An unreachable settings daemon or unknown schema is ambiguous, never
// silently treated as absent.
func SettingEquals(env Env, schema, key, want string) types.Probe {
	return types.ProbeFunc(func(ctx context.Context) (bool, error) {
		out, err := env.Output(ctx, executor.Command{
			Name: "gsettings",
			Args: []string{"get", schema, key},
		})
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrProbeAmbiguous, "cannot read setting %s %s", schema, key)
		}
		return NormalizeSetting(string(out)) == NormalizeSetting(want), nil
	})
}

// NormalizeSetting strips whitespace and GVariant string quoting
func NormalizeSetting(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		v = v[1 : len(v)-1]
	}
	return v
}

// CommandSucceeds is present when argv exits zero. A command that cannot be
// started at all is ambiguous.
func CommandSucceeds(env Env, argv []string) types.Probe {
	return types.ProbeFunc(func(ctx context.Context) (bool, error) {
		if len(argv) == 0 {
			return false, errors.New(errors.ErrInvalidInput, "empty probe command")
		}
		_, err := env.Output(ctx, executor.Command{Name: argv[0], Args: argv[1:]})
		if err == nil {
			return true, nil
		}
		if _, ok := errors.ExitCode(err); ok {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrProbeAmbiguous, "cannot run %s", argv[0])
	})
}

// AnyOf is present when any probe is present. Errors only surface when no
// probe reported presence.
func AnyOf(probes ...types.Probe) types.Probe {
	return types.ProbeFunc(func(ctx context.Context) (bool, error) {
		var firstErr error
		for _, p := range probes {
			ok, err := p.Check(ctx)
			if ok {
				return true, nil
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return false, firstErr
	})
}

package probes

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/rigup/pkg/executor"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/types"
)

// GraphicalSession applies when an X11 or Wayland session is active
func GraphicalSession(env Env) types.Guard {
	return types.GuardFunc(func(context.Context) (bool, string) {
		if env.Getenv("WAYLAND_DISPLAY") != "" || env.Getenv("DISPLAY") != "" {
			return true, ""
		}
		switch env.Getenv("XDG_SESSION_TYPE") {
		case "x11", "wayland":
			return true, ""
		}
		return false, "no graphical session"
	})
}

// HardwarePresent applies when lspci lists a device matching pattern
func HardwarePresent(env Env, pattern string) types.Guard {
	needle := []byte(strings.ToLower(pattern))
	return types.GuardFunc(func(ctx context.Context) (bool, string) {
		out, err := env.Output(ctx, executor.Command{Name: "lspci"})
		if err != nil {
			logger := logging.GetLogger("probes")
			logger.Warn().Err(err).Str("hardware", pattern).Msg("Cannot list PCI devices, hardware guard skips the task")
			return false, "cannot list PCI devices"
		}
		if bytes.Contains(bytes.ToLower(out), needle) {
			return true, ""
		}
		return false, fmt.Sprintf("no %s hardware detected", pattern)
	})
}

var containerMarkers = []string{"docker", "lxc", "kubepods", "containerd"}

// NotInContainer applies outside containers
func NotInContainer(env Env) types.Guard {
	return types.GuardFunc(func(context.Context) (bool, string) {
		const reason = "running inside a container"

		if env.Getenv("container") != "" {
			return false, reason
		}
		for _, marker := range []string{"/.dockerenv", "/run/.containerenv"} {
			if _, err := env.Stat(marker); err == nil {
				return false, reason
			}
		}
		if data, err := env.ReadFile("/proc/1/cgroup"); err == nil {
			content := string(data)
			for _, m := range containerMarkers {
				if strings.Contains(content, m) {
					return false, reason
				}
			}
		}
		return true, ""
	})
}

// EnvSet applies when the environment variable name is non-empty
func EnvSet(env Env, name string) types.Guard {
	return types.GuardFunc(func(context.Context) (bool, string) {
		if env.Getenv(name) != "" {
			return true, ""
		}
		return false, name + " is not set"
	})
}

// AllOf applies when every guard applies; the first rejection's reason wins
func AllOf(guards ...types.Guard) types.Guard {
	return types.GuardFunc(func(ctx context.Context) (bool, string) {
		for _, g := range guards {
			if ok, reason := g.Applies(ctx); !ok {
				return false, reason
			}
		}
		return true, ""
	})
}

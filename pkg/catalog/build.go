package catalog

import (
	"github.com/arthur-debert/rigup/pkg/actions"
	"github.com/arthur-debert/rigup/pkg/probes"
	"github.com/arthur-debert/rigup/pkg/types"
)

// Build maps every entry to a typed task. Probes and guards read the
// system through env; actions run through builder.
func (c *Catalog) Build(env probes.Env, builder *actions.Builder) []types.Task {
	tasks := make([]types.Task, 0, len(c.Entries))
	for _, e := range c.Entries {
		tasks = append(tasks, buildTask(e, env, builder))
	}
	return tasks
}

func buildTask(e Entry, env probes.Env, b *actions.Builder) types.Task {
	return types.Task{
		Name:         e.Name,
		Description:  e.Description,
		Probe:        buildProbe(e.Probe, env),
		Guard:        buildGuard(e.Guard, env),
		Action:       buildAction(e, b),
		Prerequisite: e.Prerequisite,
		Privileged:   e.Privileged || len(e.Action.Apt) > 0,
	}
}

func buildProbe(p ProbeSpec, env probes.Env) types.Probe {
	switch {
	case p.Command != "":
		return probes.CommandOnPath(env, p.Command)
	case len(p.AnyCommand) > 0:
		alts := make([]types.Probe, len(p.AnyCommand))
		for i, bin := range p.AnyCommand {
			alts[i] = probes.CommandOnPath(env, bin)
		}
		return probes.AnyOf(alts...)
	case p.Path != "":
		return probes.PathExists(env, p.Path)
	case p.Package != "":
		return probes.PackageInstalled(env, p.Package)
	case p.Setting != nil:
		return probes.SettingEquals(env, p.Setting.Schema, p.Setting.Key, p.Setting.Value)
	case len(p.Succeeds) > 0:
		return probes.CommandSucceeds(env, p.Succeeds)
	}
	return nil
}

func buildGuard(g GuardSpec, env probes.Env) types.Guard {
	var guards []types.Guard
	if g.Graphical {
		guards = append(guards, probes.GraphicalSession(env))
	}
	if g.Hardware != "" {
		guards = append(guards, probes.HardwarePresent(env, g.Hardware))
	}
	if g.NotContainer {
		guards = append(guards, probes.NotInContainer(env))
	}
	if g.Env != "" {
		guards = append(guards, probes.EnvSet(env, g.Env))
	}

	switch len(guards) {
	case 0:
		return nil
	case 1:
		return guards[0]
	default:
		return probes.AllOf(guards...)
	}
}

func buildAction(e Entry, b *actions.Builder) types.Action {
	a := e.Action
	switch {
	case len(a.Apt) > 0:
		return b.AptInstall(a.Apt, a.AptUpdate)
	case len(a.Command) > 0:
		return b.Command(a.Command, e.Privileged)
	case a.Shell != "":
		return b.Shell(a.Shell, e.Privileged)
	case a.Download != nil:
		return b.Download(a.Download.URL, a.Download.Then, e.Privileged)
	}
	if s := e.effectiveSetting(); s != nil {
		return b.SettingSet(s.Schema, s.Key, s.Value)
	}
	return nil
}

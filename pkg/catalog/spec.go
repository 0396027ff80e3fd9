package catalog

import (
	"fmt"
	"strings"
)

// Entry is one task as written in a catalog file
type Entry struct {
	Name         string     `toml:"name" yaml:"name"`
	Description  string     `toml:"description" yaml:"description"`
	Prerequisite bool       `toml:"prerequisite" yaml:"prerequisite"`
	Privileged   bool       `toml:"privileged" yaml:"privileged"`
	Probe        ProbeSpec  `toml:"probe" yaml:"probe"`
	Guard        GuardSpec  `toml:"guard" yaml:"guard"`
	Action       ActionSpec `toml:"action" yaml:"action"`
}

// ProbeSpec selects how presence is detected. Exactly one field is set.
type ProbeSpec struct {
	Command    string       `toml:"command" yaml:"command"`
	AnyCommand []string     `toml:"any_command" yaml:"any_command"`
	Path       string       `toml:"path" yaml:"path"`
	Package    string       `toml:"package" yaml:"package"`
	Setting    *SettingSpec `toml:"setting" yaml:"setting"`
	Succeeds   []string     `toml:"succeeds" yaml:"succeeds"`
}

// SettingSpec is a gsettings schema, key and expected value
type SettingSpec struct {
	Schema string `toml:"schema" yaml:"schema"`
	Key    string `toml:"key" yaml:"key"`
	Value  string `toml:"value" yaml:"value"`
}

// GuardSpec lists applicability conditions. All set conditions must hold.
type GuardSpec struct {
	Graphical    bool   `toml:"graphical" yaml:"graphical"`
	Hardware     string `toml:"hardware" yaml:"hardware"`
	NotContainer bool   `toml:"not_container" yaml:"not_container"`
	Env          string `toml:"env" yaml:"env"`
}

// ActionSpec selects how the goal is made present. Exactly one kind is set,
// except that an empty action with a setting probe sets that value.
type ActionSpec struct {
	Apt       []string      `toml:"apt" yaml:"apt"`
	AptUpdate bool          `toml:"apt_update" yaml:"apt_update"`
	Command   []string      `toml:"command" yaml:"command"`
	Shell     string        `toml:"shell" yaml:"shell"`
	Setting   *SettingSpec  `toml:"setting" yaml:"setting"`
	Download  *DownloadSpec `toml:"download" yaml:"download"`
}

// DownloadSpec fetches URL to a temporary file and runs Then on it
type DownloadSpec struct {
	URL  string   `toml:"url" yaml:"url"`
	Then []string `toml:"then" yaml:"then"`
}

func (p ProbeSpec) kinds() []string {
	var k []string
	if p.Command != "" {
		k = append(k, "command")
	}
	if len(p.AnyCommand) > 0 {
		k = append(k, "any_command")
	}
	if p.Path != "" {
		k = append(k, "path")
	}
	if p.Package != "" {
		k = append(k, "package")
	}
	if p.Setting != nil {
		k = append(k, "setting")
	}
	if len(p.Succeeds) > 0 {
		k = append(k, "succeeds")
	}
	return k
}

func (a ActionSpec) kinds() []string {
	var k []string
	if len(a.Apt) > 0 {
		k = append(k, "apt")
	}
	if len(a.Command) > 0 {
		k = append(k, "command")
	}
	if a.Shell != "" {
		k = append(k, "shell")
	}
	if a.Setting != nil {
		k = append(k, "setting")
	}
	if a.Download != nil {
		k = append(k, "download")
	}
	return k
}

// effectiveSetting returns the setting the action writes, if any
func (e Entry) effectiveSetting() *SettingSpec {
	if e.Action.Setting != nil {
		return e.Action.Setting
	}
	if len(e.Action.kinds()) == 0 {
		return e.Probe.Setting
	}
	return nil
}

// ProbeSummary is a short human description of the probe
func (e Entry) ProbeSummary() string {
	p := e.Probe
	switch {
	case p.Command != "":
		return fmt.Sprintf("`%s` on PATH", p.Command)
	case len(p.AnyCommand) > 0:
		return fmt.Sprintf("any of `%s` on PATH", strings.Join(p.AnyCommand, "`, `"))
	case p.Path != "":
		return fmt.Sprintf("`%s` exists", p.Path)
	case p.Package != "":
		return fmt.Sprintf("package `%s` installed", p.Package)
	case p.Setting != nil:
		return fmt.Sprintf("`%s %s` is `%s`", p.Setting.Schema, p.Setting.Key, p.Setting.Value)
	case len(p.Succeeds) > 0:
		return fmt.Sprintf("`%s` succeeds", strings.Join(p.Succeeds, " "))
	}
	return "none"
}

// ActionSummary is a short human description of the action
func (e Entry) ActionSummary() string {
	a := e.Action
	switch {
	case len(a.Apt) > 0:
		return "apt install " + strings.Join(a.Apt, " ")
	case len(a.Command) > 0:
		return strings.Join(a.Command, " ")
	case a.Shell != "":
		return "shell script"
	case a.Download != nil:
		return fmt.Sprintf("download %s, then %s", a.Download.URL, strings.Join(a.Download.Then, " "))
	}
	if s := e.effectiveSetting(); s != nil {
		return fmt.Sprintf("gsettings set %s %s %s", s.Schema, s.Key, s.Value)
	}
	return "none"
}

// GuardSummary lists the guard conditions, empty when there are none
func (e Entry) GuardSummary() string {
	var parts []string
	g := e.Guard
	if g.Graphical {
		parts = append(parts, "graphical session")
	}
	if g.Hardware != "" {
		parts = append(parts, g.Hardware+" hardware")
	}
	if g.NotContainer {
		parts = append(parts, "not in a container")
	}
	if g.Env != "" {
		parts = append(parts, "$"+g.Env+" set")
	}
	return strings.Join(parts, ", ")
}

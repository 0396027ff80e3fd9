package config

import (
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Config is the complete rigup configuration
type Config struct {
	Run       RunConfig       `koanf:"run"`
	Privilege PrivilegeConfig `koanf:"privilege"`
	Logging   LoggingConfig   `koanf:"logging"`
	Output    OutputConfig    `koanf:"output"`
}

// RunConfig controls which tasks run and how failures map to exit codes
type RunConfig struct {
	Strict  bool     `koanf:"strict"`
	Catalog string   `koanf:"catalog"`
	Only    []string `koanf:"only"`
	Skip    []string `koanf:"skip"`
}

// PrivilegeConfig controls sudo handling
type PrivilegeConfig struct {
	Command   string        `koanf:"command"`
	Keepalive time.Duration `koanf:"keepalive"`
}

// LoggingConfig controls where per-run logs go
type LoggingConfig struct {
	Dir string `koanf:"dir"`
}

// OutputConfig controls console rendering
type OutputConfig struct {
	Format  string `koanf:"format"`
	Spinner bool   `koanf:"spinner"`
}

var validFormats = map[string]bool{"auto": true, "term": true, "terminal": true, "text": true, "plain": true, "json": true}

// Validate checks values the decoder cannot
func (c *Config) Validate() error {
	if c.Privilege.Keepalive <= 0 {
		return errors.Newf(errors.ErrConfigParse, "privilege.keepalive must be positive, got %s", c.Privilege.Keepalive)
	}
	if c.Privilege.Command == "" {
		return errors.New(errors.ErrConfigParse, "privilege.command must not be empty")
	}
	if !validFormats[c.Output.Format] {
		return errors.Newf(errors.ErrConfigParse, "unknown output.format %q", c.Output.Format)
	}
	return nil
}

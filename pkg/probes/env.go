// Package probes builds the presence probes and applicability guards that
// decide whether a task needs to run.
//
// Probes and guards read the machine only through an Env, so every check
// can be exercised in tests with a scripted environment.
package probes

import (
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/rigup/pkg/executor"
)

// Env is the view of the workstation probes and guards read from
type Env interface {
	Getenv(key string) string
	LookPath(file string) (string, error)
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Output(ctx context.Context, cmd executor.Command) ([]byte, error)
}

// SystemEnv reads the real host
type SystemEnv struct {
	Runner executor.Runner
}

// NewSystemEnv returns an Env backed by the host and runner
func NewSystemEnv(runner executor.Runner) *SystemEnv {
	return &SystemEnv{Runner: runner}
}

// Getenv implements Env
func (SystemEnv) Getenv(key string) string { return os.Getenv(key) }

// LookPath implements Env
func (SystemEnv) LookPath(file string) (string, error) { return exec.LookPath(file) }

// Stat implements Env
func (SystemEnv) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

// ReadFile implements Env
func (SystemEnv) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Output implements Env
func (e SystemEnv) Output(ctx context.Context, cmd executor.Command) ([]byte, error) {
	return e.Runner.Output(ctx, cmd)
}

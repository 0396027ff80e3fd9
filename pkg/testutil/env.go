package testutil

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/arthur-debert/rigup/pkg/executor"
)

// FakeEnv is a scriptable environment for probes and guards
type FakeEnv struct {
	Vars     map[string]string
	Binaries map[string]bool
	Paths    map[string]bool
	Files    map[string]string

	// StatErr, when set, is returned by Stat for every path not in Paths
	StatErr error

	// OutputFunc answers Output; nil means every command exits 1
	OutputFunc func(cmd executor.Command) ([]byte, error)

	mu      sync.Mutex
	outputs []executor.Command
}

// NewFakeEnv returns an empty environment
func NewFakeEnv() *FakeEnv {
	return &FakeEnv{
		Vars:     map[string]string{},
		Binaries: map[string]bool{},
		Paths:    map[string]bool{},
		Files:    map[string]string{},
	}
}

// Getenv implements probes.Env
func (e *FakeEnv) Getenv(key string) string {
	return e.Vars[key]
}

// LookPath implements probes.Env
func (e *FakeEnv) LookPath(file string) (string, error) {
	if e.Binaries[file] {
		return "/usr/bin/" + file, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

// Stat implements probes.Env
func (e *FakeEnv) Stat(path string) (os.FileInfo, error) {
	if e.Paths[path] {
		return fakeInfo{name: path}, nil
	}
	if _, ok := e.Files[path]; ok {
		return fakeInfo{name: path}, nil
	}
	if e.StatErr != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: e.StatErr}
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// ReadFile implements probes.Env
func (e *FakeEnv) ReadFile(path string) ([]byte, error) {
	if content, ok := e.Files[path]; ok {
		return []byte(content), nil
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

// Output implements probes.Env
func (e *FakeEnv) Output(ctx context.Context, cmd executor.Command) ([]byte, error) {
	e.mu.Lock()
	e.outputs = append(e.outputs, cmd)
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.OutputFunc != nil {
		return e.OutputFunc(cmd)
	}
	return nil, ExitError{Code: 1}
}

// OutputCalls returns the commands passed to Output
func (e *FakeEnv) OutputCalls() []executor.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]executor.Command, len(e.outputs))
	copy(out, e.outputs)
	return out
}

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

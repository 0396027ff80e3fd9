// Package cleanup tracks temporary files and directories created during a
// run and removes all of them when the run ends, whichever way it ends.
package cleanup

import (
	"errors"
	"os"
	"sync"

	rigerrors "github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
)

// Registry records temporary paths for removal
type Registry struct {
	mu    sync.Mutex
	dir   string
	paths []string
}

// Default is the process-wide registry
var Default = NewRegistry("")

// NewRegistry creates a registry that creates temp entries in dir, or the
// OS temp directory when dir is empty
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Track registers an existing path for removal
func (r *Registry) Track(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// TempFile creates and tracks a temporary file
func (r *Registry) TempFile(pattern string) (*os.File, error) {
	f, err := os.CreateTemp(r.dir, pattern)
	if err != nil {
		return nil, rigerrors.Wrap(err, rigerrors.ErrFileAccess, "failed to create temporary file")
	}
	r.Track(f.Name())
	return f, nil
}

// TempDir creates and tracks a temporary directory
func (r *Registry) TempDir(pattern string) (string, error) {
	dir, err := os.MkdirTemp(r.dir, pattern)
	if err != nil {
		return "", rigerrors.Wrap(err, rigerrors.ErrFileAccess, "failed to create temporary directory")
	}
	r.Track(dir)
	return dir, nil
}

// Pending returns the paths still awaiting removal
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Cleanup removes every tracked path, newest first. A failed removal does
// not stop the rest; all failures are joined into the returned error.
func (r *Registry) Cleanup() error {
	r.mu.Lock()
	paths := r.paths
	r.paths = nil
	r.mu.Unlock()

	logger := logging.GetLogger("cleanup")
	var errs []error
	for i := len(paths) - 1; i >= 0; i-- {
		if err := os.RemoveAll(paths[i]); err != nil {
			logger.Warn().Err(err).Str("path", paths[i]).Msg("Failed to remove temporary path")
			errs = append(errs, err)
			continue
		}
		logger.Trace().Str("path", paths[i]).Msg("Removed temporary path")
	}
	return errors.Join(errs...)
}

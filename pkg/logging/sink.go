package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Sink is the per-run, append-only file that receives the full output of
// every task action. It is opened once per run and never truncated.
type Sink struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	closed bool
}

// NewSink creates a uniquely named sink file in dir. An empty dir means the
// OS temp directory.
func NewSink(dir string, now time.Time) (*Sink, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to create log directory %s", dir)
	}

	pattern := fmt.Sprintf("rigup-%s-*.log", now.Format("20060102-150405"))
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to create run log")
	}

	return &Sink{file: file, path: file.Name()}, nil
}

// Path returns the location of the sink file.
func (s *Sink) Path() string {
	return s.path
}

// Write appends p to the sink. Writes after Close are discarded.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return len(p), nil
	}
	return s.file.Write(p)
}

// Section writes a header line separating one task's output from the next.
func (s *Sink) Section(name string, at time.Time) {
	_, _ = fmt.Fprintf(s, "\n==> [%s] %s\n", at.Format(time.RFC3339), name)
}

// Close flushes and closes the sink file. It is safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Sync(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

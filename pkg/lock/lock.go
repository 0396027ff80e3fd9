// Package lock keeps two provisioning runs from overlapping on one machine.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	"golang.org/x/sys/unix"
)

// FileLock is an advisory flock on a file holding the owner's PID
type FileLock struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// New returns an unlocked FileLock for path
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// Path returns the lock file location
func (l *FileLock) Path() string { return l.path }

// TryLock takes the lock without blocking. When another process holds it the
// error has code LOCK_HELD and a "pid" detail when the owner is known.
func (l *FileLock) TryLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot create lock directory for %s", l.path)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open lock file %s", l.path)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		owner := readPID(f)
		_ = f.Close()
		e := errors.Wrapf(err, errors.ErrLockHeld, "another rigup run holds %s", l.path)
		if owner > 0 {
			e = e.WithDetail("pid", owner)
		}
		return e
	}

	if err := writePID(f); err != nil {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot record PID in %s", l.path)
	}

	l.file = f
	logger := logging.GetLogger("lock")
	logger.Debug().Str("path", l.path).Int("pid", os.Getpid()).Msg("Acquired run lock")
	return nil
}

// Unlock releases the lock and removes the file. It is safe to call more
// than once.
func (l *FileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	// Remove while still holding the lock so no other run sees a stale PID
	_ = os.Remove(l.path)
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		_ = f.Close()
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return f.Close()
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return err
	}
	return f.Sync()
}

func readPID(f *os.File) int {
	buf := make([]byte, 32)
	n, _ := f.ReadAt(buf, 0)
	pid, err := strconv.Atoi(strings.TrimSpace(string(buf[:n])))
	if err != nil {
		return 0
	}
	return pid
}

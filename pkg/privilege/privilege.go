// Package privilege keeps an elevated sudo session alive for the length of
// a provisioning run so later tasks never block on a second password prompt.
package privilege

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/executor"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// DefaultInterval is how often the keep-alive refreshes the sudo timestamp
const DefaultInterval = 60 * time.Second

// IsRoot reports whether the process already runs with euid 0
func IsRoot() bool {
	return unix.Geteuid() == 0
}

// Options configures a Session
type Options struct {
	Runner executor.Runner

	// Command is the escalation binary, "sudo" when empty
	Command string

	// Interval between keep-alive refreshes, DefaultInterval when zero
	Interval time.Duration

	// Interactive allows a credential prompt on the terminal
	Interactive bool

	// Root overrides IsRoot, for tests
	Root func() bool
}

// Session validates sudo credentials once and refreshes them in the
// background until Stop is called.
type Session struct {
	runner      executor.Runner
	command     string
	interval    time.Duration
	interactive bool
	root        func() bool
	logger      zerolog.Logger

	mu        sync.Mutex
	validated bool
	cancel    context.CancelFunc
	group     *errgroup.Group
	active    atomic.Bool
	refreshes atomic.Int64
}

// New creates a session; nothing runs until Ensure
func New(opts Options) *Session {
	s := &Session{
		runner:      opts.Runner,
		command:     opts.Command,
		interval:    opts.Interval,
		interactive: opts.Interactive,
		root:        opts.Root,
		logger:      logging.GetLogger("privilege"),
	}
	if s.command == "" {
		s.command = "sudo"
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.root == nil {
		s.root = IsRoot
	}
	return s
}

// Ensure makes sure the elevated session is valid, prompting at most once,
// and starts the keep-alive. Later calls are no-ops.
func (s *Session) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.validated {
		return nil
	}
	if s.root() {
		s.logger.Debug().Msg("Already running as root, no escalation needed")
		s.validated = true
		return nil
	}

	validate := executor.Command{Name: s.command, Args: []string{"-v"}, Interactive: true}
	if !s.interactive {
		validate = executor.Command{Name: s.command, Args: []string{"-n", "-v"}}
	}
	if err := s.runner.Run(ctx, validate, io.Discard); err != nil {
		if !s.interactive {
			return errors.Wrap(err, errors.ErrPrivilege,
				"elevated privileges are required but no cached credentials exist and no terminal is attached")
		}
		return errors.Wrap(err, errors.ErrPrivilege, "failed to obtain elevated privileges")
	}

	s.validated = true
	s.start(ctx)
	return nil
}

func (s *Session) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)

	s.cancel = cancel
	s.group = group
	s.active.Store(true)

	group.Go(func() error {
		defer s.active.Store(false)
		s.keepAlive(gctx)
		return nil
	})

	s.logger.Debug().Dur("interval", s.interval).Msg("Privilege keep-alive started")
}

func (s *Session) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	refresh := executor.Command{Name: s.command, Args: []string{"-n", "-v"}}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.runner.Run(ctx, refresh, io.Discard); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn().Err(err).Msg("Failed to refresh elevated session")
				continue
			}
			s.refreshes.Add(1)
		}
	}
}

// Stop cancels the keep-alive and waits for it to exit. It is safe to call
// repeatedly and on a session that never started.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, group := s.cancel, s.group
	s.cancel, s.group = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	_ = group.Wait()
	s.logger.Debug().Int64("refreshes", s.refreshes.Load()).Msg("Privilege keep-alive stopped")
}

// Active reports whether the keep-alive goroutine is running
func (s *Session) Active() bool {
	return s.active.Load()
}

// Refreshes returns how many keep-alive refreshes succeeded
func (s *Session) Refreshes() int64 {
	return s.refreshes.Load()
}

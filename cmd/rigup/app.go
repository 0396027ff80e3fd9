package rigup

import (
	"io"
	"os"
	"time"

	"github.com/arthur-debert/rigup/pkg/cleanup"
	"github.com/arthur-debert/rigup/pkg/executor"
	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/arthur-debert/rigup/pkg/privilege"
	"github.com/arthur-debert/rigup/pkg/probes"
	"github.com/mattn/go-isatty"
)

// App is everything the commands take from the host system
type App struct {
	Runner   executor.Runner
	Env      probes.Env
	Registry *cleanup.Registry
	Paths    *paths.Paths

	IsRoot func() bool
	Now    func() time.Time

	Stdout io.Writer
	Stderr io.Writer

	// Interactive lets sudo prompt for a password on the terminal
	Interactive bool
}

// DefaultApp wires the real system
func DefaultApp() *App {
	runner := executor.NewSystem()
	return &App{
		Runner:      runner,
		Env:         probes.NewSystemEnv(runner),
		Registry:    cleanup.Default,
		Paths:       paths.New(),
		IsRoot:      privilege.IsRoot,
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set with -ldflags "-X github.com/arthur-debert/rigup/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String is the multi-line form printed by "rigup version"
func String() string {
	return fmt.Sprintf("rigup version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}

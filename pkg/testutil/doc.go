// Package testutil provides fakes for testing rigup components without
// touching the workstation: a recording command runner, a scriptable
// environment for probes and guards, and task builders.
//
// All fakes are safe for concurrent use because the privilege keep-alive
// calls the runner from its own goroutine.
package testutil

// Package executor runs the external commands behind rigup's probes and
// actions.
//
// Every command goes through a Runner so that probes and actions can be
// exercised in tests without touching the workstation. The System runner
// wraps os/exec, routes stdout and stderr to a single writer, and kills the
// process when the run context is cancelled.
package executor

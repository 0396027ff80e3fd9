// Package types defines the core types shared across rigup: the Task a
// provisioning run evaluates, the Probe, Guard and Action capabilities a task
// is built from, and the Outcome recorded for each evaluation.
package types

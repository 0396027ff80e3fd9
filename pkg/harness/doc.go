// Package harness evaluates provisioning tasks one after another and
// records what happened to each.
//
// For every task the harness checks the guard, then the presence probe, and
// only runs the action when the goal is missing. Action output is appended
// to the run's log sink; the console only ever sees one condensed line per
// task. A failing task is recorded and the run moves on, unless the task is
// a hard prerequisite, in which case the run stops there.
package harness

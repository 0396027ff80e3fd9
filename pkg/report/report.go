// Package report holds the outcomes of one provisioning run.
package report

import "github.com/arthur-debert/rigup/pkg/types"

// Entry pairs a task name with its outcome
type Entry struct {
	Task    string
	Outcome types.Outcome
}

// Report is an ordered record of evaluated tasks. Append never mutates the
// receiver, so a Report value handed out stays stable.
type Report struct {
	entries []Entry
}

// Append returns a new report with the entry added at the end
func (r Report) Append(task string, outcome types.Outcome) Report {
	next := make([]Entry, len(r.entries), len(r.entries)+1)
	copy(next, r.entries)
	return Report{entries: append(next, Entry{Task: task, Outcome: outcome})}
}

// Entries returns a copy of the entries in insertion order
func (r Report) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded entries
func (r Report) Len() int {
	return len(r.entries)
}

// HasFailures reports whether any entry failed
func (r Report) HasFailures() bool {
	for _, e := range r.entries {
		if e.Outcome.IsFailure() {
			return true
		}
	}
	return false
}

// Buckets partitions the report by outcome kind
type Buckets struct {
	Applied        []Entry
	AlreadyPresent []Entry
	NotApplicable  []Entry
	Failed         []Entry
}

// Buckets partitions entries by kind, keeping insertion order in each bucket
func (r Report) Buckets() Buckets {
	var b Buckets
	for _, e := range r.entries {
		switch e.Outcome.Kind() {
		case types.OutcomeApplied:
			b.Applied = append(b.Applied, e)
		case types.OutcomeAlreadyPresent:
			b.AlreadyPresent = append(b.AlreadyPresent, e)
		case types.OutcomeNotApplicable:
			b.NotApplicable = append(b.NotApplicable, e)
		default:
			b.Failed = append(b.Failed, e)
		}
	}
	return b
}

// Get returns the bucket for kind
func (b Buckets) Get(kind types.OutcomeKind) []Entry {
	switch kind {
	case types.OutcomeApplied:
		return b.Applied
	case types.OutcomeAlreadyPresent:
		return b.AlreadyPresent
	case types.OutcomeNotApplicable:
		return b.NotApplicable
	default:
		return b.Failed
	}
}

// Total returns the number of entries across all buckets
func (b Buckets) Total() int {
	return len(b.Applied) + len(b.AlreadyPresent) + len(b.NotApplicable) + len(b.Failed)
}

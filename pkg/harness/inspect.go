package harness

import (
	"context"

	"github.com/arthur-debert/rigup/pkg/types"
)

// PlanState is what a run would do with a task right now
type PlanState string

const (
	// PlanPending means the action would run
	PlanPending PlanState = "pending"

	// PlanPresent means the goal already holds
	PlanPresent PlanState = "present"

	// PlanNotApplicable means the guard rejects this environment
	PlanNotApplicable PlanState = "not_applicable"

	// PlanUnknown means the probe could not decide
	PlanUnknown PlanState = "unknown"
)

// Plan is the side-effect-free view of one task
type Plan struct {
	Task   string    `json:"task"`
	State  PlanState `json:"state"`
	Detail string    `json:"detail,omitempty"`
}

// Inspect evaluates the guard and probe of task without running its
// action and without recording anything in the report
func Inspect(ctx context.Context, task types.Task) Plan {
	if task.Guard != nil {
		if ok, reason := task.Guard.Applies(ctx); !ok {
			return Plan{Task: task.Name, State: PlanNotApplicable, Detail: reason}
		}
	}
	if task.Probe == nil {
		return Plan{Task: task.Name, State: PlanPending}
	}

	present, err := task.Probe.Check(ctx)
	switch {
	case err != nil:
		return Plan{Task: task.Name, State: PlanUnknown, Detail: err.Error()}
	case present:
		return Plan{Task: task.Name, State: PlanPresent}
	default:
		return Plan{Task: task.Name, State: PlanPending}
	}
}

// InspectAll inspects tasks in order
func InspectAll(ctx context.Context, tasks []types.Task) []Plan {
	plans := make([]Plan, 0, len(tasks))
	for _, t := range tasks {
		plans = append(plans, Inspect(ctx, t))
	}
	return plans
}

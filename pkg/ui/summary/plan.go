package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/rigup/pkg/harness"
	"github.com/arthur-debert/rigup/pkg/ui"
	"github.com/arthur-debert/rigup/pkg/ui/output/styles"
)

var planLabels = map[harness.PlanState]string{
	harness.PlanPending:       "missing",
	harness.PlanPresent:       "present",
	harness.PlanNotApplicable: "n/a",
	harness.PlanUnknown:       "unknown",
}

var planStyles = map[harness.PlanState]string{
	harness.PlanPending:       "Warning",
	harness.PlanPresent:       "AlreadyPresent",
	harness.PlanNotApplicable: "NotApplicable",
	harness.PlanUnknown:       "Failed",
}

// RenderPlans writes one line per task showing what a run would do
func RenderPlans(w io.Writer, plans []harness.Plan, format ui.Format) error {
	if format == ui.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if plans == nil {
			plans = []harness.Plan{}
		}
		return enc.Encode(plans)
	}

	width := 0
	for _, p := range plans {
		if len(p.Task) > width {
			width = len(p.Task)
		}
	}

	var b strings.Builder
	pending := 0
	for _, p := range plans {
		if p.State == harness.PlanPending {
			pending++
		}
		label := fmt.Sprintf("%-8s", planLabels[p.State])
		if format == ui.FormatTerminal {
			label = styles.Render(planStyles[p.State], label)
		}
		line := fmt.Sprintf("%s %-*s", label, width, p.Task)
		if p.Detail != "" {
			line += "  " + p.Detail
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	fmt.Fprintf(&b, "\n%d of %d tasks would run\n", pending, len(plans))

	_, err := io.WriteString(w, b.String())
	return err
}

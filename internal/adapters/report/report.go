// Package report renders finalized race results for humans: an Excel
// workbook with one sheet per scenario and a plain-text summary.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/engine/race"
)

// Sheet names for the two standard scenarios, matching the workbook layout
// users of the original balancing tool expect.
const (
	sheetConstrained   = "With_Star_Constraint"
	sheetUnconstrained = "No_Constraints"
)

// sheetName maps a scenario to its workbook sheet name.
func sheetName(sr race.ScenarioResult) string {
	switch {
	case sr.Constrained:
		return sheetConstrained
	case sr.Scenario == "unconstrained":
		return sheetUnconstrained
	default:
		return sr.Scenario
	}
}

// orderedScenarios returns scenario results in a stable order, constrained
// first.
func orderedScenarios(result *race.Result) []race.ScenarioResult {
	out := make([]race.ScenarioResult, 0, len(result.Scenarios))
	for _, sr := range result.Scenarios {
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Constrained != out[j].Constrained {
			return out[i].Constrained
		}
		return out[i].Scenario < out[j].Scenario
	})
	return out
}

// displayName re-attaches the advantage marker for presentation.
func displayName(p model.Participant) string {
	if p.Advantaged {
		return p.Name + "*"
	}
	return p.Name
}

// Summary renders a plain-text report of the race.
func Summary(result *race.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s", result.RunID, result.Elapsed.Round(10*time.Millisecond))
	if result.Cancelled {
		b.WriteString(", stopped early")
	}
	b.WriteString(")\n")

	for _, sr := range orderedScenarios(result) {
		fmt.Fprintf(&b, "\n=== %s (cost %.4f", sr.Scenario, sr.Cost)
		if sr.Promoted {
			b.WriteString(", promoted from constrained")
		}
		fmt.Fprintf(&b, ", %d iterations) ===\n", sr.Iterations)

		s := sr.Solution
		fmt.Fprintf(&b, "overall average: %.2f\n", s.GrandAverage())
		for g := 0; g < s.GroupCount(); g++ {
			members := s.Members(g)
			sort.Slice(members, func(i, j int) bool { return members[i].Score > members[j].Score })
			fmt.Fprintf(&b, "group %d (size %d, avg %.2f):", g+1, len(members), s.GroupAverage(g))
			for _, p := range members {
				fmt.Fprintf(&b, " %s(%.1f)", displayName(p), model.UnscaleScore(p.Score))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

package race

import (
	"time"

	"github.com/okian/fairsplit/internal/domain/solution"
)

// ScenarioResult is the finalized outcome of one scenario: the champion
// across that scenario's worker replicas, fully recomputed and validated.
type ScenarioResult struct {
	Scenario    string
	Constrained bool

	// Solution is the arbitrated champion.
	Solution *solution.Solution

	// Cost is the champion's cost rescaled to score points.
	Cost float64

	// Iterations is the total across all replicas of the scenario.
	Iterations int64

	// Elapsed is the longest replica run time.
	Elapsed time.Duration

	// Cancelled reports whether any replica stopped on the cancellation
	// signal rather than its budget.
	Cancelled bool

	// Promoted marks a slot whose solution was overwritten by a
	// better-or-equal constrained champion.
	Promoted bool
}

// Result is the final product of a race.
type Result struct {
	// RunID uniquely identifies this race for logs and reports.
	RunID string

	// Scenarios maps scenario label to its finalized result.
	Scenarios map[string]ScenarioResult

	// Elapsed is the wall-clock duration of the whole race.
	Elapsed time.Duration

	// Cancelled reports whether the race was stopped early.
	Cancelled bool
}

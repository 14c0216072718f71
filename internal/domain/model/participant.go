// Package model contains the shared domain types flowing between the move
// generator, the annealing workers and the race orchestrator.
package model

import "math"

// Scale is the fixed-point factor applied to raw scores. All aggregate and
// cost arithmetic runs on scaled int64 values so that repeated incremental
// updates cannot drift the way float accumulation does.
const Scale = 100_000

// Participant is one scored entrant. Immutable after creation.
type Participant struct {
	// ID is the stable index of the participant in the roster.
	ID int

	// Name is the display name with any advantage marker stripped.
	Name string

	// Score is the raw score in fixed point (Scale units per point).
	Score int64

	// Advantaged marks participants that must be spread evenly across groups
	// when the constrained scenario runs.
	Advantaged bool
}

// ScaleScore converts a raw floating score to fixed point, rounding half away
// from zero.
func ScaleScore(v float64) int64 {
	return int64(math.Round(v * Scale))
}

// UnscaleScore converts a fixed-point score back to points for reporting.
func UnscaleScore(v int64) float64 {
	return float64(v) / Scale
}

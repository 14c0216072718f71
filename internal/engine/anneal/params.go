package anneal

import (
	"fmt"
	"time"
)

// Default annealing schedule tunables. The stagnation threshold and the
// swap/transfer split have no closed-form derivation; they are exposed as
// parameters and these defaults are just working starting points.
const (
	defaultTimeBudget     = 900 * time.Second
	defaultInitialTemp    = 1000.0
	defaultCoolingFactor  = 0.9999
	defaultTempFloor      = 0.001
	defaultReheatFraction = 0.5
	defaultReheatAfter    = 2000
	defaultReheatBurst    = 20
	defaultRecomputeEvery = 500
	defaultProgressEvery  = 1000
	defaultProgressMinGap = 250 * time.Millisecond
)

// Params is the read-only configuration for one annealing scenario. One
// value is shared by every replica worker of that scenario.
type Params struct {
	// Scenario labels the constraint configuration, e.g. "constrained".
	Scenario string

	// Constrained enforces the even spread of advantaged participants.
	Constrained bool

	// TimeBudget bounds the wall-clock run time of one worker.
	TimeBudget time.Duration

	// MaxIterations optionally bounds the iteration count; zero means
	// unbounded (the time budget is then the only stop).
	MaxIterations int64

	// Cooling schedule.
	InitialTemp    float64
	CoolingFactor  float64
	TempFloor      float64
	ReheatFraction float64
	ReheatAfter    int
	ReheatBurst    int

	// RecomputeEvery is the paranoid full-recomputation interval in
	// iterations.
	RecomputeEvery int

	// Move generation tunables; zero values take the generator defaults.
	SwapProbability float64
	FocusWindow     int
	RetryLimit      int

	// Progress cadence: a snapshot is emitted every ProgressEvery
	// iterations, but never more often than ProgressMinGap.
	ProgressEvery  int
	ProgressMinGap time.Duration
}

// withDefaults returns a copy with zero fields replaced by defaults.
func (p Params) withDefaults() Params {
	if p.Scenario == "" {
		if p.Constrained {
			p.Scenario = "constrained"
		} else {
			p.Scenario = "unconstrained"
		}
	}
	if p.TimeBudget <= 0 {
		p.TimeBudget = defaultTimeBudget
	}
	if p.InitialTemp <= 0 {
		p.InitialTemp = defaultInitialTemp
	}
	if p.CoolingFactor <= 0 {
		p.CoolingFactor = defaultCoolingFactor
	}
	if p.TempFloor <= 0 {
		p.TempFloor = defaultTempFloor
	}
	if p.ReheatFraction <= 0 {
		p.ReheatFraction = defaultReheatFraction
	}
	if p.ReheatAfter <= 0 {
		p.ReheatAfter = defaultReheatAfter
	}
	if p.ReheatBurst <= 0 {
		p.ReheatBurst = defaultReheatBurst
	}
	if p.RecomputeEvery <= 0 {
		p.RecomputeEvery = defaultRecomputeEvery
	}
	if p.ProgressEvery <= 0 {
		p.ProgressEvery = defaultProgressEvery
	}
	if p.ProgressMinGap <= 0 {
		p.ProgressMinGap = defaultProgressMinGap
	}
	return p
}

// Validate rejects schedules that cannot anneal.
func (p Params) Validate() error {
	if p.CoolingFactor <= 0 || p.CoolingFactor >= 1 {
		return fmt.Errorf("%w: cooling factor %f outside (0,1)", ErrBadParams, p.CoolingFactor)
	}
	if p.TempFloor >= p.InitialTemp {
		return fmt.Errorf("%w: temperature floor %f >= initial %f", ErrBadParams, p.TempFloor, p.InitialTemp)
	}
	if p.ReheatFraction <= 0 || p.ReheatFraction > 1 {
		return fmt.Errorf("%w: reheat fraction %f outside (0,1]", ErrBadParams, p.ReheatFraction)
	}
	if p.SwapProbability < 0 || p.SwapProbability > 1 {
		return fmt.Errorf("%w: swap probability %f outside [0,1]", ErrBadParams, p.SwapProbability)
	}
	return nil
}

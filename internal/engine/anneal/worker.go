// Package anneal runs one simulated-annealing trajectory over the space of
// balanced partitions.
//
// A worker owns its search state exclusively: the only things that leave it
// are immutable progress snapshots and the final outcome, so any number of
// workers can run in parallel without sharing a lock.
package anneal

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/move"
	"github.com/okian/fairsplit/internal/domain/solution"
	"github.com/okian/fairsplit/pkg/logger"
	"github.com/okian/fairsplit/pkg/metrics"
)

// acceptanceGain rescales a cost delta (in score points) before the
// Metropolis exponent so the default temperature range stays meaningful for
// typical rosters.
const acceptanceGain = 100.0

// State is the worker lifecycle phase.
type State string

const (
	StateInitializing    State = "INITIALIZING"
	StateRunning         State = "RUNNING"
	StateConverged       State = "CONVERGED"
	StateCancelled       State = "CANCELLED"
	StateBudgetExhausted State = "BUDGET_EXHAUSTED"
	StateFinalizing      State = "FINALIZING"
	StateDone            State = "DONE"
)

// Progress is the immutable snapshot a worker pushes at a bounded cadence.
type Progress struct {
	Scenario    string
	WorkerID    int
	BestCost    float64 // rescaled points
	Iterations  int64
	Temperature float64
	Elapsed     time.Duration
}

// Outcome is what a finished worker yields. Best is always fully recomputed,
// whether the run ended by budget, convergence or cancellation.
type Outcome struct {
	Scenario   string
	WorkerID   int
	Best       *solution.Solution
	Iterations int64
	Elapsed    time.Duration
	Cancelled  bool
	Converged  bool
}

// Worker runs a single annealing trajectory to its budget.
type Worker struct {
	params   Params
	id       int
	rng      *rand.Rand
	gen      *move.Generator
	progress chan<- Progress
	logger   logger.Logger

	state State

	// locally batched metric counters, flushed at progress cadence so the
	// hot loop never touches a shared atomic
	pendingIters    int64
	pendingAccepted map[model.MoveKind]int64
	pendingRejected map[model.MoveKind]int64
}

// NewWorker creates a worker with its own RNG seed. The progress channel may
// be nil when no live reporting is wanted.
func NewWorker(params Params, id int, seed int64, progress chan<- Progress, opts ...Option) (*Worker, error) {
	params = params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	genOpts := []move.Option{move.WithConstraint(params.Constrained)}
	if params.SwapProbability > 0 {
		genOpts = append(genOpts, move.WithSwapProbability(params.SwapProbability))
	}
	if params.FocusWindow > 0 {
		genOpts = append(genOpts, move.WithFocusWindow(params.FocusWindow))
	}
	if params.RetryLimit > 0 {
		genOpts = append(genOpts, move.WithRetryLimit(params.RetryLimit))
	}

	w := &Worker{
		params:          params,
		id:              id,
		rng:             rng,
		gen:             move.NewGenerator(rng, genOpts...),
		progress:        progress,
		logger:          logger.Get().Named("anneal"),
		state:           StateInitializing,
		pendingAccepted: make(map[model.MoveKind]int64),
		pendingRejected: make(map[model.MoveKind]int64),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// State returns the current lifecycle phase.
func (w *Worker) State() State { return w.state }

// Run executes the trajectory until the time budget expires, the cost
// reaches zero, or ctx is cancelled. Cancellation is observed once per
// iteration and still yields the fully recomputed best.
func (w *Worker) Run(ctx context.Context, participants []model.Participant, groupCount int) (Outcome, error) {
	start := time.Now()
	w.state = StateInitializing

	cur, err := Seed(participants, groupCount, w.params.Constrained)
	if err != nil {
		return Outcome{}, err
	}
	best := cur

	temp := w.params.InitialTemp
	var iters int64
	sinceImprove := 0
	sinceRecompute := 0
	lastEmit := start
	cancelled := false
	converged := false

	deadline := start.Add(w.params.TimeBudget)
	normalize := 1.0 / (float64(len(participants)) * model.Scale)

	w.state = StateRunning
	for {
		if ctx.Err() != nil {
			cancelled = true
			w.state = StateCancelled
			break
		}
		if time.Now().After(deadline) || (w.params.MaxIterations > 0 && iters >= w.params.MaxIterations) {
			w.state = StateBudgetExhausted
			break
		}
		if best.Cost() == 0 {
			converged = true
			w.state = StateConverged
			break
		}

		m, err := w.gen.Next(cur)
		if err != nil {
			// Degenerate roster with no legal move; nothing left to search.
			converged = true
			w.state = StateConverged
			break
		}

		candCost, err := cur.CostAfter(m)
		if err != nil {
			return Outcome{}, err
		}

		delta := candCost - cur.Cost()
		accept := delta <= 0
		if !accept {
			deltaPts := float64(delta) * normalize
			accept = w.rng.Float64() < math.Exp(-deltaPts*acceptanceGain/temp)
		}

		if accept {
			next, err := cur.Apply(m)
			if err != nil {
				return Outcome{}, err
			}
			cur = next
			w.pendingAccepted[m.Kind]++
			if cur.Cost() < best.Cost() {
				best = cur
				sinceImprove = 0
			} else {
				sinceImprove++
			}
		} else {
			w.pendingRejected[m.Kind]++
			sinceImprove++
		}

		iters++
		w.pendingIters++
		sinceRecompute++

		// Drift safety net: rebuild everything from participant data and
		// replace the tracked state on any disagreement.
		if sinceRecompute >= w.params.RecomputeEvery {
			sinceRecompute = 0
			cur = w.reconcile(ctx, cur)
		}

		temp *= w.params.CoolingFactor
		if temp < w.params.TempFloor {
			if sinceImprove >= w.params.ReheatAfter {
				temp = w.params.InitialTemp * w.params.ReheatFraction
				cur = w.perturb(cur)
				sinceImprove = 0
				metrics.RecordReheat(w.params.Scenario)
			} else {
				temp = w.params.TempFloor
			}
		}

		if w.pendingIters >= int64(w.params.ProgressEvery) && time.Since(lastEmit) >= w.params.ProgressMinGap {
			lastEmit = time.Now()
			w.emit(best, iters, temp, time.Since(start))
		}
	}

	w.state = StateFinalizing
	final, err := best.Recompute()
	if err != nil {
		return Outcome{}, err
	}
	w.emit(final, iters, temp, time.Since(start))
	w.state = StateDone

	return Outcome{
		Scenario:   w.params.Scenario,
		WorkerID:   w.id,
		Best:       final,
		Iterations: iters,
		Elapsed:    time.Since(start),
		Cancelled:  cancelled,
		Converged:  converged,
	}, nil
}

// reconcile recomputes the tracked solution from scratch and swaps it in
// when the incremental cost has drifted. Integer arithmetic should never
// drift, so a repair here points at a defect in the fast path and is logged.
func (w *Worker) reconcile(ctx context.Context, cur *solution.Solution) *solution.Solution {
	start := time.Now()
	rec, err := cur.Recompute()
	metrics.RecordRecomputeLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		w.logger.Error(ctx, "paranoid recompute failed", logger.Error(err))
		return cur
	}
	if rec.Cost() != cur.Cost() {
		metrics.RecordDriftRepair()
		w.logger.Warn(ctx, "tracked cost drifted, replacing state",
			logger.String("scenario", w.params.Scenario),
			logger.Int64("tracked", cur.Cost()),
			logger.Int64("recomputed", rec.Cost()),
		)
	}
	return rec
}

// perturb applies a burst of random legal moves to escape stagnation. The
// burst hits the current walk only; the best-seen solution is untouched.
func (w *Worker) perturb(cur *solution.Solution) *solution.Solution {
	for i := 0; i < w.params.ReheatBurst; i++ {
		m, err := w.gen.Next(cur)
		if err != nil {
			break
		}
		next, err := cur.Apply(m)
		if err != nil {
			continue
		}
		cur = next
	}
	return cur
}

// emit pushes a progress snapshot without ever blocking the search loop and
// flushes the batched metric counters.
func (w *Worker) emit(best *solution.Solution, iters int64, temp float64, elapsed time.Duration) {
	metrics.RecordIterations(w.params.Scenario, int(w.pendingIters))
	w.pendingIters = 0
	for kind, n := range w.pendingAccepted {
		metrics.RecordMovesAccepted(w.params.Scenario, string(kind), n)
		delete(w.pendingAccepted, kind)
	}
	for kind, n := range w.pendingRejected {
		metrics.RecordMovesRejected(w.params.Scenario, string(kind), n)
		delete(w.pendingRejected, kind)
	}
	metrics.UpdateTemperature(w.params.Scenario, temp)

	if w.progress == nil {
		return
	}
	snap := Progress{
		Scenario:    w.params.Scenario,
		WorkerID:    w.id,
		BestCost:    best.CostPoints(),
		Iterations:  iters,
		Temperature: temp,
		Elapsed:     elapsed,
	}
	select {
	case w.progress <- snap:
	default:
		// Receiver is behind; drop the snapshot rather than stall the walk.
	}
}

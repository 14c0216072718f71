// Package race runs annealing workers for several constraint scenarios in
// parallel and arbitrates their champions.
//
// Workers never share search state. The only cross-worker traffic is the
// progress channel the orchestrator owns and the context used for broadcast
// cancellation, so the hot loops run without lock contention. After every
// worker yields, the orchestrator picks the cheapest solution per scenario,
// polishes and verifies it, and applies champion promotion: a constrained
// champion that costs no more than the unconstrained one overwrites the
// unconstrained slot, which is valid because balanced-advantage partitions
// are a subset of all partitions.
package race

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/engine/anneal"
	"github.com/okian/fairsplit/internal/engine/arbiter"
	"github.com/okian/fairsplit/pkg/logger"
	"github.com/okian/fairsplit/pkg/metrics"
)

// progressBuffer sizes the snapshot channel; snapshots are droppable so the
// buffer only needs to smooth bursts.
const progressBuffer = 64

// Orchestrator starts workers, aggregates their progress and arbitrates the
// final result.
type Orchestrator struct {
	replicas     int
	polishPasses int
	seed         int64
	progressFn   func(anneal.Progress)
	logger       logger.Logger

	mu   sync.RWMutex
	best map[string]float64 // scenario -> best cost seen, read-mostly
}

// New creates an orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		seed:   time.Now().UnixNano(),
		logger: logger.Get().Named("race"),
		best:   make(map[string]float64),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BestKnown returns a copy of the best cost observed so far per scenario.
// Safe to call from any goroutine while the race runs.
func (o *Orchestrator) BestKnown() map[string]float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]float64, len(o.best))
	for k, v := range o.best {
		out[k] = v
	}
	return out
}

type workerYield struct {
	out anneal.Outcome
	err error
}

// Run races every scenario to its budget and returns the arbitrated result.
// Cancelling ctx stops all workers within one iteration; each still yields
// its best-known solution, so an interrupted race produces a usable result.
func (o *Orchestrator) Run(ctx context.Context, participants []model.Participant, groupCount int, scenarios []anneal.Params) (*Result, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	seen := make(map[string]bool, len(scenarios))
	for i := range scenarios {
		scenarios[i] = normalized(scenarios[i])
		if seen[scenarios[i].Scenario] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateScenario, scenarios[i].Scenario)
		}
		seen[scenarios[i].Scenario] = true
	}

	replicas := o.replicas
	if replicas <= 0 {
		replicas = runtime.NumCPU() / len(scenarios)
		if replicas < 1 {
			replicas = 1
		}
	}

	start := time.Now()
	metrics.RecordRaceStarted()
	metrics.UpdateWorkersActive(replicas * len(scenarios))
	defer metrics.UpdateWorkersActive(0)

	o.logger.Info(ctx, "race starting",
		logger.Int("scenarios", len(scenarios)),
		logger.Int("replicas", replicas),
		logger.Int("participants", len(participants)),
		logger.Int("groups", groupCount),
	)

	progress := make(chan anneal.Progress, progressBuffer)
	collectorDone := make(chan struct{})
	go o.collect(progress, collectorDone)

	// Construct every worker before launching any, so a bad parameter set
	// fails the race while the progress channel still has no senders.
	workers := make([]*anneal.Worker, 0, replicas*len(scenarios))
	for _, params := range scenarios {
		for r := 0; r < replicas; r++ {
			id := len(workers)
			w, err := anneal.NewWorker(params, id, o.seed+int64(id)*7919, progress)
			if err != nil {
				close(progress)
				<-collectorDone
				return nil, err
			}
			workers = append(workers, w)
		}
	}

	yields := make(chan workerYield, len(workers))
	var wg sync.WaitGroup
	for _, w := range workers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := w.Run(ctx, participants, groupCount)
			yields <- workerYield{out: out, err: err}
		}()
	}

	wg.Wait()
	close(yields)
	close(progress)
	<-collectorDone

	perScenario := make(map[string]*ScenarioResult, len(scenarios))
	for y := range yields {
		if y.err != nil {
			return nil, y.err
		}
		sr, ok := perScenario[y.out.Scenario]
		if !ok {
			sr = &ScenarioResult{Scenario: y.out.Scenario}
			perScenario[y.out.Scenario] = sr
		}
		if sr.Solution == nil || y.out.Best.Cost() < sr.Solution.Cost() {
			sr.Solution = y.out.Best
		}
		sr.Iterations += y.out.Iterations
		if y.out.Elapsed > sr.Elapsed {
			sr.Elapsed = y.out.Elapsed
		}
		sr.Cancelled = sr.Cancelled || y.out.Cancelled
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Scenarios: make(map[string]ScenarioResult, len(perScenario)),
	}

	for _, params := range scenarios {
		sr, ok := perScenario[params.Scenario]
		if !ok || sr.Solution == nil {
			return nil, fmt.Errorf("%w: scenario %q", ErrNoOutcome, params.Scenario)
		}
		sr.Constrained = params.Constrained

		polished, err := anneal.Polish(sr.Solution, params.Constrained, o.polishPasses)
		if err != nil {
			return nil, err
		}
		verified, err := arbiter.Verify(polished, params.Constrained)
		if err != nil {
			return nil, err
		}
		sr.Solution = verified
		sr.Cost = verified.CostPoints()
		result.Cancelled = result.Cancelled || sr.Cancelled
		result.Scenarios[sr.Scenario] = *sr
	}

	promote(result)

	result.Elapsed = time.Since(start)
	metrics.RecordRaceDuration(result.Elapsed.Seconds())
	if result.Cancelled {
		metrics.RecordCancellation()
	}

	o.logger.Info(ctx, "race finished",
		logger.String("run_id", result.RunID),
		logger.Duration("elapsed", result.Elapsed),
		logger.Bool("cancelled", result.Cancelled),
	)
	return result, nil
}

// collect drains worker snapshots, keeps the read-mostly best-known table
// fresh and forwards snapshots to the registered callback.
func (o *Orchestrator) collect(progress <-chan anneal.Progress, done chan<- struct{}) {
	defer close(done)
	for snap := range progress {
		o.mu.Lock()
		cur, ok := o.best[snap.Scenario]
		if !ok || snap.BestCost < cur {
			o.best[snap.Scenario] = snap.BestCost
			metrics.UpdateBestCost(snap.Scenario, snap.BestCost)
		}
		o.mu.Unlock()
		if o.progressFn != nil {
			o.progressFn(snap)
		}
	}
}

// promote applies champion promotion: the cheapest constrained champion
// replaces any unconstrained champion it beats or ties, so the pure-math
// output is never worse than the constrained one.
func promote(result *Result) {
	var bestConstrained *ScenarioResult
	for label := range result.Scenarios {
		sr := result.Scenarios[label]
		if sr.Constrained && (bestConstrained == nil || sr.Solution.Cost() < bestConstrained.Solution.Cost()) {
			bestConstrained = &sr
		}
	}
	if bestConstrained == nil {
		return
	}
	for label, sr := range result.Scenarios {
		if sr.Constrained {
			continue
		}
		if bestConstrained.Solution.Cost() <= sr.Solution.Cost() {
			sr.Solution = bestConstrained.Solution
			sr.Cost = bestConstrained.Cost
			sr.Promoted = true
			result.Scenarios[label] = sr
			metrics.RecordChampionPromotion()
		}
	}
}

// normalized fills in the scenario label the way the worker would, so maps
// keyed by label stay consistent before workers start.
func normalized(p anneal.Params) anneal.Params {
	if p.Scenario == "" {
		if p.Constrained {
			p.Scenario = "constrained"
		} else {
			p.Scenario = "unconstrained"
		}
	}
	return p
}

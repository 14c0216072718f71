package race

import (
	"github.com/okian/fairsplit/internal/engine/anneal"
	"github.com/okian/fairsplit/pkg/logger"
)

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithReplicas sets how many workers run per scenario. Zero keeps the
// default of splitting the available CPUs across scenarios.
func WithReplicas(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.replicas = n
		}
	}
}

// WithProgressFunc registers a callback invoked for every progress snapshot
// the workers emit. The callback runs on the orchestrator's collector
// goroutine and must not block.
func WithProgressFunc(fn func(anneal.Progress)) Option {
	return func(o *Orchestrator) {
		o.progressFn = fn
	}
}

// WithPolishPasses sets the number of hill-climb passes applied to each
// scenario champion before arbitration.
func WithPolishPasses(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.polishPasses = n
		}
	}
}

// WithSeed fixes the base RNG seed so runs are reproducible in tests.
func WithSeed(seed int64) Option {
	return func(o *Orchestrator) {
		o.seed = seed
	}
}

// WithLogger sets a custom logger for the orchestrator.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

package move

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSwapProbability sets the probability of drawing a swap instead of a
// transfer. Values outside (0,1] are ignored.
func WithSwapProbability(p float64) Option {
	return func(g *Generator) {
		if p > 0 && p <= 1 {
			g.swapProb = p
		}
	}
}

// WithFocusWindow sets how many of the highest- and lowest-average groups the
// generator concentrates on when pairing groups.
func WithFocusWindow(k int) Option {
	return func(g *Generator) {
		if k > 0 {
			g.focusWindow = k
		}
	}
}

// WithRetryLimit bounds how many times a constraint-violating draw is
// replaced before the generator falls back to an unconstrained legal move.
func WithRetryLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.retryLimit = n
		}
	}
}

// WithConstraint makes the generator reject moves that would spread
// advantaged participants unevenly across groups.
func WithConstraint(constrained bool) Option {
	return func(g *Generator) {
		g.constrained = constrained
	}
}

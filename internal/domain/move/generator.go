// Package move produces candidate perturbations for the annealing worker.
//
// Two kinds exist: swaps, which exchange two participants between distinct
// groups, and transfers, which shift one participant from a largest group to
// a smallest one. Group pairs are not drawn uniformly: the generator keeps a
// focus window of the k highest- and k lowest-average groups and combines
// those first, so evaluations concentrate on the worst imbalances.
package move

import (
	"math/rand"
	"sort"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/solution"
)

// Default generator tunables.
const (
	defaultSwapProbability = 0.8
	defaultFocusWindow     = 3
	defaultRetryLimit      = 32
)

// Generator draws legal moves from a Solution. It owns its RNG and carries no
// reference to any solution between calls, so one generator per worker is
// safe without locking.
type Generator struct {
	rng         *rand.Rand
	swapProb    float64
	focusWindow int
	retryLimit  int
	constrained bool

	// scratch buffers reused across draws to keep the hot loop allocation-free
	ranked  []int
	members [][]int
}

// NewGenerator creates a move generator with the given RNG and options.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:         rng,
		swapProb:    defaultSwapProbability,
		focusWindow: defaultFocusWindow,
		retryLimit:  defaultRetryLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Constrained reports whether the generator enforces advantage balance.
func (g *Generator) Constrained() bool { return g.constrained }

// Next draws one legal move for the given solution. Under constraint, draws
// that would push the advantaged spread beyond one are redrawn up to the
// retry limit; if the limit is exhausted the last candidate is returned
// anyway, since a perfectly balanced spread is not always achievable.
func (g *Generator) Next(s *solution.Solution) (model.Move, error) {
	var last model.Move
	var have bool
	for attempt := 0; attempt <= g.retryLimit; attempt++ {
		// Past the first few attempts, widen the pairing beyond the focus
		// window so a cramped window cannot starve the draw.
		focused := attempt == 0 || attempt < g.retryLimit/2
		m, ok := g.draw(s, focused)
		if !ok {
			continue
		}
		last, have = m, true
		if !g.constrained || g.keepsAdvantageSpread(s, m) {
			return m, nil
		}
	}
	if !have {
		return model.Move{}, ErrNoMove
	}
	return last, nil
}

func (g *Generator) draw(s *solution.Solution, focused bool) (model.Move, bool) {
	if g.rng.Float64() < g.swapProb {
		return g.drawSwap(s, focused)
	}
	if m, ok := g.drawTransfer(s, focused); ok {
		return m, true
	}
	// All sizes equal: no transfer is legal, swap instead.
	return g.drawSwap(s, focused)
}

// drawSwap pairs a high-average group with a low-average group and exchanges
// one random member of each.
func (g *Generator) drawSwap(s *solution.Solution, focused bool) (model.Move, bool) {
	n := s.GroupCount()
	if n < 2 {
		return model.Move{}, false
	}

	var from, to int
	if focused {
		ranked := g.rankByAverage(s)
		k := g.focusWindow
		if k > n {
			k = n
		}
		from = ranked[g.rng.Intn(k)]
		to = ranked[n-1-g.rng.Intn(k)]
	} else {
		from = g.rng.Intn(n)
		to = g.rng.Intn(n)
	}
	if from == to {
		return model.Move{}, false
	}

	g.indexMembers(s)
	a := g.members[from][g.rng.Intn(len(g.members[from]))]
	b := g.members[to][g.rng.Intn(len(g.members[to]))]
	return model.Move{Kind: model.MoveSwap, A: a, B: b, From: from, To: to}, true
}

// drawTransfer moves a random member of a largest group into a smallest
// group. Only src=max, dst=min with max>min keeps the size spread within
// one, so anything else is rejected before it is ever offered.
func (g *Generator) drawTransfer(s *solution.Solution, focused bool) (model.Move, bool) {
	groups := s.Groups()
	minSize, maxSize := groups[0].Size, groups[0].Size
	for _, grp := range groups {
		if grp.Size < minSize {
			minSize = grp.Size
		}
		if grp.Size > maxSize {
			maxSize = grp.Size
		}
	}
	if maxSize == minSize || minSize <= 0 {
		return model.Move{}, false
	}

	sources := groupsOfSize(groups, maxSize)
	targets := groupsOfSize(groups, minSize)
	var from, to int
	if focused {
		// Bias toward the worst offenders: the fullest high-average group
		// and the emptiest low-average group.
		from = g.pickExtreme(s, sources, true)
		to = g.pickExtreme(s, targets, false)
	} else {
		from = sources[g.rng.Intn(len(sources))]
		to = targets[g.rng.Intn(len(targets))]
	}

	g.indexMembers(s)
	a := g.members[from][g.rng.Intn(len(g.members[from]))]
	return model.Move{Kind: model.MoveTransfer, A: a, From: from, To: to}, true
}

func groupsOfSize(groups []solution.Group, size int) []int {
	out := make([]int, 0, len(groups))
	for i, g := range groups {
		if g.Size == size {
			out = append(out, i)
		}
	}
	return out
}

// pickExtreme selects from candidates the group with the highest (or lowest)
// average, breaking ties randomly.
func (g *Generator) pickExtreme(s *solution.Solution, candidates []int, highest bool) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		a, b := s.GroupAverage(c), s.GroupAverage(best)
		if (highest && a > b) || (!highest && a < b) {
			best = c
		}
	}
	return best
}

// rankByAverage fills the scratch ranking with group indices ordered by
// average score, highest first.
func (g *Generator) rankByAverage(s *solution.Solution) []int {
	n := s.GroupCount()
	if cap(g.ranked) < n {
		g.ranked = make([]int, n)
	}
	g.ranked = g.ranked[:n]
	for i := range g.ranked {
		g.ranked[i] = i
	}
	sort.Slice(g.ranked, func(i, j int) bool {
		return s.GroupAverage(g.ranked[i]) > s.GroupAverage(g.ranked[j])
	})
	return g.ranked
}

// indexMembers rebuilds the per-group member ID lists for the solution.
func (g *Generator) indexMembers(s *solution.Solution) {
	n := s.GroupCount()
	if cap(g.members) < n {
		g.members = make([][]int, n)
	}
	g.members = g.members[:n]
	for i := range g.members {
		g.members[i] = g.members[i][:0]
	}
	for id := 0; id < s.ParticipantCount(); id++ {
		grp := s.GroupOf(id)
		g.members[grp] = append(g.members[grp], id)
	}
}

// keepsAdvantageSpread reports whether applying the move keeps the per-group
// advantaged counts within one of each other.
func (g *Generator) keepsAdvantageSpread(s *solution.Solution, m model.Move) bool {
	deltaFrom, deltaTo := 0, 0
	switch m.Kind {
	case model.MoveSwap:
		advA := s.Participants()[m.A].Advantaged
		advB := s.Participants()[m.B].Advantaged
		if advA == advB {
			return true
		}
		if advA {
			deltaFrom, deltaTo = -1, 1
		} else {
			deltaFrom, deltaTo = 1, -1
		}
	case model.MoveTransfer:
		if !s.Participants()[m.A].Advantaged {
			return true
		}
		deltaFrom, deltaTo = -1, 1
	}

	minAdv, maxAdv := -1, -1
	for i := 0; i < s.GroupCount(); i++ {
		adv := s.Group(i).Advantaged
		if i == m.From {
			adv += deltaFrom
		}
		if i == m.To {
			adv += deltaTo
		}
		if minAdv < 0 || adv < minAdv {
			minAdv = adv
		}
		if adv > maxAdv {
			maxAdv = adv
		}
	}
	return maxAdv-minAdv <= 1
}

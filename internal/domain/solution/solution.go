// Package solution holds a candidate partition of the roster together with
// its per-group aggregates and scalar cost.
//
// Cost is the sum of absolute deviations of each group's average score from
// the grand mean. Every term is computed on scaled int64 values: for a group
// g the deviation avg(g)-grandAvg is multiplied through by the participant
// count P, giving the integer numerator total(g)*P - grandTotal*size(g).
// Dividing that by size(g) yields a term in units of P*Scale per point,
// which is exact enough to compare solutions deterministically and is only
// rescaled to float points at the reporting boundary.
package solution

import (
	"fmt"

	"github.com/okian/fairsplit/internal/domain/model"
)

// Group is the cached aggregate for one group.
type Group struct {
	Size       int
	Total      int64 // sum of member scores, fixed point
	Advantaged int   // count of advantaged members
}

// Solution owns an assignment of every participant to a group plus the
// derived aggregates and cost. Apply never mutates the receiver; accepted
// moves produce a fresh Solution so the previous one stays valid for
// comparison and backtracking.
type Solution struct {
	participants []model.Participant // shared, never mutated
	assignment   []int               // participant ID -> group index
	groups       []Group
	grandTotal   int64
	cost         int64
}

// New builds a Solution from an assignment, computing all aggregates with a
// single O(n) pass over the participants.
func New(participants []model.Participant, assignment []int, groupCount int) (*Solution, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if groupCount <= 0 || groupCount > len(participants) {
		return nil, ErrBadGroupCount
	}
	if len(assignment) != len(participants) {
		return nil, fmt.Errorf("%w: %d assignments for %d participants", ErrBadAssignment, len(assignment), len(participants))
	}

	s := &Solution{
		participants: participants,
		assignment:   append([]int(nil), assignment...),
		groups:       make([]Group, groupCount),
	}
	for id, g := range s.assignment {
		if g < 0 || g >= groupCount {
			return nil, fmt.Errorf("%w: participant %d assigned to group %d", ErrBadAssignment, id, g)
		}
		p := participants[id]
		s.groups[g].Size++
		s.groups[g].Total += p.Score
		if p.Advantaged {
			s.groups[g].Advantaged++
		}
		s.grandTotal += p.Score
	}
	for g := range s.groups {
		if s.groups[g].Size == 0 {
			return nil, fmt.Errorf("%w: group %d is empty", ErrBadAssignment, g)
		}
	}
	s.cost = s.computeCost()
	return s, nil
}

// term is one group's contribution to the cost: |avg(g)-grandAvg| scaled by
// P*Scale. Integer division truncates below one scaled unit, which is
// deterministic and far below any score resolution we care about.
func (s *Solution) term(total int64, size int) int64 {
	p := int64(len(s.participants))
	num := total*p - s.grandTotal*int64(size)
	if num < 0 {
		num = -num
	}
	return num / int64(size)
}

func (s *Solution) computeCost() int64 {
	var c int64
	for _, g := range s.groups {
		c += s.term(g.Total, g.Size)
	}
	return c
}

// Cost returns the scalar cost in internal scaled units. Lower is better.
func (s *Solution) Cost() int64 { return s.cost }

// CostPoints rescales the cost to score points for reporting.
func (s *Solution) CostPoints() float64 {
	return float64(s.cost) / (float64(len(s.participants)) * model.Scale)
}

// GroupCount returns the number of groups.
func (s *Solution) GroupCount() int { return len(s.groups) }

// ParticipantCount returns the roster size.
func (s *Solution) ParticipantCount() int { return len(s.participants) }

// Participants returns the shared immutable roster.
func (s *Solution) Participants() []model.Participant { return s.participants }

// GroupOf returns the group the given participant is assigned to.
func (s *Solution) GroupOf(id int) int { return s.assignment[id] }

// Groups returns a copy of the per-group aggregates.
func (s *Solution) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// Group returns the aggregate for one group.
func (s *Solution) Group(g int) Group { return s.groups[g] }

// GroupAverage returns a group's average score in points.
func (s *Solution) GroupAverage(g int) float64 {
	grp := s.groups[g]
	if grp.Size == 0 {
		return 0
	}
	return model.UnscaleScore(grp.Total) / float64(grp.Size)
}

// GrandAverage returns the overall mean score in points.
func (s *Solution) GrandAverage() float64 {
	return model.UnscaleScore(s.grandTotal) / float64(len(s.participants))
}

// Members returns the participants assigned to group g in roster order.
func (s *Solution) Members(g int) []model.Participant {
	out := make([]model.Participant, 0, s.groups[g].Size)
	for id, grp := range s.assignment {
		if grp == g {
			out = append(out, s.participants[id])
		}
	}
	return out
}

// checkMove verifies the move references participants actually sitting in
// the groups it names.
func (s *Solution) checkMove(m model.Move) error {
	if m.From == m.To || m.From < 0 || m.To < 0 || m.From >= len(s.groups) || m.To >= len(s.groups) {
		return fmt.Errorf("%w: groups %d and %d", ErrIllegalMove, m.From, m.To)
	}
	if m.A < 0 || m.A >= len(s.assignment) || s.assignment[m.A] != m.From {
		return fmt.Errorf("%w: participant %d not in group %d", ErrIllegalMove, m.A, m.From)
	}
	if m.Kind == model.MoveSwap {
		if m.B < 0 || m.B >= len(s.assignment) || s.assignment[m.B] != m.To {
			return fmt.Errorf("%w: participant %d not in group %d", ErrIllegalMove, m.B, m.To)
		}
	}
	return nil
}

// CostAfter returns the cost the solution would have after applying the move,
// touching only the two affected groups. This is the hot-loop fast path; it
// allocates nothing.
func (s *Solution) CostAfter(m model.Move) (int64, error) {
	if err := s.checkMove(m); err != nil {
		return 0, err
	}

	from, to := s.groups[m.From], s.groups[m.To]
	switch m.Kind {
	case model.MoveSwap:
		diff := s.participants[m.B].Score - s.participants[m.A].Score
		from.Total += diff
		to.Total -= diff
	case model.MoveTransfer:
		score := s.participants[m.A].Score
		from.Total -= score
		from.Size--
		to.Total += score
		to.Size++
		if from.Size == 0 {
			return 0, fmt.Errorf("%w: transfer would empty group %d", ErrIllegalMove, m.From)
		}
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrIllegalMove, m.Kind)
	}

	c := s.cost
	c -= s.term(s.groups[m.From].Total, s.groups[m.From].Size)
	c -= s.term(s.groups[m.To].Total, s.groups[m.To].Size)
	c += s.term(from.Total, from.Size)
	c += s.term(to.Total, to.Size)
	return c, nil
}

// Apply returns a new Solution reflecting the move. The receiver is left
// untouched.
func (s *Solution) Apply(m model.Move) (*Solution, error) {
	if err := s.checkMove(m); err != nil {
		return nil, err
	}

	next := &Solution{
		participants: s.participants,
		assignment:   append([]int(nil), s.assignment...),
		groups:       append([]Group(nil), s.groups...),
		grandTotal:   s.grandTotal,
	}

	switch m.Kind {
	case model.MoveSwap:
		next.assignment[m.A] = m.To
		next.assignment[m.B] = m.From
		diff := s.participants[m.B].Score - s.participants[m.A].Score
		next.groups[m.From].Total += diff
		next.groups[m.To].Total -= diff
		if s.participants[m.A].Advantaged != s.participants[m.B].Advantaged {
			if s.participants[m.A].Advantaged {
				next.groups[m.From].Advantaged--
				next.groups[m.To].Advantaged++
			} else {
				next.groups[m.From].Advantaged++
				next.groups[m.To].Advantaged--
			}
		}
	case model.MoveTransfer:
		if s.groups[m.From].Size <= 1 {
			return nil, fmt.Errorf("%w: transfer would empty group %d", ErrIllegalMove, m.From)
		}
		next.assignment[m.A] = m.To
		p := s.participants[m.A]
		next.groups[m.From].Total -= p.Score
		next.groups[m.From].Size--
		next.groups[m.To].Total += p.Score
		next.groups[m.To].Size++
		if p.Advantaged {
			next.groups[m.From].Advantaged--
			next.groups[m.To].Advantaged++
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrIllegalMove, m.Kind)
	}

	next.cost = next.computeCost()
	return next, nil
}

// Recompute rebuilds every aggregate and the cost from the raw participant
// data, discarding all incrementally tracked state. Workers call this
// periodically as the drift safety net and always at finalization.
func (s *Solution) Recompute() (*Solution, error) {
	return New(s.participants, s.assignment, len(s.groups))
}

// Validate checks the structural invariants: every participant assigned to
// exactly one in-range group, no empty group, sizes within one of each
// other, and, when requireAdvantage is set, advantaged counts within one of
// each other.
func (s *Solution) Validate(requireAdvantage bool) error {
	minSize, maxSize := s.groups[0].Size, s.groups[0].Size
	minAdv, maxAdv := s.groups[0].Advantaged, s.groups[0].Advantaged
	total := 0
	for _, g := range s.groups {
		total += g.Size
		if g.Size < minSize {
			minSize = g.Size
		}
		if g.Size > maxSize {
			maxSize = g.Size
		}
		if g.Advantaged < minAdv {
			minAdv = g.Advantaged
		}
		if g.Advantaged > maxAdv {
			maxAdv = g.Advantaged
		}
	}
	if total != len(s.participants) {
		return fmt.Errorf("%w: %d assigned of %d", ErrBadAssignment, total, len(s.participants))
	}
	if maxSize-minSize > 1 {
		return fmt.Errorf("%w: sizes range %d..%d", ErrSizeImbalance, minSize, maxSize)
	}
	if requireAdvantage && maxAdv-minAdv > 1 {
		return fmt.Errorf("%w: counts range %d..%d", ErrAdvantageImbalance, minAdv, maxAdv)
	}
	return nil
}

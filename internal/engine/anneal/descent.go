package anneal

import (
	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/solution"
)

// defaultPolishPasses bounds the hill-climb polish. Each pass scans every
// cross-group swap once, so a handful of passes is enough to exhaust the
// cheap improvements.
const defaultPolishPasses = 3

// Polish runs a best-improvement swap descent on a finished solution. It is
// applied to scenario champions after the race: annealing leaves small local
// slack behind and a deterministic sweep collects it. Under constraint only
// like-flagged participants trade places, so every invariant the input
// satisfies survives.
func Polish(s *solution.Solution, constrained bool, passes int) (*solution.Solution, error) {
	if passes <= 0 {
		passes = defaultPolishPasses
	}
	participants := s.Participants()

	for pass := 0; pass < passes; pass++ {
		improved := false
		for a := 0; a < len(participants); a++ {
			bestDelta := int64(0)
			bestMove := model.Move{}
			ga := s.GroupOf(a)
			for b := a + 1; b < len(participants); b++ {
				gb := s.GroupOf(b)
				if ga == gb {
					continue
				}
				if constrained && participants[a].Advantaged != participants[b].Advantaged {
					continue
				}
				m := model.Move{Kind: model.MoveSwap, A: a, B: b, From: ga, To: gb}
				cost, err := s.CostAfter(m)
				if err != nil {
					return nil, err
				}
				if delta := cost - s.Cost(); delta < bestDelta {
					bestDelta = delta
					bestMove = m
				}
			}
			if bestDelta < 0 {
				next, err := s.Apply(bestMove)
				if err != nil {
					return nil, err
				}
				s = next
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return s, nil
}

package anneal

import (
	"sort"

	"github.com/okian/fairsplit/internal/domain/model"
	"github.com/okian/fairsplit/internal/domain/solution"
)

// Seed builds the initial solution by dealing participants round-robin into
// groups in descending score order. When constrained, advantaged
// participants are dealt first so each group receives its share before any
// normal participant lands; the deal then continues cyclically, which keeps
// both the size spread and the advantaged spread within one.
func Seed(participants []model.Participant, groupCount int, constrained bool) (*solution.Solution, error) {
	order := make([]int, 0, len(participants))
	if constrained {
		for _, p := range participants {
			if p.Advantaged {
				order = append(order, p.ID)
			}
		}
		advantaged := len(order)
		for _, p := range participants {
			if !p.Advantaged {
				order = append(order, p.ID)
			}
		}
		byScoreDesc(participants, order[:advantaged])
		byScoreDesc(participants, order[advantaged:])
	} else {
		for _, p := range participants {
			order = append(order, p.ID)
		}
		byScoreDesc(participants, order)
	}

	assignment := make([]int, len(participants))
	for i, id := range order {
		assignment[id] = i % groupCount
	}
	return solution.New(participants, assignment, groupCount)
}

func byScoreDesc(participants []model.Participant, ids []int) {
	sort.SliceStable(ids, func(i, j int) bool {
		return participants[ids[i]].Score > participants[ids[j]].Score
	})
}

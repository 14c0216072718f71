// Package arbiter is the last pass before results leave the engine. It
// recomputes every candidate from raw participant data so the reported cost
// owes nothing to state accumulated during the search, and it refuses to
// hand out anything that breaks a structural invariant.
package arbiter

import (
	"fmt"

	"github.com/okian/fairsplit/internal/domain/solution"
)

// Verify fully recomputes a candidate and validates its invariants: every
// participant assigned exactly once, group sizes within one of each other,
// and, when requireAdvantage is set, advantaged counts within one of each
// other. The returned solution is the recomputed one; its cost is exact with
// respect to the fixed-point representation.
func Verify(s *solution.Solution, requireAdvantage bool) (*solution.Solution, error) {
	rec, err := s.Recompute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultInvalid, err)
	}
	if err := rec.Validate(requireAdvantage); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultInvalid, err)
	}
	return rec, nil
}

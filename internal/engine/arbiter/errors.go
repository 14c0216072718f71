package arbiter

import "errors"

// Sentinel kinds for arbitration errors.
var (
	// ErrResultInvalid marks a finalized solution that violates a structural
	// invariant. This is an internal logic defect, never a user input error,
	// and it is always fatal to the run.
	ErrResultInvalid = errors.New("result violates a structural invariant")
)

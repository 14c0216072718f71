package solution

import "errors"

// Sentinel kinds for solution errors.
var (
	ErrNoParticipants     = errors.New("no participants")
	ErrBadGroupCount      = errors.New("group count must be positive and not exceed participant count")
	ErrBadAssignment      = errors.New("assignment does not cover every participant exactly once")
	ErrIllegalMove        = errors.New("move does not apply to this solution")
	ErrSizeImbalance      = errors.New("group sizes differ by more than one")
	ErrAdvantageImbalance = errors.New("advantaged participants differ by more than one across groups")
)

package roster

import "errors"

// Sentinel kinds for roster input errors. These are user-facing input
// problems and must be rejected before any worker starts.
var (
	ErrEmptyRoster    = errors.New("roster has no participants")
	ErrMissingColumns = errors.New("roster sheet is missing the Name or Score column")
	ErrInvalidScore   = errors.New("score is not a finite number")
	ErrBadGroupCount  = errors.New("group count must be positive and not exceed the roster size")
)

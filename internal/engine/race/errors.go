package race

import "errors"

// Sentinel kinds for race errors.
var (
	ErrNoScenarios       = errors.New("race needs at least one scenario")
	ErrDuplicateScenario = errors.New("scenario labels must be unique")
	ErrNoOutcome         = errors.New("no worker produced an outcome")
)

package anneal

import "errors"

// Sentinel kinds for annealing errors.
var (
	ErrBadParams = errors.New("invalid annealing parameters")
)

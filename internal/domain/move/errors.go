package move

import "errors"

// Sentinel kinds for move generation errors.
var (
	ErrNoMove = errors.New("no legal move available")
)

package model

// MoveKind discriminates the two perturbation kinds the generator produces.
type MoveKind string

const (
	// MoveSwap exchanges two participants between two distinct groups.
	MoveSwap MoveKind = "swap"

	// MoveTransfer moves one participant from a larger group to a smaller one.
	MoveTransfer MoveKind = "transfer"
)

// Move is a candidate perturbation of a Solution. For a swap, A sits in From
// and B sits in To and the two trade places. For a transfer, A leaves From
// for To and B is unused.
type Move struct {
	Kind MoveKind
	A    int // participant ID
	B    int // participant ID, swap only
	From int // group index
	To   int // group index
}

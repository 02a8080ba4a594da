package fees

import "errors"

var (
	// ErrBadSchedule indicates split rates that do not sum to 100%.
	ErrBadSchedule = errors.New("fees: invalid fee schedule")

	// ErrBadRoyalty indicates a royalty rate incompatible with the fixed rates.
	ErrBadRoyalty = errors.New("fees: invalid royalty rate")
)

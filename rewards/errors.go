package rewards

import "errors"

var (
	// ErrNoStakeholders indicates a reward deposit against an empty pool; the
	// caller must route the amount elsewhere.
	ErrNoStakeholders = errors.New("rewards: no stakeholders to distribute to")

	// ErrClaimExceedsDeposits indicates a claim that would push total claimed
	// past total deposited. This is an invariant violation, not a user error.
	ErrClaimExceedsDeposits = errors.New("rewards: claim exceeds deposits")

	// ErrAccumulatorOverflow indicates an accounting field would overflow.
	ErrAccumulatorOverflow = errors.New("rewards: accumulator overflow")

	// ErrInvalidPoolData indicates a malformed serialized pool record.
	ErrInvalidPoolData = errors.New("rewards: invalid pool data")

	// ErrInvalidStakeData indicates a malformed serialized stake record.
	ErrInvalidStakeData = errors.New("rewards: invalid stake data")
)

// Package rewards implements weighted reward-pool accounting. A pool carries a
// monotonically increasing, precision-scaled reward-per-share accumulator;
// each stake records the accumulator value already settled against it
// (its reward debt), making claims O(1) regardless of how many deposits or
// stakes exist.
package rewards

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"

	"github.com/mintforge/libmintforge-go/fixedpoint"
)

// Pool is the shared accounting state for one issuance pool.
type Pool struct {
	RewardPerShare  *uint256.Int // scaled by fixedpoint.Precision, only increases
	TotalWeight     uint64       // sum of live stakes' weights
	TotalStakeCount uint64
	TotalDeposited  uint64
	TotalClaimed    uint64
}

// NewPool returns a zeroed pool.
func NewPool() *Pool {
	return &Pool{RewardPerShare: uint256.NewInt(0)}
}

// Clone returns a deep copy.
func (p *Pool) Clone() *Pool {
	return &Pool{
		RewardPerShare:  new(uint256.Int).Set(p.RewardPerShare),
		TotalWeight:     p.TotalWeight,
		TotalStakeCount: p.TotalStakeCount,
		TotalDeposited:  p.TotalDeposited,
		TotalClaimed:    p.TotalClaimed,
	}
}

// AddRewards distributes amount over the pool's current weight by bumping
// RewardPerShare by floor(amount*Precision/TotalWeight). Flooring leaves up to
// TotalWeight-1 scaled units of dust per deposit permanently unclaimable;
// that leakage is bounded and accepted.
//
// An empty pool cannot absorb a deposit: ErrNoStakeholders is returned and
// the caller must route the amount elsewhere. A zero amount is a no-op.
func (p *Pool) AddRewards(amount uint64) error {
	if amount == 0 {
		return nil
	}
	if p.TotalWeight == 0 {
		return ErrNoStakeholders
	}
	if amount > math.MaxUint64-p.TotalDeposited {
		return fmt.Errorf("%w: total deposited", ErrAccumulatorOverflow)
	}
	share, err := fixedpoint.ScaledShare(amount, p.TotalWeight)
	if err != nil {
		return err
	}
	next := new(uint256.Int).Add(p.RewardPerShare, share)
	if err := fixedpoint.CheckScaled(next); err != nil {
		return fmt.Errorf("%w: reward per share", ErrAccumulatorOverflow)
	}
	p.RewardPerShare = next
	p.TotalDeposited += amount
	return nil
}

// AddStake registers a new stake's weight. Must be called after any deposit
// that the new stake is not entitled to.
func (p *Pool) AddStake(weight uint16) {
	p.TotalWeight += uint64(weight)
	p.TotalStakeCount++
}

// RemoveStake deregisters a stake's weight. Subtraction saturates at zero as a
// defensive floor; callers still must prevent double removal at the request
// lifecycle level.
func (p *Pool) RemoveStake(weight uint16) {
	if uint64(weight) > p.TotalWeight {
		p.TotalWeight = 0
	} else {
		p.TotalWeight -= uint64(weight)
	}
	if p.TotalStakeCount > 0 {
		p.TotalStakeCount--
	}
}

// recordClaim accounts a payout against the pool, enforcing that claims never
// exceed deposits. Violations indicate corrupted state and fail loudly rather
// than saturate.
func (p *Pool) recordClaim(amount uint64) error {
	if amount > math.MaxUint64-p.TotalClaimed || p.TotalClaimed+amount > p.TotalDeposited {
		return fmt.Errorf("%w: claim %d, claimed %d, deposited %d",
			ErrClaimExceedsDeposits, amount, p.TotalClaimed, p.TotalDeposited)
	}
	p.TotalClaimed += amount
	return nil
}

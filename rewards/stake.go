package rewards

import (
	"github.com/holiman/uint256"

	"github.com/mintforge/libmintforge-go/fixedpoint"
)

// Stake is the per-stake reward record: a rarity-derived weight plus the
// reward debt already priced in at creation or last settlement.
type Stake struct {
	Weight     uint16
	RewardDebt *uint256.Int // scaled; weight*RewardPerShare at last settlement
}

// NewStake creates a stake against the pool's current accumulator. The debt
// starts at weight*RewardPerShare so the stake owes nothing for rewards
// distributed before it existed.
func NewStake(p *Pool, weight uint16) *Stake {
	return &Stake{
		Weight:     weight,
		RewardDebt: fixedpoint.WeightedDebt(uint64(weight), p.RewardPerShare),
	}
}

// Clone returns a deep copy.
func (s *Stake) Clone() *Stake {
	return &Stake{Weight: s.Weight, RewardDebt: new(uint256.Int).Set(s.RewardDebt)}
}

// accrued returns weight*RewardPerShare at the pool's current accumulator.
func (s *Stake) accrued(p *Pool) *uint256.Int {
	return fixedpoint.WeightedDebt(uint64(s.Weight), p.RewardPerShare)
}

// Pending returns the stake's claimable amount in whole units:
// floor((weight*RewardPerShare - RewardDebt)/Precision). Defined as zero when
// the subtraction would go negative, guarding against rounding artifacts.
func (s *Stake) Pending(p *Pool) uint64 {
	accrued := s.accrued(p)
	if accrued.Lt(s.RewardDebt) {
		return 0
	}
	diff := accrued.Sub(accrued, s.RewardDebt)
	pending, err := fixedpoint.Unscale(diff)
	if err != nil {
		return 0
	}
	return pending
}

// Claim settles the stake in full: it returns the pending amount, advances the
// debt to the current accumulator, and accounts the payout against the pool.
func (s *Stake) Claim(p *Pool) (uint64, error) {
	accrued := s.accrued(p)
	var pending uint64
	if !accrued.Lt(s.RewardDebt) {
		diff := new(uint256.Int).Sub(accrued, s.RewardDebt)
		var err error
		pending, err = fixedpoint.Unscale(diff)
		if err != nil {
			return 0, err
		}
	}
	if pending > 0 {
		if err := p.recordClaim(pending); err != nil {
			return 0, err
		}
	}
	s.RewardDebt = accrued
	return pending, nil
}

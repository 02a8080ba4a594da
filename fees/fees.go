// Package fees implements deterministic basis-point splits of sale proceeds.
// Percentage cuts are floored on wide intermediates and the primary recipient
// absorbs the remainder, so the parts of a split always sum exactly to the
// input amount.
package fees

import (
	"fmt"

	"github.com/mintforge/libmintforge-go/fixedpoint"
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = 10000

// Schedule holds the primary-sale split rates in basis points. The four rates
// must sum to exactly BpsDenominator.
type Schedule struct {
	CreatorBps      uint64 `yaml:"creator_bps"`
	PlatformBps     uint64 `yaml:"platform_bps"`
	EcosystemBps    uint64 `yaml:"ecosystem_bps"`
	HolderRewardBps uint64 `yaml:"holder_reward_bps"`
}

// DefaultSchedule returns the reference split: 80% creator, 5% platform,
// 3% ecosystem, 12% holder reward.
func DefaultSchedule() Schedule {
	return Schedule{
		CreatorBps:      8000,
		PlatformBps:     500,
		EcosystemBps:    300,
		HolderRewardBps: 1200,
	}
}

// Validate checks the schedule's rates.
func (s Schedule) Validate() error {
	sum := s.CreatorBps + s.PlatformBps + s.EcosystemBps + s.HolderRewardBps
	if sum != BpsDenominator {
		return fmt.Errorf("%w: rates sum to %d, want %d", ErrBadSchedule, sum, BpsDenominator)
	}
	return nil
}

// PrimarySplit is the outcome of splitting a primary-sale payment.
type PrimarySplit struct {
	Creator      uint64
	Platform     uint64
	Ecosystem    uint64
	HolderReward uint64
}

// Total returns the sum of all parts.
func (p PrimarySplit) Total() uint64 {
	return p.Creator + p.Platform + p.Ecosystem + p.HolderReward
}

// SplitPrimary splits amount by the schedule. The platform, ecosystem and
// holder-reward cuts are floored; the creator takes amount minus the three
// cuts, absorbing all rounding. When hadExistingStakes is false there are no
// stakeholders to share with, so the holder-reward cut is redirected to the
// creator and HolderReward is zero.
func (s Schedule) SplitPrimary(amount uint64, hadExistingStakes bool) (PrimarySplit, error) {
	if err := s.Validate(); err != nil {
		return PrimarySplit{}, err
	}
	platform, err := fixedpoint.MulDiv(amount, s.PlatformBps, BpsDenominator)
	if err != nil {
		return PrimarySplit{}, err
	}
	ecosystem, err := fixedpoint.MulDiv(amount, s.EcosystemBps, BpsDenominator)
	if err != nil {
		return PrimarySplit{}, err
	}
	holder, err := fixedpoint.MulDiv(amount, s.HolderRewardBps, BpsDenominator)
	if err != nil {
		return PrimarySplit{}, err
	}
	creator := amount - platform - ecosystem - holder
	if !hadExistingStakes {
		creator += holder
		holder = 0
	}
	return PrimarySplit{
		Creator:      creator,
		Platform:     platform,
		Ecosystem:    ecosystem,
		HolderReward: holder,
	}, nil
}

// SecondarySplit is the outcome of splitting a secondary-sale payment.
type SecondarySplit struct {
	Royalty   uint64
	Platform  uint64
	Ecosystem uint64
	Seller    uint64
}

// Total returns the sum of all parts.
func (p SecondarySplit) Total() uint64 {
	return p.Royalty + p.Platform + p.Ecosystem + p.Seller
}

// SplitSecondary splits a secondary-sale amount: royaltyBps to the creator,
// the schedule's platform and ecosystem rates off the top, seller absorbing
// the remainder. The combined rates must not exceed 100%.
func (s Schedule) SplitSecondary(amount, royaltyBps uint64) (SecondarySplit, error) {
	if royaltyBps+s.PlatformBps+s.EcosystemBps > BpsDenominator {
		return SecondarySplit{}, fmt.Errorf("%w: royalty %d bps plus fixed rates exceeds %d",
			ErrBadRoyalty, royaltyBps, BpsDenominator)
	}
	royalty, err := fixedpoint.MulDiv(amount, royaltyBps, BpsDenominator)
	if err != nil {
		return SecondarySplit{}, err
	}
	platform, err := fixedpoint.MulDiv(amount, s.PlatformBps, BpsDenominator)
	if err != nil {
		return SecondarySplit{}, err
	}
	ecosystem, err := fixedpoint.MulDiv(amount, s.EcosystemBps, BpsDenominator)
	if err != nil {
		return SecondarySplit{}, err
	}
	return SecondarySplit{
		Royalty:   royalty,
		Platform:  platform,
		Ecosystem: ecosystem,
		Seller:    amount - royalty - platform - ecosystem,
	}, nil
}

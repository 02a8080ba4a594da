// Package fixedpoint provides precision-scaled integer arithmetic for the
// reward accounting core. All reward-per-share values are carried as 128-bit
// integers scaled by Precision; helpers here keep intermediates in 256-bit
// space so no multiplication can silently truncate.
package fixedpoint

import (
	"github.com/holiman/uint256"
)

// Precision is the fixed-point scale factor applied to reward-per-share
// accumulators. One whole payment unit equals Precision scaled units.
const Precision = 1_000_000_000_000

// MaxScaledBits bounds scaled accumulator values to 128 bits, matching the
// persisted record layout.
const MaxScaledBits = 128

var precision = uint256.NewInt(Precision)

// MulDiv returns floor(a*b/div) computed on 256-bit intermediates.
func MulDiv(a, b, div uint64) (uint64, error) {
	if div == 0 {
		return 0, ErrDivideByZero
	}
	q := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	q.Div(q, uint256.NewInt(div))
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// ScaledShare returns floor(amount*Precision/totalWeight) as a scaled value.
// This is the per-weight-unit accrual added to a reward-per-share accumulator
// when amount is distributed over totalWeight.
func ScaledShare(amount, totalWeight uint64) (*uint256.Int, error) {
	if totalWeight == 0 {
		return nil, ErrDivideByZero
	}
	q := new(uint256.Int).Mul(uint256.NewInt(amount), precision)
	return q.Div(q, uint256.NewInt(totalWeight)), nil
}

// WeightedDebt returns weight*rps as a new scaled value. It is the settlement
// baseline recorded on a stake so rewards distributed before the stake existed
// are never claimable by it.
func WeightedDebt(weight uint64, rps *uint256.Int) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(weight), rps)
}

// Unscale converts a scaled value back to whole payment units, flooring.
func Unscale(x *uint256.Int) (uint64, error) {
	q := new(uint256.Int).Div(x, precision)
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// CheckScaled reports whether x fits the persisted 128-bit accumulator width.
func CheckScaled(x *uint256.Int) error {
	if x.BitLen() > MaxScaledBits {
		return ErrOverflow
	}
	return nil
}

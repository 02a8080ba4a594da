// Package rarity maps random output to a tier and reward weight. Tier
// selection is a pure table lookup over a roll in [0, RollRange); the table is
// configurable but ships with the reference five-tier distribution.
package rarity

import (
	"encoding/binary"
	"fmt"
)

// Tier identifies a rarity class.
type Tier uint8

const (
	Common Tier = iota
	Uncommon
	Rare
	Epic
	Legendary
)

var tierNames = map[Tier]string{
	Common:    "common",
	Uncommon:  "uncommon",
	Rare:      "rare",
	Epic:      "epic",
	Legendary: "legendary",
}

// String returns the lowercase tier label.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", uint8(t))
}

// ParseTier converts a label back to a Tier.
func ParseTier(name string) (Tier, error) {
	for t, n := range tierNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// RollRange is the exclusive upper bound of rarity rolls. Band boundaries are
// expressed in units of 1/RollRange (basis points of probability).
const RollRange = 10000

// rollWidth is the number of random bytes consumed to derive a roll.
const rollWidth = 8

// Band is a half-open probability band [Start, End). A roll equal to Start
// belongs to this band; a roll equal to End belongs to the next one.
type Band struct {
	Tier   Tier
	Start  uint64
	End    uint64
	Weight uint16
}

// Table is an ordered, contiguous set of bands covering [0, RollRange).
type Table struct {
	bands []Band
}

// NewTable validates bands and builds a lookup table. Bands must be ordered,
// contiguous from 0 to RollRange, and carry nonzero weights.
func NewTable(bands []Band) (*Table, error) {
	if len(bands) == 0 {
		return nil, ErrEmptyTable
	}
	var next uint64
	for i, b := range bands {
		if b.Start != next {
			return nil, fmt.Errorf("%w: band %d starts at %d, want %d", ErrBandGap, i, b.Start, next)
		}
		if b.End <= b.Start {
			return nil, fmt.Errorf("%w: band %d [%d,%d)", ErrBandEmpty, i, b.Start, b.End)
		}
		if b.Weight == 0 {
			return nil, fmt.Errorf("%w: band %d (%s)", ErrZeroWeight, i, b.Tier)
		}
		next = b.End
	}
	if next != RollRange {
		return nil, fmt.Errorf("%w: bands end at %d, want %d", ErrBandGap, next, RollRange)
	}
	return &Table{bands: append([]Band(nil), bands...)}, nil
}

// DefaultTable returns the reference distribution:
// [0,5500) common w1, [5500,8200) uncommon w5, [8200,9500) rare w20,
// [9500,9900) epic w60, [9900,10000) legendary w120.
func DefaultTable() *Table {
	t, err := NewTable([]Band{
		{Tier: Common, Start: 0, End: 5500, Weight: 1},
		{Tier: Uncommon, Start: 5500, End: 8200, Weight: 5},
		{Tier: Rare, Start: 8200, End: 9500, Weight: 20},
		{Tier: Epic, Start: 9500, End: 9900, Weight: 60},
		{Tier: Legendary, Start: 9900, End: RollRange, Weight: 120},
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return t
}

// Bands returns a copy of the table's bands.
func (t *Table) Bands() []Band {
	return append([]Band(nil), t.bands...)
}

// Lookup returns the tier and weight whose band contains roll.
func (t *Table) Lookup(roll uint64) (Tier, uint16, error) {
	if roll >= RollRange {
		return 0, 0, fmt.Errorf("%w: roll %d", ErrRollOutOfRange, roll)
	}
	for _, b := range t.bands {
		if roll >= b.Start && roll < b.End {
			return b.Tier, b.Weight, nil
		}
	}
	// Unreachable for a validated table.
	return 0, 0, fmt.Errorf("%w: roll %d", ErrRollOutOfRange, roll)
}

// DeriveTier reduces random bytes to a roll and selects its band. The first
// rollWidth bytes are interpreted as a big-endian integer modulo RollRange.
func (t *Table) DeriveTier(randomBytes []byte) (Tier, uint16, error) {
	if len(randomBytes) < rollWidth {
		return 0, 0, fmt.Errorf("%w: need %d bytes, got %d", ErrShortRandomness, rollWidth, len(randomBytes))
	}
	roll := binary.BigEndian.Uint64(randomBytes[:rollWidth]) % RollRange
	return t.Lookup(roll)
}

// DeriveTier selects from the default table.
func DeriveTier(randomBytes []byte) (Tier, uint16, error) {
	return DefaultTable().DeriveTier(randomBytes)
}

package rarity

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rollBytes builds a 32-byte random output whose derived roll equals roll.
func rollBytes(roll uint64) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint64(buf[:8], roll)
	return buf
}

func TestLookup_Bands(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		roll   uint64
		tier   Tier
		weight uint16
	}{
		{0, Common, 1},
		{100, Common, 1},
		{5499, Common, 1},
		{5500, Uncommon, 5}, // boundary belongs to the upper band
		{8199, Uncommon, 5},
		{8200, Rare, 20},
		{9499, Rare, 20},
		{9500, Epic, 60},
		{9899, Epic, 60},
		{9900, Legendary, 120},
		{9999, Legendary, 120},
	}
	for _, tt := range tests {
		tier, weight, err := table.Lookup(tt.roll)
		require.NoError(t, err, "roll %d", tt.roll)
		assert.Equal(t, tt.tier, tier, "roll %d", tt.roll)
		assert.Equal(t, tt.weight, weight, "roll %d", tt.roll)
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	_, _, err := DefaultTable().Lookup(RollRange)
	assert.ErrorIs(t, err, ErrRollOutOfRange)
}

func TestDeriveTier(t *testing.T) {
	tier, weight, err := DeriveTier(rollBytes(9999))
	require.NoError(t, err)
	assert.Equal(t, Legendary, tier)
	assert.Equal(t, uint16(120), weight)

	// Values beyond RollRange reduce modulo RollRange.
	tier, weight, err = DeriveTier(rollBytes(RollRange + 100))
	require.NoError(t, err)
	assert.Equal(t, Common, tier)
	assert.Equal(t, uint16(1), weight)
}

func TestDeriveTier_ShortInput(t *testing.T) {
	_, _, err := DeriveTier([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrShortRandomness)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name  string
		bands []Band
		want  error
	}{
		{"empty", nil, ErrEmptyTable},
		{"gap at start", []Band{{Tier: Common, Start: 1, End: RollRange, Weight: 1}}, ErrBandGap},
		{"gap in middle", []Band{
			{Tier: Common, Start: 0, End: 5000, Weight: 1},
			{Tier: Rare, Start: 6000, End: RollRange, Weight: 20},
		}, ErrBandGap},
		{"short coverage", []Band{{Tier: Common, Start: 0, End: 9000, Weight: 1}}, ErrBandGap},
		{"empty band", []Band{
			{Tier: Common, Start: 0, End: 0, Weight: 1},
		}, ErrBandEmpty},
		{"zero weight", []Band{{Tier: Common, Start: 0, End: RollRange, Weight: 0}}, ErrZeroWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.bands)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{Common, Uncommon, Rare, Epic, Legendary} {
		parsed, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}

	_, err := ParseTier("mythic")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

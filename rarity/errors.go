package rarity

import "errors"

var (
	// ErrEmptyTable indicates a table with no bands.
	ErrEmptyTable = errors.New("rarity: empty tier table")

	// ErrBandGap indicates bands that do not tile [0, RollRange) contiguously.
	ErrBandGap = errors.New("rarity: tier bands not contiguous")

	// ErrBandEmpty indicates a band whose end does not exceed its start.
	ErrBandEmpty = errors.New("rarity: empty tier band")

	// ErrZeroWeight indicates a band with weight zero.
	ErrZeroWeight = errors.New("rarity: zero tier weight")

	// ErrRollOutOfRange indicates a roll outside [0, RollRange).
	ErrRollOutOfRange = errors.New("rarity: roll out of range")

	// ErrShortRandomness indicates too few random bytes to derive a roll.
	ErrShortRandomness = errors.New("rarity: short randomness")

	// ErrUnknownTier indicates an unrecognized tier label.
	ErrUnknownTier = errors.New("rarity: unknown tier")
)

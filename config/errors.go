package config

import "errors"

var (
	// ErrEmptyCurrency indicates no payment currency was configured.
	ErrEmptyCurrency = errors.New("config: currency must not be empty")

	// ErrInvalidCancelDelay indicates a non-positive cancel grace period.
	ErrInvalidCancelDelay = errors.New("config: min cancel delay must be positive")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrInvalidFees indicates a malformed fee schedule.
	ErrInvalidFees = errors.New("config: invalid fee schedule")

	// ErrInvalidTierBand indicates a malformed rarity tier band.
	ErrInvalidTierBand = errors.New("config: invalid tier band")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the config file could not be parsed.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")
)

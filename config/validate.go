package config

import (
	"fmt"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.Currency == "" {
		return ErrEmptyCurrency
	}

	if cfg.MinCancelDelay <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCancelDelay, cfg.MinCancelDelay)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if err := cfg.Fees.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFees, err)
	}

	if _, err := cfg.TierTable(); err != nil {
		return err
	}

	return nil
}

// Package config holds the tunable parameters of the minting engine: the
// payment currency, the cancel grace period, the fee schedule and the rarity
// tier table. Configuration is an explicit value passed into the engine, never
// ambient state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mintforge/libmintforge-go/fees"
	"github.com/mintforge/libmintforge-go/rarity"
)

// DefaultMinCancelDelay is the default grace period, in ledger time units,
// before a pending commit may be cancelled. It is a heuristic upper bound on
// randomness latency, configurable per deployment.
const DefaultMinCancelDelay = 600

// TierBand is the configuration form of a rarity band.
type TierBand struct {
	Tier   string `yaml:"tier"`
	Start  uint64 `yaml:"start"`
	End    uint64 `yaml:"end"`
	Weight uint16 `yaml:"weight"`
}

// Config collects all engine parameters.
type Config struct {
	// Currency is the payment currency items must be priced in.
	Currency string `yaml:"currency"`

	// MinCancelDelay is the minimum age, in ledger time units, before a
	// pending commit may be cancelled.
	MinCancelDelay int64 `yaml:"min_cancel_delay"`

	// DataDir is where durable state lives. Empty selects in-memory state.
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Fees is the primary-sale split schedule.
	Fees fees.Schedule `yaml:"fees"`

	// Tiers overrides the default rarity table when non-empty.
	Tiers []TierBand `yaml:"tiers"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Currency:       "credits",
		MinCancelDelay: DefaultMinCancelDelay,
		LogLevel:       "info",
		Fees:           fees.DefaultSchedule(),
	}
}

// LoadConfig reads a YAML config file over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TierTable builds the rarity table from the configured bands, or the default
// table when none are configured.
func (c Config) TierTable() (*rarity.Table, error) {
	if len(c.Tiers) == 0 {
		return rarity.DefaultTable(), nil
	}
	bands := make([]rarity.Band, len(c.Tiers))
	for i, tb := range c.Tiers {
		tier, err := rarity.ParseTier(tb.Tier)
		if err != nil {
			return nil, fmt.Errorf("%w: band %d: %w", ErrInvalidTierBand, i, err)
		}
		bands[i] = rarity.Band{Tier: tier, Start: tb.Start, End: tb.End, Weight: tb.Weight}
	}
	table, err := rarity.NewTable(bands)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTierBand, err)
	}
	return table, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/libmintforge-go/rarity"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "credits", cfg.Currency)
	assert.Equal(t, int64(DefaultMinCancelDelay), cfg.MinCancelDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestDefaultConfig_TierTable(t *testing.T) {
	table, err := DefaultConfig().TierTable()
	require.NoError(t, err)

	tier, weight, err := table.Lookup(9999)
	require.NoError(t, err)
	assert.Equal(t, rarity.Legendary, tier)
	assert.Equal(t, uint16(120), weight)
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty currency", func(c *Config) { c.Currency = "" }, ErrEmptyCurrency},
		{"zero delay", func(c *Config) { c.MinCancelDelay = 0 }, ErrInvalidCancelDelay},
		{"negative delay", func(c *Config) { c.MinCancelDelay = -1 }, ErrInvalidCancelDelay},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"bad fees", func(c *Config) { c.Fees.PlatformBps = 9999 }, ErrInvalidFees},
		{"bad tier name", func(c *Config) {
			c.Tiers = []TierBand{{Tier: "mythic", Start: 0, End: 10000, Weight: 1}}
		}, ErrInvalidTierBand},
		{"bad tier coverage", func(c *Config) {
			c.Tiers = []TierBand{{Tier: "common", Start: 0, End: 9000, Weight: 1}}
		}, ErrInvalidTierBand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// LoadConfig tests
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency: gems
min_cancel_delay: 120
log_level: debug
fees:
  creator_bps: 7000
  platform_bps: 1000
  ecosystem_bps: 500
  holder_reward_bps: 1500
tiers:
  - {tier: common, start: 0, end: 9000, weight: 1}
  - {tier: legendary, start: 9000, end: 10000, weight: 100}
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gems", cfg.Currency)
	assert.Equal(t, int64(120), cfg.MinCancelDelay)
	assert.Equal(t, uint64(1500), cfg.Fees.HolderRewardBps)

	table, err := cfg.TierTable()
	require.NoError(t, err)
	tier, weight, err := table.Lookup(9000)
	require.NoError(t, err)
	assert.Equal(t, rarity.Legendary, tier)
	assert.Equal(t, uint16(100), weight)
}

func TestLoadConfig_DefaultsApply(t *testing.T) {
	path := writeConfig(t, "currency: gems\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMinCancelDelay), cfg.MinCancelDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Fees.Validate())
}

func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "currency: [broken\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfigFile)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, "currency: gems\nmin_cancel_delay: -5\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidCancelDelay)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cpq-ors/internal/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestConfigWithDefaults(t *testing.T) {
	t.Run("empty config becomes the default", func(t *testing.T) {
		got := ConfigWithDefaults(config.EngineConfig{})
		assert.Equal(t, DefaultConfig(), got)
	})

	t.Run("partial overrides survive", func(t *testing.T) {
		got := ConfigWithDefaults(config.EngineConfig{
			LowTierMax: 25,
			Approvers:  config.ApproverRoles{CSM: "Customer Success"},
		})
		assert.InDelta(t, 25, got.LowTierMax, 0.001)
		assert.InDelta(t, 60, got.MediumTierMax, 0.001)
		assert.Equal(t, "Customer Success", got.Approvers.CSM)
		assert.Equal(t, "Sales Ops", got.Approvers.SalesOps)
		assert.Len(t, got.MultiplierTiers, 5)
	})
}

func TestValidateConfig(t *testing.T) {
	mutate := func(f func(*config.EngineConfig)) config.EngineConfig {
		c := DefaultConfig()
		f(&c)
		return c
	}

	tests := []struct {
		name string
		cfg  config.EngineConfig
	}{
		{"no tiers", mutate(func(c *config.EngineConfig) { c.MultiplierTiers = nil })},
		{"non-ascending tiers", mutate(func(c *config.EngineConfig) {
			c.MultiplierTiers[1].UpTo = 40_000
		})},
		{"unbounded tier not last", mutate(func(c *config.EngineConfig) {
			c.MultiplierTiers[0].UpTo = 0
		})},
		{"bounded final tier", mutate(func(c *config.EngineConfig) {
			c.MultiplierTiers[4].UpTo = 2_000_000
		})},
		{"zero multiplier", mutate(func(c *config.EngineConfig) {
			c.MultiplierTiers[2].Multiplier = 0
		})},
		{"low boundary above 100", mutate(func(c *config.EngineConfig) { c.LowTierMax = 120 })},
		{"medium below low", mutate(func(c *config.EngineConfig) { c.MediumTierMax = 20 })},
		{"floor above 100", mutate(func(c *config.EngineConfig) { c.NonStandardFloor = 150 })},
		{"break score negative", mutate(func(c *config.EngineConfig) { c.BreakClauseScore = -1 })},
		{"blank approver role", mutate(func(c *config.EngineConfig) { c.Approvers.Legal = " " })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateConfig(tt.cfg))
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.MultiplierTiers = nil
	_, err := New(c)
	assert.Error(t, err)
}

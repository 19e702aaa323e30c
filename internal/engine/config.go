package engine

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cpq-ors/internal/config"
)

// DefaultConfig returns the engine parameters of the ORS framework v1.
func DefaultConfig() config.EngineConfig {
	return config.EngineConfig{
		MultiplierTiers: []config.MultiplierTier{
			{UpTo: 50_000, Multiplier: 0.8},
			{UpTo: 150_000, Multiplier: 1.0},
			{UpTo: 500_000, Multiplier: 1.3},
			{UpTo: 1_000_000, Multiplier: 1.6},
			{UpTo: 0, Multiplier: 2.0},
		},

		LowTierMax:    30,
		MediumTierMax: 60,

		NonStandardFloor: 50,
		BreakClauseScore: 95,

		Approvers: config.ApproverRoles{
			SalesOps:     "Sales Ops",
			RevOps:       "RevOps",
			Finance:      "Finance",
			Legal:        "Legal",
			DeliveryLead: "Delivery Lead",
			CSM:          "CSM",
		},
	}
}

// ConfigWithDefaults returns a copy of base with every zero-valued field
// filled from DefaultConfig, so a partial config file only overrides what
// it names.
func ConfigWithDefaults(base config.EngineConfig) config.EngineConfig {
	def := DefaultConfig()
	c := base

	if len(c.MultiplierTiers) == 0 {
		c.MultiplierTiers = def.MultiplierTiers
	}
	if c.LowTierMax == 0 {
		c.LowTierMax = def.LowTierMax
	}
	if c.MediumTierMax == 0 {
		c.MediumTierMax = def.MediumTierMax
	}
	if c.NonStandardFloor == 0 {
		c.NonStandardFloor = def.NonStandardFloor
	}
	if c.BreakClauseScore == 0 {
		c.BreakClauseScore = def.BreakClauseScore
	}

	if c.Approvers.SalesOps == "" {
		c.Approvers.SalesOps = def.Approvers.SalesOps
	}
	if c.Approvers.RevOps == "" {
		c.Approvers.RevOps = def.Approvers.RevOps
	}
	if c.Approvers.Finance == "" {
		c.Approvers.Finance = def.Approvers.Finance
	}
	if c.Approvers.Legal == "" {
		c.Approvers.Legal = def.Approvers.Legal
	}
	if c.Approvers.DeliveryLead == "" {
		c.Approvers.DeliveryLead = def.Approvers.DeliveryLead
	}
	if c.Approvers.CSM == "" {
		c.Approvers.CSM = def.Approvers.CSM
	}

	return c
}

// ValidateConfig checks that an EngineConfig is internally consistent.
func ValidateConfig(c config.EngineConfig) error {
	var errs []string

	if len(c.MultiplierTiers) == 0 {
		errs = append(errs, "multiplier_tiers must not be empty")
	}
	var prev int64
	for i, t := range c.MultiplierTiers {
		if t.Multiplier <= 0 {
			errs = append(errs, fmt.Sprintf("multiplier_tiers[%d].multiplier must be > 0", i))
		}
		last := i == len(c.MultiplierTiers)-1
		if t.UpTo == 0 && !last {
			errs = append(errs, fmt.Sprintf("multiplier_tiers[%d].up_to is unbounded but not the last tier", i))
		}
		if t.UpTo != 0 {
			if t.UpTo <= prev {
				errs = append(errs, fmt.Sprintf("multiplier_tiers[%d].up_to must ascend", i))
			}
			prev = t.UpTo
			if last {
				errs = append(errs, "last multiplier tier must be unbounded (up_to: 0)")
			}
		}
	}

	if c.LowTierMax <= 0 || c.LowTierMax > 100 {
		errs = append(errs, "low_tier_max must be in (0, 100]")
	}
	if c.MediumTierMax <= c.LowTierMax || c.MediumTierMax > 100 {
		errs = append(errs, "medium_tier_max must be > low_tier_max and <= 100")
	}

	if c.NonStandardFloor < 0 || c.NonStandardFloor > 100 {
		errs = append(errs, "non_standard_floor must be between 0 and 100")
	}
	if c.BreakClauseScore < 0 || c.BreakClauseScore > 100 {
		errs = append(errs, "break_clause_score must be between 0 and 100")
	}

	roles := map[string]string{
		"sales_ops":     c.Approvers.SalesOps,
		"rev_ops":       c.Approvers.RevOps,
		"finance":       c.Approvers.Finance,
		"legal":         c.Approvers.Legal,
		"delivery_lead": c.Approvers.DeliveryLead,
		"csm":           c.Approvers.CSM,
	}
	for name, v := range roles {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Sprintf("approvers.%s must not be empty", name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("engine: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Package engine implements the Opportunity Risk Score (ORS) computation
// used to route deals to the correct approval tier in the CPQ workflow.
//
// Every deal is evaluated through four sequential stages: a base score
// derived from the deal type, additive risk contributions (discount, term,
// project duration, PS value, payment terms), an ACV-driven multiplier, and
// absolute overrides with tier classification. Scores range 0-100; deals
// above the medium boundary require Tier 2 sign-off before they can proceed.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/cpq-ors/internal/config"
	"github.com/sells-group/cpq-ors/internal/model"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// multiplierTier is one resolved step of the ACV multiplier function.
type multiplierTier struct {
	upTo int64 // inclusive upper bound in dollars; 0 = unbounded
	mult decimal.Decimal
}

// Engine evaluates deals against a fixed parameter set. It holds no state
// between evaluations and is safe for concurrent use.
type Engine struct {
	cfg   config.EngineConfig
	tiers []multiplierTier

	lowMax           decimal.Decimal
	mediumMax        decimal.Decimal
	nonStandardFloor decimal.Decimal
	breakClauseScore decimal.Decimal
}

// New builds an Engine from the given parameters. The config must already be
// complete (see ConfigWithDefaults) and is validated here.
func New(cfg config.EngineConfig) (*Engine, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	tiers := make([]multiplierTier, len(cfg.MultiplierTiers))
	for i, t := range cfg.MultiplierTiers {
		tiers[i] = multiplierTier{upTo: t.UpTo, mult: decimal.NewFromFloat(t.Multiplier)}
	}

	return &Engine{
		cfg:              cfg,
		tiers:            tiers,
		lowMax:           decimal.NewFromFloat(cfg.LowTierMax),
		mediumMax:        decimal.NewFromFloat(cfg.MediumTierMax),
		nonStandardFloor: decimal.NewFromFloat(cfg.NonStandardFloor),
		breakClauseScore: decimal.NewFromFloat(cfg.BreakClauseScore),
	}, nil
}

// Config returns the parameter set the engine was built with.
func (e *Engine) Config() config.EngineConfig {
	return e.cfg
}

// Score evaluates one deal. The input is assumed valid (DealInput.Validate);
// the result is a pure function of the input and the engine parameters.
func (e *Engine) Score(in model.DealInput) model.ScoreResult {
	base := baseScore(&in)
	baseORS := clampScore(base + riskAdders(&in))

	mult := e.resolveMultiplier(in.ACVForMultiplier())
	preOverride := decimal.NewFromInt(int64(baseORS)).Mul(mult)
	if preOverride.GreaterThan(hundred) {
		preOverride = hundred
	}

	final := e.applyOverrides(preOverride, &in)

	return model.ScoreResult{
		BaseORS:    baseORS,
		Multiplier: mult,
		FinalORS:   final,
		Tier:       e.classify(final),
		Approvers:  e.deriveApprovers(final, &in),
	}
}

// clampScore bounds an accumulated score to [0,100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

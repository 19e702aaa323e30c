package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/cpq-ors/internal/model"
)

// applyOverrides applies the stage-4 absolute overrides in order. Overrides
// may only raise the score; the break clause is an absolute set that wins
// over the non-standard floor regardless of the prior value.
func (e *Engine) applyOverrides(preOverride decimal.Decimal, in *model.DealInput) decimal.Decimal {
	final := preOverride
	if in.NonStandardContract && final.LessThan(e.nonStandardFloor) {
		final = e.nonStandardFloor
	}
	if in.BreakClauseNoPenalty {
		final = e.breakClauseScore
	}
	if final.GreaterThan(hundred) {
		final = hundred
	}
	return final
}

// classify buckets a final score into its risk tier. Boundaries are
// inclusive on the lower tier.
func (e *Engine) classify(final decimal.Decimal) model.RiskTier {
	switch {
	case final.LessThanOrEqual(e.lowMax):
		return model.TierLow
	case final.LessThanOrEqual(e.mediumMax):
		return model.TierMedium
	default:
		return model.TierHigh
	}
}

// deriveApprovers builds the required approver set for a scored deal. Each
// rule adds independently; duplicates collapse and the result is sorted so
// identical inputs render identically.
func (e *Engine) deriveApprovers(final decimal.Decimal, in *model.DealInput) []string {
	roles := e.cfg.Approvers
	set := make(map[string]struct{})
	add := func(role string) { set[role] = struct{}{} }

	if final.GreaterThan(e.lowMax) {
		add(roles.SalesOps)
	}
	if final.GreaterThan(e.mediumMax) {
		add(roles.RevOps)
		add(roles.Finance)
		if in.RevenueTypes.Contains(model.RevenueLicense) || in.BreakClauseNoPenalty {
			add(roles.Legal)
		}
		if in.RevenueTypes.Contains(model.RevenueProject) {
			add(roles.DeliveryLead)
		}
	}
	if in.DealType.IsReduction() {
		add(roles.CSM)
	}

	out := make([]string, 0, len(set))
	for role := range set {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

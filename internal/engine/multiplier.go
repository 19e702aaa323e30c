package engine

import "github.com/shopspring/decimal"

// resolveMultiplier maps the relevant ACV figure to its multiplier tier.
// Tiers are validated ascending with an unbounded final tier, so the scan
// always terminates on a match.
func (e *Engine) resolveMultiplier(acv int64) decimal.Decimal {
	for _, t := range e.tiers {
		if t.upTo == 0 || acv <= t.upTo {
			return t.mult
		}
	}
	return e.tiers[len(e.tiers)-1].mult
}

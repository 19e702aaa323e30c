package engine

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/cpq-ors/internal/model"
)

// baseScore derives the unclamped stage-1 risk value from the deal type and
// its type-specific fields. Exactly one branch applies per deal.
func baseScore(in *model.DealInput) int {
	switch in.DealType {
	case model.DealTypeCancellation:
		return cancellationBase(in)
	case model.DealTypeDownsell:
		return downsellBase(in)
	case model.DealTypeUpsell:
		return upsellBase(in)
	case model.DealTypeCrossSell:
		return crossSellBase(in)
	case model.DealTypeNetNew:
		return netNewBase(in)
	}
	return 0
}

func cancellationBase(in *model.DealInput) int {
	score := 80
	if in.CustomerHealth < 50 {
		score += 10
	}
	if in.Strategic {
		score += 15
	}
	if !in.MinTermMet {
		score += 20 // early termination
	} else {
		score += 5
	}
	return score
}

func downsellBase(in *model.DealInput) int {
	score := 40
	// The v1 framework intended an ACV-delta signal here, but as written the
	// rule reads the discount fraction, which is never negative, so this
	// branch cannot fire. Kept verbatim until the rule owner resolves it.
	if in.DiscountPct.LessThan(decimal.NewFromFloat(-0.25)) {
		score += 30
	}
	// Proxy: treat a discount above 25% as a ~30% downsell.
	if in.DiscountPct.GreaterThan(decimal.NewFromFloat(0.25)) {
		score += 30
	}
	if retainedValueRatio(in).LessThan(decimal.NewFromFloat(0.5)) {
		score += 20
	}
	if in.RevenueTypes.Contains(model.RevenueLicense) || in.RevenueTypes.Contains(model.RevenueManagedService) {
		score += 15
	} else {
		score += 5
	}
	return score
}

// retainedValueRatio compares the current ACV against the pre-discount ACV
// implied by the discount fraction. The divisor falls back to 1 when the
// discount is >= 100% or the ACV is zero, keeping the division defined.
func retainedValueRatio(in *model.DealInput) decimal.Decimal {
	acv := decimal.NewFromInt(in.ACVForBase())
	divisor := one
	if in.DiscountPct.LessThan(one) {
		if implied := acv.Div(one.Sub(in.DiscountPct)); !implied.IsZero() {
			divisor = implied
		}
	}
	return acv.Div(divisor)
}

func upsellBase(in *model.DealInput) int {
	score := 20
	if in.RevenueTypes.Contains(model.RevenueLicense) {
		switch {
		case in.DiscountPct.GreaterThan(decimal.NewFromFloat(0.5)):
			score += 25
		case in.DiscountPct.GreaterThan(decimal.NewFromFloat(0.15)):
			score += 10
		}
	}
	if in.RevenueTypes.Contains(model.RevenueTimeAndMaterial) && in.DiscountPct.GreaterThan(decimal.NewFromFloat(0.2)) {
		score += 10
	}
	return score
}

func crossSellBase(in *model.DealInput) int {
	score := 25 + 15 // new revenue into an existing account
	if len(in.RevenueTypes) > 1 {
		score += 10 // hybrid
	}
	if !in.BundleCompatible {
		score += 20
	}
	switch acv := in.ACVForBase(); {
	case acv > 150_000:
		score += 25
	case acv > 50_000:
		score += 10
	}
	return score
}

func netNewBase(in *model.DealInput) int {
	score := 35
	if len(in.RevenueTypes) > 1 {
		score += 15
	}
	if in.RevenueTypes.Contains(model.RevenueProject) {
		score += 10
	}
	switch acv := in.ACVForBase(); {
	case acv > 500_000:
		score += 30
	case acv > 150_000:
		score += 15
	}
	if !in.BundleCompatible {
		score += 25
	}
	return score
}

package engine

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/cpq-ors/internal/model"
)

// Stage-2 risk adder amounts and thresholds. These apply uniformly across
// deal types and sum into the base score before clamping.
const (
	discountRiskMid  = 10 // 10% <= discount <= 20%
	discountRiskHigh = 20 // discount > 20%

	shortTermRisk       = 20 // Net New below the minimum healthy term
	minHealthyTermYears = 3

	longProjectRisk   = 15
	longProjectMonths = 12

	psValueRisk      = 10
	psValueThreshold = 75_000
)

// riskAdders sums the five independent stage-2 contributions. The order of
// the terms is irrelevant.
func riskAdders(in *model.DealInput) int {
	return discountRisk(in.DiscountPct) +
		termRisk(in) +
		projectRisk(in) +
		psRisk(in.PSValue) +
		paymentRisk(in.PaymentDays)
}

func discountRisk(pct decimal.Decimal) int {
	switch {
	case pct.LessThan(decimal.NewFromFloat(0.10)):
		return 0
	case pct.LessThanOrEqual(decimal.NewFromFloat(0.20)):
		return discountRiskMid
	default:
		return discountRiskHigh
	}
}

func termRisk(in *model.DealInput) int {
	if in.DealType == model.DealTypeNetNew && in.TCVTermYears < minHealthyTermYears {
		return shortTermRisk
	}
	return 0
}

func projectRisk(in *model.DealInput) int {
	if in.RevenueTypes.Contains(model.RevenueProject) && in.ProjectDurationMonths > longProjectMonths {
		return longProjectRisk
	}
	return 0
}

func psRisk(psValue int64) int {
	if psValue > psValueThreshold {
		return psValueRisk
	}
	return 0
}

// paymentRisk maps the payment window to its risk contribution. The allowed
// set is closed at 90 days, but anything at or beyond it scores the same.
func paymentRisk(days model.PaymentTerms) int {
	switch {
	case days >= model.PaymentNet90:
		return 20
	case days == model.PaymentNet60:
		return 10
	case days == model.PaymentNet45:
		return 5
	default:
		return 0
	}
}

// Package model defines the deal domain types consumed by the ORS engine:
// deal and revenue type enums, the immutable DealInput snapshot, and the
// ScoreResult produced by an evaluation.
package model

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// DealType classifies the commercial motion of an opportunity.
type DealType string

const (
	DealTypeNetNew       DealType = "net_new"
	DealTypeUpsell       DealType = "upsell"
	DealTypeDownsell     DealType = "downsell"
	DealTypeCrossSell    DealType = "cross_sell"
	DealTypeCancellation DealType = "cancellation"
)

// AllDealTypes lists every deal type in display order.
var AllDealTypes = []DealType{
	DealTypeNetNew,
	DealTypeUpsell,
	DealTypeDownsell,
	DealTypeCrossSell,
	DealTypeCancellation,
}

// Label returns the human-readable name for the deal type.
func (d DealType) Label() string {
	switch d {
	case DealTypeNetNew:
		return "Net New"
	case DealTypeUpsell:
		return "Upsell"
	case DealTypeDownsell:
		return "Downsell"
	case DealTypeCrossSell:
		return "Cross-Sell"
	case DealTypeCancellation:
		return "Cancellation"
	}
	return string(d)
}

// IsReduction reports whether the deal shrinks or terminates an existing
// contract. Reduction deals always route through the CSM.
func (d DealType) IsReduction() bool {
	return d == DealTypeDownsell || d == DealTypeCancellation
}

// ParseDealType converts a label like "Net New", "net_new", or "cross-sell"
// into a DealType.
func ParseDealType(s string) (DealType, error) {
	switch normalizeEnum(s) {
	case "net_new", "netnew", "new":
		return DealTypeNetNew, nil
	case "upsell":
		return DealTypeUpsell, nil
	case "downsell":
		return DealTypeDownsell, nil
	case "cross_sell", "crosssell":
		return DealTypeCrossSell, nil
	case "cancellation", "cancel":
		return DealTypeCancellation, nil
	}
	return "", eris.Errorf("model: unknown deal type %q", s)
}

// RevenueType classifies a revenue stream attached to a deal.
type RevenueType string

const (
	RevenueTimeAndMaterial RevenueType = "time_and_material"
	RevenueProject         RevenueType = "project"
	RevenueLicense         RevenueType = "license"
	RevenueManagedService  RevenueType = "managed_service"
)

// Label returns the human-readable name for the revenue type.
func (r RevenueType) Label() string {
	switch r {
	case RevenueTimeAndMaterial:
		return "Time & Material"
	case RevenueProject:
		return "Project"
	case RevenueLicense:
		return "License"
	case RevenueManagedService:
		return "Managed Service"
	}
	return string(r)
}

// ParseRevenueType converts a label like "Time & Material" or
// "managed_service" into a RevenueType.
func ParseRevenueType(s string) (RevenueType, error) {
	switch normalizeEnum(s) {
	case "time_and_material", "time_material", "t_m", "tm":
		return RevenueTimeAndMaterial, nil
	case "project":
		return RevenueProject, nil
	case "license":
		return RevenueLicense, nil
	case "managed_service", "managedservice":
		return RevenueManagedService, nil
	}
	return "", eris.Errorf("model: unknown revenue type %q", s)
}

// RevenueTypes is an ordered set of revenue streams. Order follows input
// order; membership is what the scoring rules read.
type RevenueTypes []RevenueType

// Contains reports whether the set includes the given revenue type.
func (rt RevenueTypes) Contains(r RevenueType) bool {
	for _, v := range rt {
		if v == r {
			return true
		}
	}
	return false
}

// Labels returns the human-readable names, in set order.
func (rt RevenueTypes) Labels() []string {
	out := make([]string, len(rt))
	for i, v := range rt {
		out[i] = v.Label()
	}
	return out
}

// ParseRevenueTypes parses a list of revenue type labels, dropping
// duplicates while preserving first-seen order.
func ParseRevenueTypes(labels []string) (RevenueTypes, error) {
	var out RevenueTypes
	for _, l := range labels {
		r, err := ParseRevenueType(l)
		if err != nil {
			return nil, err
		}
		if !out.Contains(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// PaymentTerms is the agreed invoice payment window in days.
type PaymentTerms int

// Allowed payment windows.
const (
	PaymentNet30 PaymentTerms = 30
	PaymentNet45 PaymentTerms = 45
	PaymentNet60 PaymentTerms = 60
	PaymentNet90 PaymentTerms = 90
)

// ParsePaymentTerms validates a day count against the allowed set.
func ParsePaymentTerms(days int) (PaymentTerms, error) {
	switch PaymentTerms(days) {
	case PaymentNet30, PaymentNet45, PaymentNet60, PaymentNet90:
		return PaymentTerms(days), nil
	}
	return 0, eris.Errorf("model: payment terms must be one of 30/45/60/90 days (got %d)", days)
}

// RiskTier is the approval routing bucket derived from the final ORS.
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Label returns the routing description shown to deal desk users.
func (t RiskTier) Label() string {
	switch t {
	case TierLow:
		return "Low Risk – Auto-Approve"
	case TierMedium:
		return "Medium Risk – Tier 1 Approval"
	case TierHigh:
		return "High Risk – Tier 2 Approval"
	}
	return string(t)
}

// DealInput is one immutable snapshot of a deal, built once per evaluation.
// ACV carries the current ACV for Cancellation/Downsell deals and the deal
// ACV otherwise; GrowthACV is meaningful only for Upsell.
type DealInput struct {
	DealType     DealType     `json:"deal_type"`
	RevenueTypes RevenueTypes `json:"revenue_types"`

	ACV       int64 `json:"acv"`
	GrowthACV int64 `json:"growth_acv,omitempty"`

	DiscountPct           decimal.Decimal `json:"discount_pct"`
	TCVTermYears          int             `json:"tcv_term_years"`
	ProjectDurationMonths int             `json:"project_duration_months"`
	PSValue               int64           `json:"ps_value"`
	PaymentDays           PaymentTerms    `json:"payment_days"`

	Strategic            bool `json:"strategic"`
	MinTermMet           bool `json:"min_term_met"`
	BundleCompatible     bool `json:"bundle_compatible"`
	NonStandardContract  bool `json:"non_standard_contract"`
	BreakClauseNoPenalty bool `json:"break_clause_no_penalty"`

	CustomerHealth int `json:"customer_health"`
}

// ACVForBase is the ACV figure base-score thresholds compare against. For
// Cancellation and Downsell the ACV field already holds the current ACV, so
// this is the ACV field for every deal type; the method exists to name the
// semantics at call sites.
func (d *DealInput) ACVForBase() int64 {
	return d.ACV
}

// ACVForMultiplier is the figure the ACV multiplier tiers are resolved
// against: the incremental Growth ACV for an Upsell, the base ACV otherwise.
func (d *DealInput) ACVForMultiplier() int64 {
	if d.DealType == DealTypeUpsell {
		return d.GrowthACV
	}
	return d.ACVForBase()
}

// Validate enforces the documented input domain. The engine assumes a valid
// input; callers constructing a DealInput from user data must validate first.
func (d *DealInput) Validate() error {
	var errs []string

	if _, err := ParseDealType(string(d.DealType)); err != nil {
		errs = append(errs, fmt.Sprintf("deal_type %q is not a known deal type", d.DealType))
	}
	for _, r := range d.RevenueTypes {
		if _, err := ParseRevenueType(string(r)); err != nil {
			errs = append(errs, fmt.Sprintf("revenue_types contains unknown type %q", r))
		}
	}
	if d.ACV < 0 {
		errs = append(errs, "acv must be >= 0")
	}
	if d.GrowthACV < 0 {
		errs = append(errs, "growth_acv must be >= 0")
	}
	if d.DiscountPct.IsNegative() || d.DiscountPct.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, "discount_pct must be between 0 and 1")
	}
	if d.TCVTermYears < 1 || d.TCVTermYears > 5 {
		errs = append(errs, "tcv_term_years must be between 1 and 5")
	}
	if d.ProjectDurationMonths < 1 || d.ProjectDurationMonths > 24 {
		errs = append(errs, "project_duration_months must be between 1 and 24")
	}
	if d.PSValue < 0 {
		errs = append(errs, "ps_value must be >= 0")
	}
	if _, err := ParsePaymentTerms(int(d.PaymentDays)); err != nil {
		errs = append(errs, fmt.Sprintf("payment_days must be one of 30/45/60/90 (got %d)", d.PaymentDays))
	}
	if d.CustomerHealth < 0 || d.CustomerHealth > 100 {
		errs = append(errs, "customer_health must be between 0 and 100")
	}

	if len(errs) > 0 {
		return eris.Errorf("model: invalid deal input: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ScoreResult is the output of one engine evaluation.
type ScoreResult struct {
	BaseORS    int             `json:"base_ors"`
	Multiplier decimal.Decimal `json:"multiplier"`
	FinalORS   decimal.Decimal `json:"final_ors"`
	Tier       RiskTier        `json:"tier"`
	Approvers  []string        `json:"approvers"`
}

// ScoredDeal pairs a named deal input with its evaluation, for batch output.
type ScoredDeal struct {
	Name   string      `json:"name"`
	Input  DealInput   `json:"input"`
	Result ScoreResult `json:"result"`
}

// normalizeEnum lowercases a label and collapses spaces, hyphens, slashes,
// and ampersands so that "Cross-Sell" and "cross_sell" parse alike.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(" ", "_", "-", "_", "/", "_", "&", "and")
	s = replacer.Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

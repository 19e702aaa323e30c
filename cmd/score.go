package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cpq-ors/internal/dealfile"
	"github.com/sells-group/cpq-ors/internal/engine"
	"github.com/sells-group/cpq-ors/internal/model"
	"github.com/sells-group/cpq-ors/internal/render"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single deal",
	Long: `Score one deal and print its risk assessment and approval routing.

The deal is described either by field flags or by a YAML file via --input.

Examples:
  # Score a Net New project deal from flags
  ors score --deal-type net_new --revenue-types project --acv 180000 \
    --discount 0.25 --term-years 2 --project-months 14 --ps-value 90000 \
    --payment-days 60 --customer-health 65

  # Score a deal from a file, as JSON
  ors score --input deal.yaml --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "", "path to a deal YAML file (replaces field flags)")
	f.String("name", "deal", "deal name for display")
	f.String("deal-type", "", "deal type: net_new, upsell, downsell, cross_sell, cancellation")
	f.StringSlice("revenue-types", nil, "revenue types: time_and_material, project, license, managed_service")
	f.Int64("acv", 0, "deal ACV in dollars (current ACV for downsell/cancellation)")
	f.Int64("growth-acv", 0, "incremental ACV in dollars (upsell only)")
	f.Float64("discount", 0, "discount fraction in [0,1]")
	f.Int("term-years", 1, "TCV term in years (1-5)")
	f.Int("project-months", 1, "project duration in months (1-24)")
	f.Int64("ps-value", 0, "professional services value in dollars")
	f.Int("payment-days", 30, "payment terms in days: 30, 45, 60, 90")
	f.Bool("strategic", false, "strategic account")
	f.Bool("min-term-met", false, "minimum contract term has been met")
	f.Bool("bundle-compatible", false, "deal is bundle compatible")
	f.Bool("non-standard", false, "non-standard contract terms")
	f.Bool("break-clause", false, "break clause with no penalty")
	f.Int("customer-health", 50, "customer health score (0-100)")
	f.String("format", "text", "output format: text or json")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(
		zap.String("command", "score"),
		zap.String("evaluation_id", uuid.NewString()),
	)

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return eris.Errorf("score: --format must be text or json (got %q)", format)
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	var deal dealfile.NamedDeal
	if inputPath, _ := cmd.Flags().GetString("input"); inputPath != "" {
		deal, err = dealfile.LoadDeal(inputPath)
	} else {
		deal, err = dealFromFlags(cmd)
	}
	if err != nil {
		return err
	}

	res := eng.Score(deal.Input)

	log.Info("deal scored",
		zap.String("deal", deal.Name),
		zap.String("deal_type", string(deal.Input.DealType)),
		zap.Int("base_ors", res.BaseORS),
		zap.String("final_ors", res.FinalORS.String()),
		zap.String("tier", string(res.Tier)),
		zap.Strings("approvers", res.Approvers),
	)

	if format == "json" {
		return render.WriteJSON(os.Stdout, model.ScoredDeal{Name: deal.Name, Input: deal.Input, Result: res})
	}
	return render.New().WriteScore(os.Stdout, deal.Name, deal.Input, res)
}

// newEngine builds the engine from the loaded config, filling unset
// parameters with the framework defaults.
func newEngine() (*engine.Engine, error) {
	return engine.New(engine.ConfigWithDefaults(cfg.Engine))
}

// dealFromFlags assembles and validates a DealInput from the score command's
// field flags.
func dealFromFlags(cmd *cobra.Command) (dealfile.NamedDeal, error) {
	f := cmd.Flags()

	rawType, _ := f.GetString("deal-type")
	dealType, err := model.ParseDealType(rawType)
	if err != nil {
		return dealfile.NamedDeal{}, err
	}

	rawRevenue, _ := f.GetStringSlice("revenue-types")
	revenueTypes, err := model.ParseRevenueTypes(rawRevenue)
	if err != nil {
		return dealfile.NamedDeal{}, err
	}

	paymentDaysRaw, _ := f.GetInt("payment-days")
	paymentDays, err := model.ParsePaymentTerms(paymentDaysRaw)
	if err != nil {
		return dealfile.NamedDeal{}, err
	}

	name, _ := f.GetString("name")
	acv, _ := f.GetInt64("acv")
	growthACV, _ := f.GetInt64("growth-acv")
	discount, _ := f.GetFloat64("discount")
	termYears, _ := f.GetInt("term-years")
	projectMonths, _ := f.GetInt("project-months")
	psValue, _ := f.GetInt64("ps-value")
	strategic, _ := f.GetBool("strategic")
	minTermMet, _ := f.GetBool("min-term-met")
	bundleCompatible, _ := f.GetBool("bundle-compatible")
	nonStandard, _ := f.GetBool("non-standard")
	breakClause, _ := f.GetBool("break-clause")
	customerHealth, _ := f.GetInt("customer-health")

	in := model.DealInput{
		DealType:              dealType,
		RevenueTypes:          revenueTypes,
		ACV:                   acv,
		GrowthACV:             growthACV,
		DiscountPct:           decimal.NewFromFloat(discount),
		TCVTermYears:          termYears,
		ProjectDurationMonths: projectMonths,
		PSValue:               psValue,
		PaymentDays:           paymentDays,
		Strategic:             strategic,
		MinTermMet:            minTermMet,
		BundleCompatible:      bundleCompatible,
		NonStandardContract:   nonStandard,
		BreakClauseNoPenalty:  breakClause,
		CustomerHealth:        customerHealth,
	}
	if err := in.Validate(); err != nil {
		return dealfile.NamedDeal{}, err
	}

	return dealfile.NamedDeal{Name: name, Input: in}, nil
}

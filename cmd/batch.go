package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cpq-ors/internal/dealfile"
	"github.com/sells-group/cpq-ors/internal/model"
	"github.com/sells-group/cpq-ors/internal/render"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of deals from a CSV or XLSX file",
	Long: `Score every deal in a spreadsheet and print the results.

The first row is a header; required columns are deal_type, revenue_types,
acv, discount_pct, tcv_term_years, project_duration_months, ps_value,
payment_days, and customer_health. revenue_types cells hold labels
separated by "|" or ";".

Examples:
  # Score a pipeline export as a table
  ors batch --input deals.xlsx

  # Export scores to CSV, keeping only deals at or above 60
  ors batch --input deals.csv --min-score 60 --format csv --output scores.csv`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "path to a CSV or XLSX batch file (required)")
	f.Float64("min-score", 0, "only keep deals with a final ORS at or above this")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(
		zap.String("command", "batch"),
		zap.String("batch_id", uuid.NewString()),
	)

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" {
		return eris.Errorf("batch: --format must be table or csv (got %q)", format)
	}

	inputPath, _ := cmd.Flags().GetString("input")
	deals, err := dealfile.LoadBatch(inputPath)
	if err != nil {
		return err
	}
	log.Info("batch loaded", zap.String("input", inputPath), zap.Int("deals", len(deals)))

	eng, err := newEngine()
	if err != nil {
		return err
	}

	scored := make([]model.ScoredDeal, 0, len(deals))
	for _, d := range deals {
		scored = append(scored, model.ScoredDeal{
			Name:   d.Name,
			Input:  d.Input,
			Result: eng.Score(d.Input),
		})
	}

	minScore, _ := cmd.Flags().GetFloat64("min-score")
	kept := filterByMinScore(scored, minScore)
	log.Info("batch scored", zap.Int("scored", len(scored)), zap.Int("kept", len(kept)))

	w := os.Stdout
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	switch format {
	case "csv":
		if err := render.WriteBatchCSV(w, kept); err != nil {
			return err
		}
	case "table":
		render.New().WriteBatchTable(w, kept)
	}

	render.WriteSummary(os.Stdout, kept)
	if len(kept) < len(scored) {
		fmt.Printf("Filtered out %d deals below %.1f\n", len(scored)-len(kept), minScore)
	}

	return nil
}

// filterByMinScore keeps deals whose final ORS is at or above the threshold.
// A threshold of 0 keeps everything.
func filterByMinScore(deals []model.ScoredDeal, minScore float64) []model.ScoredDeal {
	if minScore <= 0 {
		return deals
	}
	threshold := decimal.NewFromFloat(minScore)
	kept := make([]model.ScoredDeal, 0, len(deals))
	for _, d := range deals {
		if d.Result.FinalORS.GreaterThanOrEqual(threshold) {
			kept = append(kept, d)
		}
	}
	return kept
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/cpq-ors/internal/config"
	"github.com/sells-group/cpq-ors/internal/engine"
	"github.com/sells-group/cpq-ors/internal/render"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the engine parameters in effect",
	Long:  "Prints the multiplier tiers, tier boundaries, overrides, and approver roles the engine is running with, after config and defaults are merged.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatRules(os.Stdout, engine.ConfigWithDefaults(cfg.Engine))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func formatRules(w io.Writer, c config.EngineConfig) {
	r := render.New()

	fmt.Fprintln(w, "ACV multiplier tiers:")
	for _, t := range c.MultiplierTiers {
		if t.UpTo == 0 {
			fmt.Fprintf(w, "  above previous tier  x%.1f\n", t.Multiplier)
			continue
		}
		fmt.Fprintf(w, "  up to %-14s x%.1f\n", r.Money(t.UpTo), t.Multiplier)
	}

	fmt.Fprintf(w, "\nTier boundaries:\n")
	fmt.Fprintf(w, "  low    <= %.0f (Auto-Approve)\n", c.LowTierMax)
	fmt.Fprintf(w, "  medium <= %.0f (Tier 1 Approval)\n", c.MediumTierMax)
	fmt.Fprintf(w, "  high    > %.0f (Tier 2 Approval)\n", c.MediumTierMax)

	fmt.Fprintf(w, "\nOverrides:\n")
	fmt.Fprintf(w, "  non-standard contract floor  %.0f\n", c.NonStandardFloor)
	fmt.Fprintf(w, "  break clause score           %.0f\n", c.BreakClauseScore)

	fmt.Fprintf(w, "\nApprover roles:\n")
	fmt.Fprintf(w, "  sales ops      %s\n", c.Approvers.SalesOps)
	fmt.Fprintf(w, "  rev ops        %s\n", c.Approvers.RevOps)
	fmt.Fprintf(w, "  finance        %s\n", c.Approvers.Finance)
	fmt.Fprintf(w, "  legal          %s\n", c.Approvers.Legal)
	fmt.Fprintf(w, "  delivery lead  %s\n", c.Approvers.DeliveryLead)
	fmt.Fprintf(w, "  csm            %s\n", c.Approvers.CSM)
}

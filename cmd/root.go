package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cpq-ors/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ors",
	Short: "Opportunity Risk Score calculator for CPQ approval routing",
	Long:  "Scores sales deals 0-100 across deal-type risk, discount/term/payment adders, and ACV multipliers, then routes them to the required approval tier.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

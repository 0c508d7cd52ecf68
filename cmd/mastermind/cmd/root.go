package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mastermind",
	Short: "A Renko-brick paper-trading desk",
	Long: `Mastermind is a paper-trading desk built around Renko brick charts.

It provides tools for:
  - Running live paper-trading sessions against a simulated price feed
  - Replaying recorded price series through the same trading core
  - Detecting brick-pattern setups and sizing positions by risk
  - Enforcing per-trade and daily risk budgets
  - Journaling trades and equity to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/mastermind`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

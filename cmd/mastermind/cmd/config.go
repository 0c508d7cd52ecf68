package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/mastermind/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or inspect configuration files",
	Long: `Manage the desk's configuration file.

Subcommands:
  init - Generate a default configuration file
  show - Print the effective configuration after defaults and clamping

Examples:
  mastermind config init --output config.json
  mastermind config show --file config.json`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

The format follows the file extension: .yaml/.yml for YAML, anything
else for JSON.

Example:
  mastermind config init --output config.json`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Load a configuration file and print what the desk would actually run
with, after defaults are filled in and out-of-range values are clamped.

Example:
  mastermind config show --file config.json`,
	RunE: runConfigShow,
}

var (
	configInitOutput string
	configShowPath   string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "config.json", "output config file path")
	configShowCmd.Flags().StringVarP(&configShowPath, "file", "f", "config.json", "path to config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  mastermind run --config %s\n", configInitOutput)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Load(configShowPath, zap.NewNop())

	fmt.Printf("Configuration: %s (version %d)\n", configShowPath, cfg.Version)
	fmt.Printf("  Trading:  %s on %s (paper mode: %v)\n",
		cfg.Trading.DefaultSymbol, cfg.Trading.DefaultExchange, cfg.Trading.PaperTradingMode)
	fmt.Printf("  Strategy: brick size %.2f, setup1 %v, setup2 %v, counter-trading %v\n",
		cfg.Strategy.BrickSize, cfg.Strategy.Setup1Enabled, cfg.Strategy.Setup2Enabled,
		cfg.Strategy.CounterTradingEnabled)
	fmt.Printf("  Risk:     %.1f%% per trade, %.1f%% daily\n",
		cfg.Risk.MaxRiskPerTrade, cfg.Risk.MaxDailyRisk)
	return nil
}

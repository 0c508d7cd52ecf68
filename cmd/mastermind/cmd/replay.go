package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mastermind/config"
	"github.com/rustyeddy/mastermind/pkg/logger"
	"github.com/rustyeddy/mastermind/pricing"
	"github.com/rustyeddy/mastermind/session"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded price series through the trading core",
	Long: `Replay a CSV price series through the same core the live session uses.

The CSV holds one price per row, optionally preceded by a timestamp column;
a header row is skipped automatically. The session stops when the series
is exhausted.

Example:
  mastermind replay --csv prices.csv --interval 10ms --journal csv`,
	RunE: runReplay,
}

var (
	replayConfigPath string
	replayCSVPath    string
	replaySeed       int64
	replayExit       string
	replayJournal    string
	replayDBPath     string
	replayTrades     string
	replayEquity     string
	replayInterval   time.Duration
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "f", "config.json", "path to config file (JSON or YAML)")
	replayCmd.Flags().StringVar(&replayCSVPath, "csv", "", "path to price CSV (required)")
	replayCmd.MarkFlagRequired("csv")
	replayCmd.Flags().Int64Var(&replaySeed, "seed", 0, "random seed (0 = time-based)")
	replayCmd.Flags().StringVar(&replayExit, "exit", "random", "exit policy: random, stoptarget or manual")
	replayCmd.Flags().StringVar(&replayJournal, "journal", "none", "journal type: csv, sqlite or none")
	replayCmd.Flags().StringVar(&replayDBPath, "db", "mastermind.db", "SQLite journal path")
	replayCmd.Flags().StringVar(&replayTrades, "trades", "trades.csv", "CSV trades file")
	replayCmd.Flags().StringVar(&replayEquity, "equity", "equity.csv", "CSV equity file")
	replayCmd.Flags().DurationVar(&replayInterval, "interval", 10*time.Millisecond, "replay tick interval")
}

func runReplay(cmd *cobra.Command, args []string) error {
	log, err := logger.New(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	source, err := pricing.NewReplay(replayCSVPath)
	if err != nil {
		return fmt.Errorf("load price series: %w", err)
	}

	cfg := config.Load(replayConfigPath, log)
	sc := sessionConfig(cfg)
	sc.TickInterval = replayInterval

	seed := replaySeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	exit, err := exitPolicy(replayExit, rng)
	if err != nil {
		return err
	}
	jrnl, err := openJournal(replayJournal, replayDBPath, replayTrades, replayEquity)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jrnl.Close()

	sess, err := session.New(sc, session.Options{
		Source:  source,
		Exit:    exit,
		Journal: jrnl,
		Logger:  log,
		Rand:    rng,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Replaying %d prices from %s (%s on %s, brick size %.2f)\n\n",
		source.Remaining(), replayCSVPath, sc.Symbol, sc.Exchange, sc.BrickSize)

	return runSession(ctx, sess)
}

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
	"go.uber.org/zap"

	"github.com/rustyeddy/mastermind/config"
	"github.com/rustyeddy/mastermind/pkg/logger"
	"github.com/rustyeddy/mastermind/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a paper-trading session against the price simulator",
	Long: `Run a live paper-trading session.

Prices come from the built-in random-walk simulator; bricks, signals and
trades stream to the console until the session ends or you press Ctrl-C.
Settings are read from the config file and saved back on shutdown.

Example:
  mastermind run --config config.json --duration 2m --journal sqlite`,
	RunE: runRun,
}

var (
	runConfigPath string
	runDuration   time.Duration
	runSeed       int64
	runExit       string
	runJournal    string
	runDBPath     string
	runTrades     string
	runEquity     string
	runInterval   time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "config.json", "path to config file (JSON or YAML)")
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "stop after this long (0 = run until interrupted)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed (0 = time-based)")
	runCmd.Flags().StringVar(&runExit, "exit", "random", "exit policy: random, stoptarget or manual")
	runCmd.Flags().StringVar(&runJournal, "journal", "none", "journal type: csv, sqlite or none")
	runCmd.Flags().StringVar(&runDBPath, "db", "mastermind.db", "SQLite journal path")
	runCmd.Flags().StringVar(&runTrades, "trades", "trades.csv", "CSV trades file")
	runCmd.Flags().StringVar(&runEquity, "equity", "equity.csv", "CSV equity file")
	runCmd.Flags().DurationVar(&runInterval, "interval", time.Second, "trading loop tick interval")
}

func runRun(cmd *cobra.Command, args []string) error {
	log, err := logger.New(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	cfg := config.Load(runConfigPath, log)
	sc := sessionConfig(cfg)
	sc.TickInterval = runInterval

	seed := runSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	exit, err := exitPolicy(runExit, rng)
	if err != nil {
		return err
	}
	jrnl, err := openJournal(runJournal, runDBPath, runTrades, runEquity)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jrnl.Close()

	sess, err := session.New(sc, session.Options{
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
	if runDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runDuration)
		defer cancel()
	}

	fmt.Printf("Paper trading %s on %s (brick size %.2f, seed %d)\n\n",
		sc.Symbol, sc.Exchange, sc.BrickSize, seed)

	if err := runSession(ctx, sess); err != nil {
		return err
	}

	if err := cfg.SaveToFile(runConfigPath); err != nil {
		log.Warn("failed to save configuration", zap.Error(err))
	}
	return nil
}

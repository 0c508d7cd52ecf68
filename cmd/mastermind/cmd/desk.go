package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/mastermind/config"
	"github.com/rustyeddy/mastermind/events"
	"github.com/rustyeddy/mastermind/journal"
	"github.com/rustyeddy/mastermind/ledger"
	"github.com/rustyeddy/mastermind/session"
)

// pollInterval is how often the shell drains the session's event queue.
const pollInterval = 100 * time.Millisecond

// sessionConfig maps the persisted desk configuration onto one session's
// parameter snapshot.
func sessionConfig(cfg *config.Config) session.Config {
	sc := session.Defaults()
	sc.Symbol = cfg.Trading.DefaultSymbol
	sc.Exchange = cfg.Trading.DefaultExchange
	sc.BrickSize = cfg.Strategy.BrickSize
	sc.Setup1Enabled = cfg.Strategy.Setup1Enabled
	sc.Setup2Enabled = cfg.Strategy.Setup2Enabled
	sc.RiskPerTradePct = cfg.Risk.MaxRiskPerTrade
	sc.MaxDailyRiskPct = cfg.Risk.MaxDailyRisk
	return sc
}

func openJournal(kind, dbPath, tradesPath, equityPath string) (journal.Journal, error) {
	switch kind {
	case "none", "":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(tradesPath, equityPath)
	case "sqlite":
		return journal.NewSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q (want csv, sqlite or none)", kind)
	}
}

func exitPolicy(kind string, rng *rand.Rand) (ledger.ExitPolicy, error) {
	switch kind {
	case "random", "":
		return ledger.RandomExit{Prob: 0.05, Rand: rng}, nil
	case "stoptarget":
		return ledger.StopTargetExit{StopPct: 1, TargetPct: 2}, nil
	case "manual":
		return ledger.ManualExit{}, nil
	default:
		return nil, fmt.Errorf("unknown exit policy %q (want random, stoptarget or manual)", kind)
	}
}

// runSession drives a session to completion: one goroutine runs the trading
// loop, another pumps its events to stdout. Returns once the session has
// stopped and the queue is fully drained.
func runSession(ctx context.Context, sess *session.Session) error {
	g, gctx := errgroup.WithContext(ctx)

	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return sess.Run(gctx)
	})
	g.Go(func() error {
		pumpEvents(done, sess.Events())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	renderAll(sess.Events().Drain())
	if n := sess.Events().Dropped(); n > 0 {
		fmt.Printf("(%d events dropped)\n", n)
	}
	return nil
}

func pumpEvents(done <-chan struct{}, q *events.Queue) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			renderAll(q.Drain())
		}
	}
}

func renderAll(evs []events.Event) {
	for _, e := range evs {
		renderEvent(e)
	}
}

func renderEvent(e events.Event) {
	switch ev := e.(type) {
	case events.Log:
		fmt.Println(ev.Text)
	case events.BrickFormed:
		fmt.Printf("  brick: %s @ $%.2f\n", ev.Color, ev.Price)
	case events.SignalDetected:
		fmt.Printf("  signal: %s -> %s\n", ev.Setup, ev.Side)
	case events.TradeOpened:
		t := ev.Trade
		fmt.Printf("  opened #%s: %s %.4f %s @ $%.2f\n",
			t.ID, t.Side, t.Size, t.Symbol, t.EntryPrice)
	case events.TradeClosed:
		t := ev.Trade
		fmt.Printf("  closed #%s: %s P&L $%.2f (%s)\n",
			t.ID, t.Side, t.PnL, t.CloseReason)
	case events.StatusSnapshot:
		// Too chatty for the console; the log lines already tell the story.
	case events.SessionSummary:
		fmt.Printf("\nSession summary:\n")
		fmt.Printf("  Trades: %d\n", ev.TotalTrades)
		fmt.Printf("  Daily P&L: $%.2f\n", ev.DailyPnL)
		fmt.Printf("  Win rate: %.1f%%\n", ev.WinRate*100)
	}
}

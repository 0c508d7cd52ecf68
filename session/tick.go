package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/mastermind/events"
	"github.com/rustyeddy/mastermind/journal"
	"github.com/rustyeddy/mastermind/market"
	"github.com/rustyeddy/mastermind/pricing"
	"github.com/rustyeddy/mastermind/strategies"
)

// loop runs the per-tick protocol at the configured cadence. The select on
// the ticker is the only blocking point and therefore the cancellation
// point: a stop request takes effect within one tick interval.
func (s *Session) loop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.finish(time.Now())
			return

		case now := <-ticker.C:
			err := s.safeTick(now)
			if err == nil {
				continue
			}
			if errors.Is(err, pricing.ErrExhausted) {
				s.log.Info("price source exhausted, stopping session")
			} else {
				// A single bad tick ends the session; the user must
				// restart explicitly.
				s.log.Error("tick failed, stopping session", zap.Error(err))
				s.queue.Push(events.Log{Text: fmt.Sprintf("Error in trading loop: %v", err)})
			}
			s.finish(now)
			return
		}
	}
}

// safeTick converts a panicking tick into a tick error so a fault in one
// tick stops the session instead of crashing the process.
func (s *Session) safeTick(now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()
	return s.tick(now)
}

// tick executes one orchestration pass: roll the day if needed, advance the
// price, form bricks, detect setups, maybe trade, mark and sweep positions,
// then publish a status snapshot.
func (s *Session) tick(now time.Time) error {
	s.rolloverIfNewDay(now)

	price, err := s.source.Next(s.price)
	if err != nil {
		return err
	}
	s.price = price

	for _, color := range s.engine.Observe(price) {
		s.queue.Push(events.BrickFormed{Color: color, Price: price})
		s.queue.Push(events.Log{Text: fmt.Sprintf("New Renko brick: %s", color)})
	}

	if sig, ok := s.detector.Evaluate(s.engine.Last(strategies.Lookback)); ok {
		s.queue.Push(events.SignalDetected{Setup: sig.Setup, Side: sig.Side})
		// Execution is deliberately throttled: most signals pass without
		// a trade, damping how aggressively the desk acts on confluence.
		if s.rng.Float64() < s.cfg.ExecuteProb {
			if err := s.attemptTrade(sig, now); err != nil {
				return err
			}
		}
	}

	s.book.MarkToMarket(price)
	closed := s.book.SweepExits(s.exit, now)
	for _, t := range closed {
		s.queue.Push(events.TradeClosed{Trade: t})
		s.queue.Push(events.Log{Text: fmt.Sprintf("Position closed: %+.2f P&L", t.PnL)})
	}
	if len(closed) > 0 {
		s.recordEquity(now)
	}

	s.pushStatus()
	s.lastTick = now
	return nil
}

// rolloverIfNewDay resets the daily risk budget and daily P&L when the tick
// crosses a UTC calendar-day boundary. Open trades and equity are untouched.
func (s *Session) rolloverIfNewDay(now time.Time) {
	if s.lastTick.IsZero() {
		return
	}
	y1, m1, d1 := s.lastTick.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return
	}

	s.budget.Rollover()
	s.book.ResetDaily()
	s.queue.Push(events.Log{Text: "Day rollover: daily risk budget reset"})
	s.log.Info("day rollover", zap.Time("tick", now))
}

// attemptTrade sizes a position off current equity, asks the risk budget
// for approval and opens the trade. A denial is normal control flow: it is
// logged and discarded.
func (s *Session) attemptTrade(sig market.Signal, now time.Time) error {
	riskPct := s.cfg.RiskPerTradePct
	equity := s.book.Stats().Equity

	// Size so the risk amount covers a 1% adverse move.
	riskAmount := equity * (riskPct / 100)
	size := riskAmount / (s.price * 0.01)

	decision := s.budget.Check(riskPct, s.book.OpenCount())
	if !decision.Allowed {
		s.queue.Push(events.Log{Text: fmt.Sprintf("Trade rejected: %s", decision.Reason())})
		s.log.Debug("trade rejected",
			zap.String("setup", sig.Setup),
			zap.String("reason", decision.Reason()),
		)
		return nil
	}

	// Simulated spread on the fill.
	entry := s.price + (s.rng.Float64()*4 - 2)

	trade, err := s.book.Open(s.cfg.Symbol, sig.Side, size, entry, now)
	if err != nil {
		return fmt.Errorf("open trade: %w", err)
	}
	s.budget.Commit(riskPct)

	s.queue.Push(events.TradeOpened{Trade: trade})
	s.queue.Push(events.Log{Text: fmt.Sprintf("Trade #%d: %s %.3f @ $%.2f",
		s.book.Stats().TotalTrades, trade.Side, trade.Size, trade.EntryPrice)})
	s.log.Info("trade opened",
		zap.String("id", trade.ID),
		zap.String("setup", sig.Setup),
		zap.Stringer("side", trade.Side),
		zap.Float64("size", trade.Size),
		zap.Float64("entry", trade.EntryPrice),
	)
	return nil
}

// finish liquidates all open positions, publishes the session summary and
// transitions to Stopped. It runs on the loop goroutine so the single
// writer discipline holds to the very end.
func (s *Session) finish(now time.Time) {
	s.book.MarkToMarket(s.price)
	for _, t := range s.book.CloseAll("SessionStop", now) {
		s.queue.Push(events.TradeClosed{Trade: t})
		s.queue.Push(events.Log{Text: fmt.Sprintf("Position liquidated: %+.2f P&L", t.PnL)})
	}
	s.recordEquity(now)

	st := s.book.Stats()
	s.queue.Push(events.Log{Text: "Trading stopped"})
	s.queue.Push(events.Log{Text: fmt.Sprintf(
		"Session summary: %d trades, $%.2f P&L, %.1f%% win rate",
		st.TotalTrades, st.DailyPnL, st.WinRate()*100)})
	s.queue.Push(events.SessionSummary{
		TotalTrades: st.TotalTrades,
		DailyPnL:    st.DailyPnL,
		WinRate:     st.WinRate(),
	})
	s.log.Info("session stopped",
		zap.Int("trades", st.TotalTrades),
		zap.Float64("daily_pnl", st.DailyPnL),
		zap.Float64("win_rate", st.WinRate()),
	)

	s.mu.Lock()
	s.state = Stopped
	s.cancel()
	close(s.done)
	s.mu.Unlock()
}

func (s *Session) recordEquity(now time.Time) {
	st := s.book.Stats()
	if err := s.jrnl.RecordEquity(journal.EquitySnapshot{
		Time:          now,
		Equity:        st.Equity,
		DailyPnL:      st.DailyPnL,
		OpenPositions: s.book.OpenCount(),
		RiskUsedPct:   s.budget.UsedPct(),
	}); err != nil {
		s.log.Warn("journal equity snapshot failed", zap.Error(err))
	}
}

func (s *Session) pushStatus() {
	st := s.book.Stats()
	s.queue.Push(events.StatusSnapshot{
		Price:       s.price,
		Equity:      st.Equity,
		DailyPnL:    st.DailyPnL,
		OpenCount:   s.book.OpenCount(),
		TotalTrades: st.TotalTrades,
		WinRate:     st.WinRate(),
		RiskUsedPct: s.budget.UsedPct(),
	})
}

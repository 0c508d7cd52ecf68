// Package ledger owns the open and closed paper trades and the session
// accounting built on top of them.
package ledger

import (
	"fmt"
	"time"

	"github.com/rustyeddy/mastermind/journal"
	"github.com/rustyeddy/mastermind/market"
	"github.com/rustyeddy/mastermind/pkg/id"
)

// Stats aggregates session accounting. It is mutated only when trades close.
type Stats struct {
	Equity        float64
	DailyPnL      float64
	TotalTrades   int
	WinningTrades int
}

// WinRate is winningTrades/totalTrades, 0 before the first trade.
func (s Stats) WinRate() float64 {
	if s.TotalTrades == 0 {
		return 0
	}
	return float64(s.WinningTrades) / float64(s.TotalTrades)
}

// Ledger is the single owner of all trades. It is not safe for concurrent
// use; the session's single-writer loop is the only mutator.
//
// Invariant: open count + closed count == Stats.TotalTrades after the first
// open.
type Ledger struct {
	open   []*Trade
	closed []*Trade
	stats  Stats
	jrnl   journal.Journal
}

// New returns a ledger starting from the given equity. A nil journal
// disables persistence.
func New(initialEquity float64, j journal.Journal) *Ledger {
	if j == nil {
		j = journal.Nop{}
	}
	return &Ledger{
		stats: Stats{Equity: initialEquity},
		jrnl:  j,
	}
}

// Open creates a new trade with zero unrealized P&L and counts it.
func (l *Ledger) Open(symbol string, side market.Side, size, entryPrice float64, at time.Time) (Trade, error) {
	if size <= 0 {
		return Trade{}, fmt.Errorf("ledger: trade size must be positive, got %v", size)
	}
	if entryPrice <= 0 {
		return Trade{}, fmt.Errorf("ledger: entry price must be positive, got %v", entryPrice)
	}

	t := &Trade{
		ID:           id.New(),
		Symbol:       symbol,
		Side:         side,
		Size:         size,
		EntryPrice:   entryPrice,
		CurrentPrice: entryPrice,
		Status:       Open,
		OpenedAt:     at,
	}
	l.open = append(l.open, t)
	l.stats.TotalTrades++
	return *t, nil
}

// MarkToMarket updates unrealized P&L on every open trade.
func (l *Ledger) MarkToMarket(price float64) {
	for _, t := range l.open {
		t.markToMarket(price)
	}
}

// Close realizes the trade's current P&L and moves it to the closed set.
// Exit happens at the trade's marked CurrentPrice.
func (l *Ledger) Close(tradeID, reason string, at time.Time) (Trade, error) {
	for i, t := range l.open {
		if t.ID != tradeID {
			continue
		}
		l.open = append(l.open[:i], l.open[i+1:]...)
		l.closeTrade(t, reason, at)
		return *t, nil
	}
	return Trade{}, fmt.Errorf("ledger: trade %q not open", tradeID)
}

// CloseAll liquidates every open trade, oldest first.
func (l *Ledger) CloseAll(reason string, at time.Time) []Trade {
	out := make([]Trade, 0, len(l.open))
	for _, t := range l.open {
		l.closeTrade(t, reason, at)
		out = append(out, *t)
	}
	l.open = l.open[:0]
	return out
}

// SweepExits applies the exit policy to each open trade and closes those it
// selects. Call after MarkToMarket so the policy sees fresh P&L.
func (l *Ledger) SweepExits(policy ExitPolicy, at time.Time) []Trade {
	if policy == nil {
		return nil
	}

	var closed []Trade
	kept := l.open[:0]
	for _, t := range l.open {
		if exit, reason := policy.ShouldExit(*t); exit {
			l.closeTrade(t, reason, at)
			closed = append(closed, *t)
			continue
		}
		kept = append(kept, t)
	}
	l.open = kept
	return closed
}

func (l *Ledger) closeTrade(t *Trade, reason string, at time.Time) {
	t.Status = Closed
	t.ClosedAt = at
	t.CloseReason = reason
	l.closed = append(l.closed, t)

	l.stats.DailyPnL += t.PnL
	l.stats.Equity += t.PnL
	if t.PnL > 0 {
		l.stats.WinningTrades++
	}

	// Journal failures must not abort the trading loop.
	_ = l.jrnl.RecordTrade(journal.TradeRecord{
		TradeID:    t.ID,
		Symbol:     t.Symbol,
		Side:       t.Side.String(),
		Size:       t.Size,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.CurrentPrice,
		OpenTime:   t.OpenedAt,
		CloseTime:  at,
		PnL:        t.PnL,
		Reason:     reason,
	})
}

// ResetDaily zeroes the daily P&L counter at a day boundary. Equity and
// trade counters are untouched.
func (l *Ledger) ResetDaily() {
	l.stats.DailyPnL = 0
}

func (l *Ledger) OpenCount() int   { return len(l.open) }
func (l *Ledger) ClosedCount() int { return len(l.closed) }
func (l *Ledger) Stats() Stats     { return l.stats }

// OpenTrades returns copies of the open set, oldest first.
func (l *Ledger) OpenTrades() []Trade {
	out := make([]Trade, len(l.open))
	for i, t := range l.open {
		out[i] = *t
	}
	return out
}

// ClosedTrades returns copies of the closed-trade history, oldest first.
func (l *Ledger) ClosedTrades() []Trade {
	out := make([]Trade, len(l.closed))
	for i, t := range l.closed {
		out[i] = *t
	}
	return out
}

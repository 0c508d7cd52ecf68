package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/mastermind/journal"
	"github.com/rustyeddy/mastermind/market"
)

type memJournal struct {
	trades []journal.TradeRecord
	equity []journal.EquitySnapshot
}

func (j *memJournal) RecordTrade(r journal.TradeRecord) error {
	j.trades = append(j.trades, r)
	return nil
}

func (j *memJournal) RecordEquity(r journal.EquitySnapshot) error {
	j.equity = append(j.equity, r)
	return nil
}

func (j *memJournal) Close() error { return nil }

func t0() time.Time {
	return time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
}

func TestOpenRejectsBadInputs(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)

	_, err := l.Open("BTCUSD", market.Buy, 0, 50000, t0())
	assert.Error(t, err)

	_, err = l.Open("BTCUSD", market.Buy, -1, 50000, t0())
	assert.Error(t, err)

	_, err = l.Open("BTCUSD", market.Buy, 1, 0, t0())
	assert.Error(t, err)

	assert.Equal(t, 0, l.Stats().TotalTrades)
}

func TestBuyPnL(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	tr, err := l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, tr.PnL)
	assert.Equal(t, Open, tr.Status)

	l.MarkToMarket(50100)
	closed, err := l.Close(tr.ID, "test", t0().Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 100.0, closed.PnL)
	assert.Equal(t, Closed, closed.Status)

	st := l.Stats()
	assert.Equal(t, 10100.0, st.Equity)
	assert.Equal(t, 100.0, st.DailyPnL)
	assert.Equal(t, 1, st.WinningTrades)
	assert.Equal(t, 1.0, st.WinRate())
}

func TestSellPnL(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	tr, _ := l.Open("BTCUSD", market.Sell, 1, 50000, t0())

	l.MarkToMarket(50100)
	closed, err := l.Close(tr.ID, "test", t0().Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, -100.0, closed.PnL)

	st := l.Stats()
	assert.Equal(t, 9900.0, st.Equity)
	assert.Equal(t, -100.0, st.DailyPnL)
	assert.Equal(t, 0, st.WinningTrades)
	assert.Equal(t, 0.0, st.WinRate())
}

func TestOpenPlusClosedEqualsTotal(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)

	var ids []string
	for i := 0; i < 5; i++ {
		tr, err := l.Open("BTCUSD", market.Buy, 1, 50000, t0())
		assert.NoError(t, err)
		ids = append(ids, tr.ID)
		assert.Equal(t, l.Stats().TotalTrades, l.OpenCount()+l.ClosedCount())
	}

	l.MarkToMarket(50050)
	for _, id := range ids[:3] {
		_, err := l.Close(id, "test", t0())
		assert.NoError(t, err)
		assert.Equal(t, l.Stats().TotalTrades, l.OpenCount()+l.ClosedCount())
	}

	assert.Equal(t, 2, l.OpenCount())
	assert.Equal(t, 3, l.ClosedCount())
	assert.Equal(t, 5, l.Stats().TotalTrades)
}

func TestClosedTradeCannotCloseAgain(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	tr, _ := l.Open("BTCUSD", market.Buy, 1, 50000, t0())

	_, err := l.Close(tr.ID, "test", t0())
	assert.NoError(t, err)

	_, err = l.Close(tr.ID, "test", t0())
	assert.Error(t, err)
	assert.Equal(t, 1, l.ClosedCount())
}

func TestCloseAll(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	l.Open("BTCUSD", market.Sell, 2, 50000, t0())
	l.MarkToMarket(50100)

	closed := l.CloseAll("SessionStop", t0().Add(time.Hour))
	assert.Len(t, closed, 2)
	assert.Equal(t, 0, l.OpenCount())
	for _, c := range closed {
		assert.Equal(t, "SessionStop", c.CloseReason)
	}

	// +100 on the buy, -200 on the sell.
	assert.Equal(t, 9900.0, l.Stats().Equity)
}

func TestSweepExitsRandom(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	for i := 0; i < 10; i++ {
		l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	}
	l.MarkToMarket(50010)

	// Prob 1 closes everything; prob 0 closes nothing.
	closed := l.SweepExits(RandomExit{Prob: 1, Rand: rand.New(rand.NewSource(1))}, t0())
	assert.Len(t, closed, 10)
	assert.Equal(t, 0, l.OpenCount())

	l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	closed = l.SweepExits(RandomExit{Prob: 0, Rand: rand.New(rand.NewSource(1))}, t0())
	assert.Empty(t, closed)
	assert.Equal(t, 1, l.OpenCount())
}

func TestStopTargetExit(t *testing.T) {
	t.Parallel()

	policy := StopTargetExit{StopPct: 1, TargetPct: 2}

	l := New(10000, nil)
	tr, _ := l.Open("BTCUSD", market.Buy, 1, 50000, t0())

	l.MarkToMarket(50500) // +1%, below target
	closed := l.SweepExits(policy, t0())
	assert.Empty(t, closed)

	l.MarkToMarket(51000) // +2% hits target
	closed = l.SweepExits(policy, t0())
	assert.Len(t, closed, 1)
	assert.Equal(t, "TakeProfit", closed[0].CloseReason)
	assert.Equal(t, tr.ID, closed[0].ID)

	tr2, _ := l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	l.MarkToMarket(49500) // -1% hits stop
	closed = l.SweepExits(policy, t0())
	assert.Len(t, closed, 1)
	assert.Equal(t, "StopLoss", closed[0].CloseReason)
	assert.Equal(t, tr2.ID, closed[0].ID)
}

func TestManualExitNeverCloses(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	l.MarkToMarket(99999)

	assert.Empty(t, l.SweepExits(ManualExit{}, t0()))
	assert.Equal(t, 1, l.OpenCount())
}

func TestResetDaily(t *testing.T) {
	t.Parallel()

	l := New(10000, nil)
	tr, _ := l.Open("BTCUSD", market.Buy, 1, 50000, t0())
	l.MarkToMarket(50100)
	l.Close(tr.ID, "test", t0())

	l.ResetDaily()
	st := l.Stats()
	assert.Equal(t, 0.0, st.DailyPnL)
	assert.Equal(t, 10100.0, st.Equity)
	assert.Equal(t, 1, st.TotalTrades)
}

func TestClosesAreJournaled(t *testing.T) {
	t.Parallel()

	j := &memJournal{}
	l := New(10000, j)
	tr, _ := l.Open("ETHUSD", market.Sell, 2, 3000, t0())
	l.MarkToMarket(2990)
	l.Close(tr.ID, "RandomExit", t0().Add(time.Minute))

	assert.Len(t, j.trades, 1)
	rec := j.trades[0]
	assert.Equal(t, tr.ID, rec.TradeID)
	assert.Equal(t, "ETHUSD", rec.Symbol)
	assert.Equal(t, "SELL", rec.Side)
	assert.Equal(t, 20.0, rec.PnL)
	assert.Equal(t, "RandomExit", rec.Reason)
}

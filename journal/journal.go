// journal/journal.go
package journal

import "time"

// TradeRecord is one closed paper trade, written when the ledger realizes
// its P&L.
type TradeRecord struct {
	TradeID    string
	Symbol     string
	Side       string
	Size       float64
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	PnL        float64
	Reason     string
}

// EquitySnapshot captures the account state after a close or at session end.
type EquitySnapshot struct {
	Time          time.Time
	Equity        float64
	DailyPnL      float64
	OpenPositions int
	RiskUsedPct   float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards all records. Used when the desk runs without persistence.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }

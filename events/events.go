// Package events defines the core-to-shell event taxonomy and the queue
// that carries it. The presentation layer consumes events by polling; it
// never reaches back into core state.
package events

import (
	"github.com/rustyeddy/mastermind/ledger"
	"github.com/rustyeddy/mastermind/market"
	"github.com/rustyeddy/mastermind/renko"
)

// Kind discriminates event payloads.
type Kind uint8

const (
	KindLog Kind = iota + 1
	KindBrickFormed
	KindSignalDetected
	KindTradeOpened
	KindTradeClosed
	KindStatusSnapshot
	KindSessionSummary
)

// Event is anything the session publishes to the shell.
type Event interface {
	Kind() Kind
}

// Log is a human-readable line for the shell's log view.
type Log struct {
	Text string
}

func (Log) Kind() Kind { return KindLog }

// BrickFormed reports a newly formed Renko brick.
type BrickFormed struct {
	Color renko.Color
	Price float64
}

func (BrickFormed) Kind() Kind { return KindBrickFormed }

// SignalDetected reports a matched setup, whether or not it executes.
type SignalDetected struct {
	Setup string
	Side  market.Side
}

func (SignalDetected) Kind() Kind { return KindSignalDetected }

// TradeOpened carries a copy of the freshly opened trade.
type TradeOpened struct {
	Trade ledger.Trade
}

func (TradeOpened) Kind() Kind { return KindTradeOpened }

// TradeClosed carries a copy of the trade after its P&L was realized.
type TradeClosed struct {
	Trade ledger.Trade
}

func (TradeClosed) Kind() Kind { return KindTradeClosed }

// StatusSnapshot is emitted once per tick for the shell's status widgets.
type StatusSnapshot struct {
	Price       float64
	Equity      float64
	DailyPnL    float64
	OpenCount   int
	TotalTrades int
	WinRate     float64
	RiskUsedPct float64
}

func (StatusSnapshot) Kind() Kind { return KindStatusSnapshot }

// SessionSummary is emitted once when the session stops.
type SessionSummary struct {
	TotalTrades int
	DailyPnL    float64
	WinRate     float64
}

func (SessionSummary) Kind() Kind { return KindSessionSummary }

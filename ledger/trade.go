package ledger

import (
	"time"

	"github.com/rustyeddy/mastermind/market"
)

type Status int

const (
	Open Status = iota
	Closed
)

func (s Status) String() string {
	if s == Closed {
		return "CLOSED"
	}
	return "OPEN"
}

// Trade is one paper position. Trades are owned by the Ledger from open to
// close; callers only ever see copies. A closed trade never re-enters the
// open set.
type Trade struct {
	ID           string
	Symbol       string
	Side         market.Side
	Size         float64
	EntryPrice   float64
	CurrentPrice float64
	PnL          float64
	Status       Status
	OpenedAt     time.Time
	ClosedAt     time.Time
	CloseReason  string
}

// markToMarket recomputes unrealized P&L against the latest price.
func (t *Trade) markToMarket(price float64) {
	t.CurrentPrice = price
	if t.Side == market.Buy {
		t.PnL = (price - t.EntryPrice) * t.Size
	} else {
		t.PnL = (t.EntryPrice - price) * t.Size
	}
}

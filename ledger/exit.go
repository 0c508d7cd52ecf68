package ledger

import "math/rand"

// ExitPolicy decides, once per tick after mark-to-market, whether an open
// trade should be closed and why.
//
// The desk's historical behavior is stochastic exits (RandomExit): positions
// close on a random draw rather than on stop or target levels. That policy
// is kept as the default so runs stay faithful to the original system;
// StopTargetExit is the conventional alternative.
type ExitPolicy interface {
	ShouldExit(t Trade) (bool, string)
}

// RandomExit closes each open trade with probability Prob per tick.
type RandomExit struct {
	Prob float64
	Rand *rand.Rand
}

func (p RandomExit) ShouldExit(t Trade) (bool, string) {
	if p.Rand.Float64() < p.Prob {
		return true, "RandomExit"
	}
	return false, ""
}

// StopTargetExit closes a trade when its unrealized P&L reaches a fixed
// percentage of the entry notional, in either direction.
type StopTargetExit struct {
	StopPct   float64 // e.g. 1.0 closes at -1% of entry notional
	TargetPct float64 // e.g. 2.0 closes at +2%
}

func (p StopTargetExit) ShouldExit(t Trade) (bool, string) {
	notional := t.EntryPrice * t.Size
	if notional <= 0 {
		return false, ""
	}
	pct := t.PnL / notional * 100

	switch {
	case p.TargetPct > 0 && pct >= p.TargetPct:
		return true, "TakeProfit"
	case p.StopPct > 0 && pct <= -p.StopPct:
		return true, "StopLoss"
	}
	return false, ""
}

// ManualExit never closes anything; positions only close on session stop.
type ManualExit struct{}

func (ManualExit) ShouldExit(Trade) (bool, string) { return false, "" }

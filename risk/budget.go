// Package risk enforces the session risk budget: a per-trade ceiling, a
// daily ceiling on cumulative committed risk, and an open-position cap.
package risk

import "fmt"

// MaxOpenPositions caps concurrent open trades.
const MaxOpenPositions = 5

// Budget tracks committed risk for one trading session. Budget is consumed
// on trade approval and is not released when trades close; it models a
// daily risk cap, not live exposure. Only Rollover resets it.
type Budget struct {
	perTradeLimitPct float64
	dailyLimitPct    float64
	usedPct          float64
}

func NewBudget(perTradeLimitPct, dailyLimitPct float64) *Budget {
	return &Budget{
		perTradeLimitPct: perTradeLimitPct,
		dailyLimitPct:    dailyLimitPct,
	}
}

type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of a budget check. A denial is normal control
// flow, not an error; the violations say exactly which limits were hit.
type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Reason renders the first violation for log lines.
func (d Decision) Reason() string {
	if d.Allowed || len(d.Violations) == 0 {
		return ""
	}
	return d.Violations[0].Msg
}

// Check evaluates whether a trade risking riskPct of equity may open given
// the current number of open positions. It does not consume budget; call
// Commit after the trade is actually opened.
func (b *Budget) Check(riskPct float64, openCount int) Decision {
	d := Decision{Allowed: true}

	if openCount >= MaxOpenPositions {
		d.add("TOO_MANY_OPEN_TRADES",
			fmt.Sprintf("open positions %d >= max %d", openCount, MaxOpenPositions))
	}
	if riskPct > b.perTradeLimitPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("trade risk %.2f%% exceeds per-trade limit %.2f%%",
				riskPct, b.perTradeLimitPct))
	}
	if b.usedPct+riskPct > b.dailyLimitPct {
		d.add("DAILY_BUDGET_EXHAUSTED",
			fmt.Sprintf("used %.2f%% + trade %.2f%% exceeds daily limit %.2f%%",
				b.usedPct, riskPct, b.dailyLimitPct))
	}
	return d
}

// Commit consumes budget for an opened trade. There is no rollback path;
// once committed the budget stays consumed until Rollover.
func (b *Budget) Commit(riskPct float64) {
	b.usedPct += riskPct
}

// Rollover zeroes the used budget at a day boundary. The orchestrator
// invokes it; the budget does not self-schedule.
func (b *Budget) Rollover() {
	b.usedPct = 0
}

func (b *Budget) UsedPct() float64       { return b.usedPct }
func (b *Budget) PerTradeLimit() float64 { return b.perTradeLimitPct }
func (b *Budget) DailyLimit() float64    { return b.dailyLimitPct }

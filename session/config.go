package session

import (
	"fmt"
	"time"

	"github.com/rustyeddy/mastermind/market"
)

// Config is the static parameter snapshot one session runs with. It is
// validated before the loop starts; the core never sees a tick with invalid
// parameters.
type Config struct {
	Symbol   string
	Exchange string

	BrickSize     float64
	Setup1Enabled bool
	Setup2Enabled bool

	RiskPerTradePct float64 // per-trade risk, percent of equity
	MaxDailyRiskPct float64 // daily budget, percent of equity

	InitialEquity float64
	InitialPrice  float64
	Volatility    float64 // simulator noise, fraction of price per tick

	TickInterval time.Duration
	ExecuteProb  float64 // chance a detected signal actually trades
}

// Defaults mirror the desk's stock configuration.
func Defaults() Config {
	return Config{
		Symbol:          "BTCUSD",
		Exchange:        "Binance",
		BrickSize:       10,
		Setup1Enabled:   true,
		Setup2Enabled:   true,
		RiskPerTradePct: 2,
		MaxDailyRiskPct: 10,
		InitialEquity:   10000,
		InitialPrice:    50000,
		Volatility:      0.001,
		TickInterval:    time.Second,
		ExecuteProb:     0.1,
	}
}

func (c Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("session: symbol is required")
	}
	if !market.KnownSymbol(c.Symbol) {
		return fmt.Errorf("session: unknown symbol %q", c.Symbol)
	}
	if c.BrickSize <= 0 {
		return fmt.Errorf("session: brick size must be positive, got %v", c.BrickSize)
	}
	if c.RiskPerTradePct <= 0 {
		return fmt.Errorf("session: risk per trade must be positive, got %v", c.RiskPerTradePct)
	}
	if c.MaxDailyRiskPct <= 0 {
		return fmt.Errorf("session: daily risk limit must be positive, got %v", c.MaxDailyRiskPct)
	}
	if c.InitialEquity <= 0 {
		return fmt.Errorf("session: initial equity must be positive, got %v", c.InitialEquity)
	}
	if c.InitialPrice <= 0 {
		return fmt.Errorf("session: initial price must be positive, got %v", c.InitialPrice)
	}
	if c.Volatility < 0 {
		return fmt.Errorf("session: volatility must not be negative, got %v", c.Volatility)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("session: tick interval must be positive, got %v", c.TickInterval)
	}
	if c.ExecuteProb < 0 || c.ExecuteProb > 1 {
		return fmt.Errorf("session: execute probability must be in [0,1], got %v", c.ExecuteProb)
	}
	return nil
}

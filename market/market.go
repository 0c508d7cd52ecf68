// market/market.go
package market

// Side is the direction of a trade or signal.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Signal is a trade recommendation produced by a setup detector.
type Signal struct {
	Setup string
	Side  Side
}

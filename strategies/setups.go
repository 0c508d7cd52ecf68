// Package strategies matches recent Renko bricks against named setups and
// turns matches into trade signals.
package strategies

import (
	"github.com/rustyeddy/mastermind/market"
	"github.com/rustyeddy/mastermind/renko"
)

// Setup is a named brick-color sequence treated as a trading signal. A setup
// matches when the most recent bricks equal any of its sequences, oldest
// brick first.
type Setup struct {
	Name      string
	Side      market.Side
	Sequences [][]renko.Color
}

// Matches reports whether the tail of bricks equals one of the setup's
// sequences. Fewer bricks than the sequence length never match.
func (s Setup) Matches(bricks []renko.Brick) bool {
	for _, seq := range s.Sequences {
		if matchTail(bricks, seq) {
			return true
		}
	}
	return false
}

func matchTail(bricks []renko.Brick, seq []renko.Color) bool {
	if len(bricks) < len(seq) {
		return false
	}
	tail := bricks[len(bricks)-len(seq):]
	for i, c := range seq {
		if tail[i].Color != c {
			return false
		}
	}
	return true
}

// Setup1 buys a reversal: two red bricks followed by a green one.
var Setup1 = Setup{
	Name: "setup1",
	Side: market.Buy,
	Sequences: [][]renko.Color{
		{renko.Red, renko.Red, renko.Green},
	},
}

// Setup2 sells a three-brick zigzag in either orientation.
var Setup2 = Setup{
	Name: "setup2",
	Side: market.Sell,
	Sequences: [][]renko.Color{
		{renko.Green, renko.Red, renko.Green},
		{renko.Red, renko.Green, renko.Red},
	},
}

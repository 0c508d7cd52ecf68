package strategies

import (
	"github.com/rustyeddy/mastermind/market"
	"github.com/rustyeddy/mastermind/renko"
)

// Detector evaluates the enabled setups against the latest bricks. It is
// stateless between calls and never mutates the brick history it reads.
type Detector struct {
	Setup1Enabled bool
	Setup2Enabled bool
}

// Lookback is how many trailing bricks the detector inspects.
const Lookback = 3

// Evaluate returns the signal for the current brick tail, if any. Setup1 is
// evaluated first and locked in: when both setups match in the same tick the
// buy wins, and setup2 only supplies a signal if setup1 did not.
func (d Detector) Evaluate(bricks []renko.Brick) (market.Signal, bool) {
	if len(bricks) < Lookback {
		return market.Signal{}, false
	}

	var sig market.Signal
	var found bool

	if d.Setup1Enabled && Setup1.Matches(bricks) {
		sig = market.Signal{Setup: Setup1.Name, Side: Setup1.Side}
		found = true
	}
	if d.Setup2Enabled && !found && Setup2.Matches(bricks) {
		sig = market.Signal{Setup: Setup2.Name, Side: Setup2.Side}
		found = true
	}
	return sig, found
}

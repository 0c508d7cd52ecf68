package pricing

import "math/rand"

// Simulator generates a synthetic random-walk price series: uniform noise
// scaled by volatility, plus a drift in the current trend direction. The
// trend flips with a small probability each step, and the price is floored
// so the series never goes non-positive.
type Simulator struct {
	volatility float64
	direction  float64 // +1 or -1
	rng        *rand.Rand
}

const (
	// chance per step that the trend direction flips
	trendFlipProb = 0.02
	// drift contribution relative to the noise band
	trendWeight = 0.1
	// below this the price is re-seeded to keep the series sane
	priceFloor = 100.0
)

// NewSimulator returns a simulator with the given volatility (fraction of
// price per step, e.g. 0.001). A nil rng seeds from the global source.
func NewSimulator(volatility float64, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Simulator{
		volatility: volatility,
		direction:  1,
		rng:        rng,
	}
}

// Next returns the next simulated price. It never fails.
func (s *Simulator) Next(current float64) (float64, error) {
	change := (s.rng.Float64()*2 - 1) * s.volatility * current

	if s.rng.Float64() < trendFlipProb {
		if s.rng.Float64() > 0.5 {
			s.direction = 1
		} else {
			s.direction = -1
		}
	}
	change += s.direction * s.volatility * current * trendWeight

	next := current + change
	if next < priceFloor {
		next = priceFloor + s.rng.Float64()*1000
	}
	return next, nil
}

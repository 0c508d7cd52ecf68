// Package renko discretizes a price series into fixed-size colored bricks.
//
// Bricks filter time-noise out of price action: a new brick forms only when
// price moves a full brick width away from the previous brick's close.
package renko

import "fmt"

// Color marks the direction of a brick.
type Color int

const (
	Green Color = iota // up
	Red                // down
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "green"
}

// Brick is one formed Renko brick. Immutable once appended.
type Brick struct {
	Color Color
	Price float64
}

// Capacity bounds the brick history. Oldest bricks are evicted first.
const Capacity = 100

// Engine maintains the bounded brick sequence for one instrument.
//
// Known limitation: at most one brick forms per observed price, even when
// the price jumps several brick widths in a single tick. Skipped bricks are
// not back-filled.
type Engine struct {
	brickSize float64
	bricks    []Brick
}

// New returns an engine for the given brick size. Size must be positive;
// enforcing that here keeps the trading loop free of parameter checks.
func New(brickSize float64) (*Engine, error) {
	if brickSize <= 0 {
		return nil, fmt.Errorf("renko: brick size must be positive, got %v", brickSize)
	}
	return &Engine{
		brickSize: brickSize,
		bricks:    make([]Brick, 0, Capacity),
	}, nil
}

// Observe feeds one price into the engine and returns the colors of any
// newly formed bricks (zero or one per call).
func (e *Engine) Observe(price float64) []Color {
	if len(e.bricks) == 0 {
		e.append(Brick{Color: Green, Price: price})
		return []Color{Green}
	}

	last := e.bricks[len(e.bricks)-1]
	switch {
	case price >= last.Price+e.brickSize:
		e.append(Brick{Color: Green, Price: price})
		return []Color{Green}
	case price <= last.Price-e.brickSize:
		e.append(Brick{Color: Red, Price: price})
		return []Color{Red}
	}
	return nil
}

func (e *Engine) append(b Brick) {
	if len(e.bricks) == Capacity {
		copy(e.bricks, e.bricks[1:])
		e.bricks = e.bricks[:Capacity-1]
	}
	e.bricks = append(e.bricks, b)
}

// Reset clears the brick history and applies a new brick size. The caller
// must only reconfigure while flat; the engine itself has no notion of
// positions.
func (e *Engine) Reset(brickSize float64) error {
	if brickSize <= 0 {
		return fmt.Errorf("renko: brick size must be positive, got %v", brickSize)
	}
	e.brickSize = brickSize
	e.bricks = e.bricks[:0]
	return nil
}

// BrickSize returns the configured brick width.
func (e *Engine) BrickSize() float64 { return e.brickSize }

// Len returns the number of bricks currently held.
func (e *Engine) Len() int { return len(e.bricks) }

// Bricks returns a copy of the full brick sequence, oldest first.
func (e *Engine) Bricks() []Brick {
	out := make([]Brick, len(e.bricks))
	copy(out, e.bricks)
	return out
}

// Last returns a copy of the most recent n bricks, oldest first. Fewer are
// returned when the history is shorter than n.
func (e *Engine) Last(n int) []Brick {
	if n > len(e.bricks) {
		n = len(e.bricks)
	}
	out := make([]Brick, n)
	copy(out, e.bricks[len(e.bricks)-n:])
	return out
}

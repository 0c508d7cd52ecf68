package renko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newEngine(t *testing.T, size float64) *Engine {
	t.Helper()
	e, err := New(size)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	_, err := New(0)
	assert.Error(t, err)

	_, err = New(-5)
	assert.Error(t, err)
}

func TestFirstPriceSeedsGreenBrick(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 10)
	colors := e.Observe(50000)

	assert.Equal(t, []Color{Green}, colors)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, Brick{Color: Green, Price: 50000}, e.Bricks()[0])
}

func TestBrickFormationThresholds(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 10)
	e.Observe(50000)

	// Inside the band: nothing forms.
	assert.Empty(t, e.Observe(50009.99))
	assert.Empty(t, e.Observe(49990.01))
	assert.Equal(t, 1, e.Len())

	// Exactly one brick width up forms a green brick.
	assert.Equal(t, []Color{Green}, e.Observe(50010))

	// One brick width down from the new brick forms a red brick.
	assert.Equal(t, []Color{Red}, e.Observe(50000))
	assert.Equal(t, 3, e.Len())
}

func TestAtMostOneBrickPerObservation(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 10)
	e.Observe(50000)

	// A five-brick jump still forms a single brick at the new price.
	colors := e.Observe(50050)
	assert.Len(t, colors, 1)
	assert.Equal(t, Green, colors[0])

	bricks := e.Bricks()
	assert.Equal(t, 50050.0, bricks[len(bricks)-1].Price)
}

func TestCapacityEvictsOldest(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 1)
	price := 1000.0
	e.Observe(price)
	for i := 0; i < Capacity+10; i++ {
		price += 1
		e.Observe(price)
	}

	assert.Equal(t, Capacity, e.Len())
	// The oldest surviving brick is the one formed 100 observations ago.
	assert.Equal(t, price-float64(Capacity-1), e.Bricks()[0].Price)
}

func TestLast(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 10)
	e.Observe(100)
	e.Observe(110)
	e.Observe(100)

	last := e.Last(3)
	assert.Equal(t, []Brick{
		{Color: Green, Price: 100},
		{Color: Green, Price: 110},
		{Color: Red, Price: 100},
	}, last)

	assert.Len(t, e.Last(10), 3)
	assert.Len(t, e.Last(2), 2)
}

func TestResetClearsHistory(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 10)
	e.Observe(100)
	e.Observe(110)

	assert.NoError(t, e.Reset(25))
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 25.0, e.BrickSize())

	assert.Error(t, e.Reset(0))
}

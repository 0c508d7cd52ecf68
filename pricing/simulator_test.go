package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorStaysWithinNoiseBand(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(0.001, rand.New(rand.NewSource(1)))

	price := 50000.0
	for i := 0; i < 10000; i++ {
		next, err := sim.Next(price)
		require.NoError(t, err)

		// One step moves at most noise + drift, unless the floor re-seeds.
		maxMove := 0.001*price + 0.001*price*0.1
		if next >= priceFloor && math.Abs(next-price) > maxMove+1e-9 {
			t.Fatalf("step %d moved %.4f, max %.4f", i, next-price, maxMove)
		}
		price = next
	}
}

func TestSimulatorFloorReseeds(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(0.5, rand.New(rand.NewSource(2)))

	// High volatility hammers the price down to the floor eventually.
	price := 101.0
	reseeded := false
	for i := 0; i < 10000; i++ {
		next, err := sim.Next(price)
		require.NoError(t, err)
		require.GreaterOrEqual(t, next, priceFloor)
		if next >= priceFloor && next-price > price {
			reseeded = true
		}
		price = next
	}
	assert.True(t, reseeded, "floor re-seed never triggered")
}

func TestSimulatorDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewSimulator(0.01, rand.New(rand.NewSource(42)))
	b := NewSimulator(0.01, rand.New(rand.NewSource(42)))

	price1, price2 := 1000.0, 1000.0
	for i := 0; i < 100; i++ {
		n1, err := a.Next(price1)
		require.NoError(t, err)
		n2, err := b.Next(price2)
		require.NoError(t, err)
		assert.Equal(t, n1, n2)
		price1, price2 = n1, n2
	}
}

func TestSimulatorNilRand(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(0.001, nil)
	next, err := sim.Next(50000)
	require.NoError(t, err)
	assert.Greater(t, next, 0.0)
}

package events

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue(10)
	for i := 0; i < 5; i++ {
		q.Push(Log{Text: fmt.Sprintf("line %d", i)})
	}
	assert.Equal(t, 5, q.Len())

	got := q.Drain()
	assert.Len(t, got, 5)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("line %d", i), e.(Log).Text)
	}

	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Drain())
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	q := NewQueue(3)
	for i := 0; i < 5; i++ {
		q.Push(Log{Text: fmt.Sprintf("line %d", i)})
	}

	got := q.Drain()
	assert.Len(t, got, 3)
	assert.Equal(t, "line 2", got[0].(Log).Text)
	assert.Equal(t, "line 4", got[2].(Log).Text)
	assert.Equal(t, uint64(2), q.Dropped())
}

func TestQueueConcurrentPushDrain(t *testing.T) {
	t.Parallel()

	q := NewQueue(0) // default capacity

	var wg sync.WaitGroup
	const n = 500

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Push(Log{Text: "x"})
		}
	}()

	var drained int
	go func() {
		defer wg.Done()
		for drained < n {
			drained += len(q.Drain())
		}
	}()

	wg.Wait()
	assert.Equal(t, n, drained)
	assert.Equal(t, uint64(0), q.Dropped())
}

func TestEventKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindLog, Log{}.Kind())
	assert.Equal(t, KindBrickFormed, BrickFormed{}.Kind())
	assert.Equal(t, KindSignalDetected, SignalDetected{}.Kind())
	assert.Equal(t, KindTradeOpened, TradeOpened{}.Kind())
	assert.Equal(t, KindTradeClosed, TradeClosed{}.Kind())
	assert.Equal(t, KindStatusSnapshot, StatusSnapshot{}.Kind())
	assert.Equal(t, KindSessionSummary, SessionSummary{}.Kind())
}

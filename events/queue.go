package events

import "sync"

// DefaultQueueCapacity suits a 1s tick cadence with a 100ms polling shell.
const DefaultQueueCapacity = 1024

// Queue is a bounded, thread-safe FIFO between the session loop (producer)
// and the presentation layer (consumer). FIFO order is the only ordering
// guarantee. When the consumer falls behind and the queue fills, the oldest
// events are dropped and counted; the producer never blocks.
type Queue struct {
	mu      sync.Mutex
	items   []Event
	cap     int
	dropped uint64
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		items: make([]Event, 0, capacity),
		cap:   capacity,
	}
}

// Push appends one event, evicting the oldest if the queue is full.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == q.cap {
		copy(q.items, q.items[1:])
		q.items = q.items[:q.cap-1]
		q.dropped++
	}
	q.items = append(q.items, e)
}

// Drain returns all queued events in FIFO order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	q.items = q.items[:0]
	return out
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped reports how many events were evicted unconsumed.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

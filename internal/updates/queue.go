package updates

import "sync"

// Queue is an unbounded FIFO of events with one producer and one consumer.
// Publish never blocks and never drops; Drain never blocks.
type Queue struct {
	mu      sync.Mutex
	pending []Event
	ready   chan struct{}
}

func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

func (q *Queue) Publish(event Event) {
	q.mu.Lock()
	q.pending = append(q.pending, event)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Drain removes and returns every pending event in publish order.
// It returns nil if nothing is pending.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}

	events := q.pending
	q.pending = nil

	return events
}

// Ready is signaled after a publish. A signal may cover several events.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

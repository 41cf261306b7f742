package input

import (
	"sync"

	love "github.com/mcanthony/love-nacl"
)

// DefaultCapacity bounds a queue when no explicit capacity is given.
const DefaultCapacity = 1024

// Queue is a bounded FIFO of input events. Producers run on the
// windowing thread and never block: when the queue is full the oldest
// event is dropped to make room.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	events   []Event
	head     int
	capacity int
	closed   bool
	dropped  uint64
}

// NewQueue returns a queue holding at most capacity events. A
// capacity of zero or less selects DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	q := &Queue{capacity: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends an event, dropping the oldest one first if the
// queue is full. It reports whether the event was accepted; a closed
// queue accepts nothing.
func (q *Queue) Enqueue(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if q.size() >= q.capacity {
		q.pop()
		q.dropped++
		if q.dropped == 1 {
			love.Logger().Warn("input queue full, dropping oldest event", "capacity", q.capacity)
		}
	}
	q.events = append(q.events, ev)
	q.cond.Signal()
	return true
}

// Dequeue removes and returns the oldest event without blocking.
func (q *Queue) Dequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size() == 0 {
		return Event{}, false
	}
	return q.pop(), true
}

// DequeueAll removes and returns every buffered event in arrival
// order, or nil if the queue is empty.
func (q *Queue) DequeueAll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size() == 0 {
		return nil
	}
	out := append([]Event(nil), q.events[q.head:]...)
	q.events = q.events[:0]
	q.head = 0
	return out
}

// Wait blocks until an event is available and returns it. It returns
// false only once the queue is closed and drained.
func (q *Queue) Wait() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.size() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.size() == 0 {
		return Event{}, false
	}
	return q.pop(), true
}

// Close stops the queue from accepting events and wakes every waiter.
// Buffered events can still be drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size()
}

// Dropped returns how many events have been discarded to make room.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

func (q *Queue) size() int { return len(q.events) - q.head }

// pop removes the head event. The vacated slot is zeroed so event
// payloads do not linger, and the backing slice is compacted once the
// dead prefix dominates it.
func (q *Queue) pop() Event {
	ev := q.events[q.head]
	q.events[q.head] = Event{}
	q.head++
	if q.head >= 32 && q.head*2 >= len(q.events) {
		n := copy(q.events, q.events[q.head:])
		q.events = q.events[:n]
		q.head = 0
	}
	return ev
}

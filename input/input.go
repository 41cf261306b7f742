// Package input turns windowing-system events into a uniform stream
// with bounded buffering and queryable held state.
//
// A backend pump translates its native events into Event values and
// hands them to Input.Push. Push folds each event into the held state
// before it is queued, so a consumer that polls an event can also read
// the state that event produced. The application drains the stream
// from any goroutine with Poll, PollAll or Wait.
package input

import "sync"

// Input couples an event queue with the state those events imply.
type Input struct {
	pushMu   sync.Mutex
	queue    *Queue
	state    State
	capacity int
}

// Option adjusts how New builds an Input.
type Option func(*Input)

// WithCapacity bounds the number of buffered events. Zero or less
// selects DefaultCapacity.
func WithCapacity(n int) Option {
	return func(in *Input) { in.capacity = n }
}

// New returns an Input ready for a backend to push into.
func New(opts ...Option) *Input {
	in := &Input{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(in)
	}
	in.queue = NewQueue(in.capacity)
	return in
}

// Push records an event. The held state is updated first and the event
// queued second; pushes are serialized so the two stay in step. It
// reports whether the event was queued.
func (in *Input) Push(ev Event) bool {
	in.pushMu.Lock()
	defer in.pushMu.Unlock()
	in.state.Apply(ev)
	return in.queue.Enqueue(ev)
}

// Poll removes and returns the oldest event without blocking.
func (in *Input) Poll() (Event, bool) { return in.queue.Dequeue() }

// PollAll removes and returns every buffered event in arrival order.
func (in *Input) PollAll() []Event { return in.queue.DequeueAll() }

// Wait blocks until an event arrives. It returns false only once the
// Input is closed and drained.
func (in *Input) Wait() (Event, bool) { return in.queue.Wait() }

// Close stops accepting events and wakes every waiter.
func (in *Input) Close() { in.queue.Close() }

// Len returns the number of buffered events.
func (in *Input) Len() int { return in.queue.Len() }

// Dropped returns how many events were discarded because the queue
// was full.
func (in *Input) Dropped() uint64 { return in.queue.Dropped() }

// MousePosition returns the pointer position from the most recent
// mouse event.
func (in *Input) MousePosition() (x, y int) { return in.state.MousePosition() }

// MouseDown reports whether a mouse button is held.
func (in *Input) MouseDown(b Button) bool { return in.state.MouseDown(b) }

// KeyDown reports whether a key is held.
func (in *Input) KeyDown(code KeyCode) bool { return in.state.KeyDown(code) }

// ResetState releases every held key and button, for focus loss or a
// context restore where release events may never arrive.
func (in *Input) ResetState() { in.state.Reset() }

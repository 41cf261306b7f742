package input_test

import (
	"testing"
	"time"

	"github.com/mcanthony/love-nacl/input"
)

func keyEvent(code input.KeyCode) input.Event {
	return input.Event{
		Type: input.EventKey,
		Key:  input.KeyEvent{Action: input.KeyActionDown, Code: code},
	}
}

func TestQueueFIFO(t *testing.T) {
	q := input.NewQueue(8)

	for i := 0; i < 3; i++ {
		if !q.Enqueue(keyEvent(input.KeyCode(i))) {
			t.Fatalf("Enqueue(%d) rejected", i)
		}
	}
	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	for i := 0; i < 3; i++ {
		ev, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue() empty after %d events", i)
		}
		if ev.Key.Code != input.KeyCode(i) {
			t.Errorf("Dequeue() = code %d, want %d", ev.Key.Code, i)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue() on a drained queue reported an event")
	}
}

func TestQueueDequeueAll(t *testing.T) {
	q := input.NewQueue(8)

	if got := q.DequeueAll(); got != nil {
		t.Errorf("DequeueAll() on an empty queue = %v, want nil", got)
	}

	for i := 0; i < 5; i++ {
		q.Enqueue(keyEvent(input.KeyCode(i)))
	}

	got := q.DequeueAll()
	if len(got) != 5 {
		t.Fatalf("DequeueAll() returned %d events, want 5", len(got))
	}
	for i, ev := range got {
		if ev.Key.Code != input.KeyCode(i) {
			t.Errorf("event %d has code %d, want %d", i, ev.Key.Code, i)
		}
	}
	if got := q.Len(); got != 0 {
		t.Errorf("Len() = %d after draining, want 0", got)
	}
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := input.NewQueue(2)

	for i := 0; i < 3; i++ {
		if !q.Enqueue(keyEvent(input.KeyCode(i))) {
			t.Fatalf("Enqueue(%d) rejected", i)
		}
	}

	if got := q.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
	if got := q.Len(); got != 2 {
		t.Errorf("Len() = %d, want the capacity 2", got)
	}

	ev, _ := q.Dequeue()
	if ev.Key.Code != 1 {
		t.Errorf("oldest surviving event has code %d, want 1", ev.Key.Code)
	}
}

func TestQueueDefaultCapacity(t *testing.T) {
	q := input.NewQueue(0)

	for i := 0; i < input.DefaultCapacity+5; i++ {
		q.Enqueue(keyEvent(input.KeyCode(i)))
	}

	if got := q.Len(); got != input.DefaultCapacity {
		t.Errorf("Len() = %d, want %d", got, input.DefaultCapacity)
	}
	if got := q.Dropped(); got != 5 {
		t.Errorf("Dropped() = %d, want 5", got)
	}
}

func TestQueueCloseRejectsAndDrains(t *testing.T) {
	q := input.NewQueue(8)
	q.Enqueue(keyEvent(1))
	q.Close()

	if q.Enqueue(keyEvent(2)) {
		t.Error("Enqueue() after Close() accepted an event")
	}

	ev, ok := q.Dequeue()
	if !ok || ev.Key.Code != 1 {
		t.Errorf("Dequeue() after Close() = (%d, %v), want the buffered event 1", ev.Key.Code, ok)
	}
	if _, ok := q.Wait(); ok {
		t.Error("Wait() on a closed drained queue reported an event")
	}
}

func TestQueueWaitBlocksUntilEnqueue(t *testing.T) {
	q := input.NewQueue(8)

	got := make(chan input.Event, 1)
	go func() {
		ev, ok := q.Wait()
		if !ok {
			close(got)
			return
		}
		got <- ev
	}()

	time.Sleep(10 * time.Millisecond)
	q.Enqueue(keyEvent(42))

	select {
	case ev, ok := <-got:
		if !ok || ev.Key.Code != 42 {
			t.Errorf("Wait() = (%d, %v), want (42, true)", ev.Key.Code, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not wake after an enqueue")
	}
}

func TestQueueWaitWakesOnClose(t *testing.T) {
	q := input.NewQueue(8)

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Wait()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Wait() on a closed empty queue reported an event")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not wake after Close()")
	}
}

func TestQueueOrderUnderChurn(t *testing.T) {
	q := input.NewQueue(256)

	// Alternating pushes and pops walk the head far enough to trigger
	// compaction of the backing slice.
	for i := 0; i < 200; i++ {
		q.Enqueue(keyEvent(input.KeyCode(i)))
		ev, ok := q.Dequeue()
		if !ok || ev.Key.Code != input.KeyCode(i) {
			t.Fatalf("round %d: Dequeue() = (%d, %v), want (%d, true)", i, ev.Key.Code, ok, i)
		}
	}

	if got := q.Dropped(); got != 0 {
		t.Errorf("Dropped() = %d under churn, want 0", got)
	}
}

func TestQueueProducerConsumer(t *testing.T) {
	const n = 1000
	q := input.NewQueue(n)

	go func() {
		for i := 0; i < n; i++ {
			q.Enqueue(keyEvent(input.KeyCode(i)))
		}
		q.Close()
	}()

	var seen int
	for {
		ev, ok := q.Wait()
		if !ok {
			break
		}
		if ev.Key.Code != input.KeyCode(seen) {
			t.Fatalf("event %d has code %d, want %d", seen, ev.Key.Code, seen)
		}
		seen++
	}
	if seen != n {
		t.Errorf("consumed %d events, want %d", seen, n)
	}
}

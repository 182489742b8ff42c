// Package event provides the frame-scoped mailboxes subsystems use to talk to
// each other.
//
// A Queue lives in the World as a resource. Producers append during a frame;
// the designated consumer reads the queue in insertion order and clears it
// exactly once per frame. Which subsystem clears a queue is part of that
// queue's contract, never the producer's business.
//
// Queues carry no lock: concurrent use is ruled out by the access declarations
// the scheduler resolves before a frame runs.
package event

// Queue is a FIFO mailbox of immutable events of type T
type Queue[T any] struct {
	items  []T
	clears uint64
}

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0, 16)}
}

// Push appends an event; insertion order is preserved
func (q *Queue[T]) Push(ev T) {
	q.items = append(q.items, ev)
}

// Events returns the pending events in insertion order
// The returned slice is only valid until the next Push or Clear
func (q *Queue[T]) Events() []T {
	return q.items
}

// Drain returns a copy of the pending events and clears the queue
func (q *Queue[T]) Drain() []T {
	if len(q.items) == 0 {
		q.Clear()
		return nil
	}
	out := make([]T, len(q.items))
	copy(out, q.items)
	q.Clear()
	return out
}

// Clear discards all pending events, keeping capacity
func (q *Queue[T]) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.clears++
}

// Len returns the pending event count
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Clears returns how many times the queue has been cleared
// Tests use it to check the once-per-frame contract
func (q *Queue[T]) Clears() uint64 {
	return q.clears
}

package engine

import (
	"sync/atomic"
	"time"
)

// TimeResource holds the frame delta published by the loop before each dispatch
type TimeResource struct {
	Delta   time.Duration // Zero when the previous frame overran twice its budget
	Elapsed time.Duration // Sum of published deltas
	Frame   int64
}

// Seconds returns the frame delta in seconds
func (t *TimeResource) Seconds() float64 {
	return t.Delta.Seconds()
}

func (t *TimeResource) advance(delta time.Duration) {
	t.Delta = delta
	t.Elapsed += delta
	t.Frame++
}

// AppState is the run flag checked by the loop at the top of every iteration
// Stopping it is the only cancellation primitive; the current frame always completes
type AppState struct {
	running atomic.Bool
}

// NewAppState returns a state that is running
func NewAppState() *AppState {
	s := &AppState{}
	s.running.Store(true)
	return s
}

// Running reports whether the loop should keep iterating
func (s *AppState) Running() bool {
	return s.running.Load()
}

// Stop requests loop termination after the current frame
func (s *AppState) Stop() {
	s.running.Store(false)
}

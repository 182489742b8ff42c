package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// With a step set, every Now call moves the clock forward so busy-waits terminate
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	step        time.Duration
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time, then applies the auto-advance step
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return now
}

// SetStep sets how far each Now call advances the clock
func (m *MockTimeProvider) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = d
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

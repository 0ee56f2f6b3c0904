package shared

import (
	"sync"
	"time"
)

// Clock supplies wall-clock timestamps for events, saves and interaction
// history. Simulation time never comes from here: it advances only through
// the deltas passed to Tick.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a manually driven clock for tests
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock starts a mock clock at startTime, or at the current time when zero
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Now().UTC()
	}
	return &MockClock{current: startTime}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

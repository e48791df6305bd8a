package event

import (
	"sync"
	"time"
)

// Clock supplies monotonic time to the translator state machine.
// Injected so ESC-timer behavior is deterministic under test.
type Clock interface {
	Now() time.Time
}

// systemClock is the default real clock
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable time source for tests
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a manual clock at the given start time
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetTime sets the clock to t
func (c *ManualClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

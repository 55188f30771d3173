package mocks

import (
	"time"

	"github.com/wordvote/wordvote/internal/dependencies/scheduler"
)

// ScheduledCall records one deferred call registered with the scheduler
type ScheduledCall struct {
	Delay time.Duration
	Fn    func()
}

// MockScheduler is a mock implementation of Scheduler for testing.
// Deferred functions are recorded, never run automatically; tests fire
// them explicitly to exercise the expiry race paths.
type MockScheduler struct {
	Calls []ScheduledCall
}

// Ensure MockScheduler implements Scheduler
var _ scheduler.Scheduler = (*MockScheduler)(nil)

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// AfterFunc records the deferred call without running it
func (s *MockScheduler) AfterFunc(d time.Duration, fn func()) {
	s.Calls = append(s.Calls, ScheduledCall{Delay: d, Fn: fn})
}

// FireAll runs every recorded call and clears the queue
func (s *MockScheduler) FireAll() {
	calls := s.Calls
	s.Calls = nil
	for _, c := range calls {
		c.Fn()
	}
}

package scheduler

import "time"

// Scheduler defers a function call, fire-and-forget. It backs the
// best-effort session expiry sweep: delivery is at-least-once in
// production but callers must never depend on it having run, because
// the process may restart before the timer fires.
type Scheduler interface {
	// AfterFunc invokes fn after d has elapsed
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler implements Scheduler using time.AfterFunc
type TimerScheduler struct{}

// New creates a new TimerScheduler
func New() *TimerScheduler {
	return &TimerScheduler{}
}

// AfterFunc invokes fn on its own goroutine after d has elapsed
func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

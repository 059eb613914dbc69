// Package clock abstracts wall time so polling loops can be driven in tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and timed waits
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// After returns a channel that receives the time once d has elapsed
	After(d time.Duration) <-chan time.Time
}

// Real implements Clock using the system clock
type Real struct{}

// Now returns time.Now
func (Real) Now() time.Time { return time.Now() }

// After wraps time.After
func (Real) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Fake is a manually driven Clock for tests.
// After advances the fake time by d and fires immediately, so sleeping
// loops make progress without real waiting.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

// NewFake creates a fake clock starting at start
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake time forward by d
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set jumps the fake time to t
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// After records the wait, advances by d and returns a fired channel
func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.waits = append(f.waits, d)
	f.now = f.now.Add(d)

	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

// Waits returns every duration passed to After so far
func (f *Fake) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waits))
	copy(out, f.waits)
	return out
}

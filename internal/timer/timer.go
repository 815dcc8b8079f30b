// Package timer defines the clock and scheduling capabilities the dialogue
// engine depends on. Hosts supply an implementation that runs callbacks on
// their event loop; tests use Manual to drive time by hand.
package timer

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Handle is returned by every schedule call and cancels it.
type Handle interface {
	// Stop cancels the callback. It reports whether the call stopped a
	// pending callback; stopping twice is harmless and returns false.
	Stop() bool
}

// Service schedules callbacks. Implementations must invoke fn on the same
// goroutine that processes input events so callers never need locking.
type Service interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// System is the wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Set tracks handles so they can be cancelled together on teardown.
type Set struct {
	handles []Handle
}

// Add retains h and returns it.
func (s *Set) Add(h Handle) Handle {
	s.handles = append(s.handles, h)
	return h
}

// StopAll cancels every retained handle and forgets them. Returns how many
// were still pending.
func (s *Set) StopAll() int {
	n := 0
	for _, h := range s.handles {
		if h.Stop() {
			n++
		}
	}
	s.handles = nil
	return n
}

// Len returns the number of retained handles.
func (s *Set) Len() int { return len(s.handles) }

package otel

import (
	"maps"
	"strings"
	"sync"
)

// DefaultRingSize is used when NewRingBuffer is given a non-positive size.
const DefaultRingSize = 256

// RingBuffer keeps the most recent events. Safe for concurrent use.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	head  int // next write index
	count int
}

// NewRingBuffer returns a buffer holding at most size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push appends e, evicting the oldest event when full. Extra is copied so
// the caller may reuse its map.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		e.Extra = maps.Clone(e.Extra)
	}
	r.mu.Lock()
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	return r.Last(r.Cap())
}

// Last returns up to n of the newest events, oldest first. It returns nil
// for n <= 0 or an empty buffer.
func (r *RingBuffer) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || r.count == 0 {
		return nil
	}
	n = min(n, r.count)
	size := len(r.buf)
	out := make([]Event, n)
	start := (r.head - n + size) % size
	for i := range out {
		out[i] = r.buf[(start+i)%size]
	}
	return out
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the capacity.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, e := range r.Snapshot() {
		counts[e.Kind]++
	}
	return counts
}

// Subsystems counts buffered events by the part of their kind before the
// dot: "chat", "ui", "screen", "sys".
func (r *RingBuffer) Subsystems() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Snapshot() {
		sub, _, _ := strings.Cut(string(e.Kind), ".")
		counts[sub]++
	}
	return counts
}

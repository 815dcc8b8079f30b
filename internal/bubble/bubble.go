// Package bubble manages the transient speech bubbles shown in bubble mode.
// A bubble references a message from the conversation store; it fades out
// linearly and is evicted once its display duration has elapsed. System
// captions never expire by time; what happens to them when new messages
// arrive is decided by a Policy.
package bubble

import (
	"fmt"
	"time"

	"github.com/abelbrown/disciple/internal/conversation"
)

// DefaultDuration is how long a non-system bubble stays on screen.
const DefaultDuration = 5000 * time.Millisecond

// Policy decides how system bubbles are retained.
type Policy int

const (
	// SystemSupersede keeps at most one system bubble: a newer system
	// message replaces the older one.
	SystemSupersede Policy = iota
	// SystemAccumulate keeps every system bubble until the next mode switch.
	SystemAccumulate
)

func (p Policy) String() string {
	switch p {
	case SystemSupersede:
		return "supersede"
	case SystemAccumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy reads a policy name from configuration.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "supersede":
		return SystemSupersede, nil
	case "accumulate":
		return SystemAccumulate, nil
	}
	return 0, fmt.Errorf("unknown system bubble policy %q", name)
}

// Bubble is an active message and the time it entered the active set.
type Bubble struct {
	Message conversation.Message
	AddedAt time.Time
}

// IsSystem reports whether the bubble holds a system caption.
func (b Bubble) IsSystem() bool { return b.Message.IsSystem() }

// Manager owns the active bubble set.
type Manager struct {
	duration time.Duration
	policy   Policy
	active   []Bubble
}

// New returns an empty manager. A non-positive duration selects
// DefaultDuration.
func New(duration time.Duration, policy Policy) *Manager {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Manager{duration: duration, policy: policy}
}

// Duration returns the display duration of non-system bubbles.
func (m *Manager) Duration() time.Duration { return m.duration }

// Policy returns the system bubble policy.
func (m *Manager) Policy() Policy { return m.policy }

// EnterBubbleMode replaces the active set with msgs, in order. The caller
// passes the most recent messages of the conversation regardless of
// speaker.
func (m *Manager) EnterBubbleMode(msgs []conversation.Message, now time.Time) {
	m.active = m.active[:0]
	for _, msg := range msgs {
		m.active = append(m.active, Bubble{Message: msg, AddedAt: now})
	}
}

// Push adds a newly sent or received message. A character or player
// message replaces every non-system bubble. A system message is added
// alongside them, replacing older system bubbles under SystemSupersede.
func (m *Manager) Push(msg conversation.Message, now time.Time) {
	kept := m.active[:0]
	for _, b := range m.active {
		switch {
		case !b.IsSystem() && !msg.IsSystem():
			continue
		case b.IsSystem() && msg.IsSystem() && m.policy == SystemSupersede:
			continue
		}
		kept = append(kept, b)
	}
	m.active = append(kept, Bubble{Message: msg, AddedAt: now})
}

// Tick evicts expired bubbles and reports whether anything was removed.
func (m *Manager) Tick(now time.Time) bool {
	kept := m.active[:0]
	for _, b := range m.active {
		if b.IsSystem() || now.Sub(b.AddedAt) < m.duration {
			kept = append(kept, b)
		}
	}
	changed := len(kept) != len(m.active)
	m.active = kept
	return changed
}

// Opacity is 1 for system bubbles and decays linearly from 1 to 0 over the
// display duration for everything else. It is not clamped: callers skip
// bubbles at or below zero.
func (m *Manager) Opacity(b Bubble, now time.Time) float64 {
	if b.IsSystem() {
		return 1
	}
	elapsed := now.Sub(b.AddedAt)
	return 1 - float64(elapsed)/float64(m.duration)
}

// Active returns a copy of the active set in insertion order.
func (m *Manager) Active() []Bubble {
	out := make([]Bubble, len(m.active))
	copy(out, m.active)
	return out
}

// Len returns the size of the active set.
func (m *Manager) Len() int { return len(m.active) }

// Clear empties the active set.
func (m *Manager) Clear() { m.active = m.active[:0] }

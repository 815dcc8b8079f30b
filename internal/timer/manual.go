package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Clock and Service. Time only moves when Advance
// is called, and due callbacks run synchronously inside Advance in deadline
// order (ties in scheduling order).
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m      *Manual
	seq    uint64
	at     time.Time
	every  time.Duration
	fn     func()
	active bool
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn to run once d after the current manual time.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	return m.schedule(d, 0, fn)
}

// Every schedules fn to run every d. A non-positive d is treated as one
// nanosecond so Advance always terminates.
func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) schedule(d, every time.Duration, fn func()) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, seq: m.seq, at: m.now.Add(d), every: every, fn: fn, active: true}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves time forward by d, running every callback that falls due.
// Callbacks scheduled by callbacks run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t := m.nextDueLocked(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = t.at
		if t.every > 0 {
			t.at = t.at.Add(t.every)
		} else {
			t.active = false
			m.removeLocked(t)
		}
		fn := t.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of scheduled callbacks that have not fired or
// been stopped. Repeating callbacks count once.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTask {
	due := make([]*manualTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (m *Manual) removeLocked(t *manualTask) {
	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// Stop cancels the task.
func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if !t.active {
		return false
	}
	t.active = false
	t.m.removeLocked(t)
	return true
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/disciple/internal/timer"
)

// Scheduler is a timer.Service that runs callbacks on the Bubble Tea event
// loop. Scheduling queues a tea.Tick; the App drains the queue after each
// Update and runs the callback when the tick message arrives.
type Scheduler struct {
	queue []tea.Cmd
}

type teaTimer struct {
	fn      func()
	every   time.Duration
	stopped bool
	fired   bool
}

// Stop reports whether the callback was still pending.
func (t *teaTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) timer.Handle {
	t := &teaTimer{fn: fn}
	s.arm(t, d)
	return t
}

func (s *Scheduler) Every(d time.Duration, fn func()) timer.Handle {
	t := &teaTimer{fn: fn, every: d}
	s.arm(t, d)
	return t
}

func (s *Scheduler) arm(t *teaTimer, d time.Duration) {
	s.queue = append(s.queue, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFired{t: t}
	}))
}

// fire runs a due callback. Repeating timers are re-armed first so the
// callback may stop its own timer.
func (s *Scheduler) fire(t *teaTimer) {
	if t.stopped || t.fired {
		return
	}
	if t.every > 0 {
		s.arm(t, t.every)
	} else {
		t.fired = true
	}
	t.fn()
}

// Pending returns the number of queued ticks not yet handed to Bubble Tea.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Cmd drains the queue into one command. It returns nil when empty.
func (s *Scheduler) Cmd() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	q := s.queue
	s.queue = nil
	return tea.Batch(q...)
}

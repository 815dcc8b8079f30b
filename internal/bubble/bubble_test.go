package bubble

import (
	"testing"
	"time"

	"github.com/abelbrown/disciple/internal/conversation"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func msg(sp conversation.Speaker, text string) conversation.Message {
	return conversation.NewMessage(sp, text, t0)
}

func texts(bs []Bubble) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Message.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEnterBubbleModeKeepsLastTwoInOrder(t *testing.T) {
	store := conversation.NewStore(
		msg(conversation.System, "intro"),
		msg(conversation.Character, "c1"),
		msg(conversation.Player, "p1"),
		msg(conversation.Character, "c2"),
	)
	m := New(0, SystemSupersede)
	m.Push(msg(conversation.System, "stale"), t0)

	m.EnterBubbleMode(store.Last(2), t0)

	if got := texts(m.Active()); !equal(got, []string{"p1", "c2"}) {
		t.Errorf("active = %v, want [p1 c2]", got)
	}
}

func TestPushReplacesNonSystemBubbles(t *testing.T) {
	m := New(0, SystemSupersede)
	m.EnterBubbleMode([]conversation.Message{
		msg(conversation.System, "intro"),
		msg(conversation.Character, "c1"),
	}, t0)

	m.Push(msg(conversation.Player, "p1"), t0.Add(time.Second))
	if got := texts(m.Active()); !equal(got, []string{"intro", "p1"}) {
		t.Fatalf("after player push: %v", got)
	}

	m.Push(msg(conversation.Character, "c2"), t0.Add(2*time.Second))
	if got := texts(m.Active()); !equal(got, []string{"intro", "c2"}) {
		t.Fatalf("after character push: %v", got)
	}
}

func TestSystemPolicies(t *testing.T) {
	tests := []struct {
		policy Policy
		want   []string
	}{
		{SystemSupersede, []string{"c1", "unlock"}},
		{SystemAccumulate, []string{"intro", "c1", "unlock"}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			m := New(0, tt.policy)
			m.Push(msg(conversation.System, "intro"), t0)
			m.Push(msg(conversation.Character, "c1"), t0)
			m.Push(msg(conversation.System, "unlock"), t0)
			if got := texts(m.Active()); !equal(got, tt.want) {
				t.Errorf("active = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for name, want := range map[string]Policy{"": SystemSupersede, "supersede": SystemSupersede, "accumulate": SystemAccumulate} {
		got, err := ParsePolicy(name)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParsePolicy("forever"); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestTickExpiry(t *testing.T) {
	m := New(0, SystemSupersede)
	m.Push(msg(conversation.System, "intro"), t0)
	m.Push(msg(conversation.Player, "p1"), t0)

	if m.Tick(t0.Add(4999 * time.Millisecond)) {
		t.Error("nothing should expire before 5000ms")
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	if !m.Tick(t0.Add(5000 * time.Millisecond)) {
		t.Error("player bubble should expire at exactly 5000ms")
	}
	if got := texts(m.Active()); !equal(got, []string{"intro"}) {
		t.Errorf("active = %v, want only the system bubble", got)
	}

	m.Tick(t0.Add(time.Hour))
	if m.Len() != 1 {
		t.Error("system bubbles never expire by time")
	}
}

func TestOpacityDecaysLinearly(t *testing.T) {
	m := New(0, SystemSupersede)
	m.Push(msg(conversation.Character, "c1"), t0)
	b := m.Active()[0]

	prev := 2.0
	for ms := 0; ms <= 5000; ms += 250 {
		op := m.Opacity(b, t0.Add(time.Duration(ms)*time.Millisecond))
		if op >= prev {
			t.Fatalf("opacity not strictly decreasing at %dms: %v >= %v", ms, op, prev)
		}
		prev = op
	}
	if got := m.Opacity(b, t0); got != 1 {
		t.Errorf("opacity at 0ms = %v, want 1", got)
	}
	if got := m.Opacity(b, t0.Add(2500*time.Millisecond)); got != 0.5 {
		t.Errorf("opacity at 2500ms = %v, want 0.5", got)
	}
	if got := m.Opacity(b, t0.Add(5000*time.Millisecond)); got > 0 {
		t.Errorf("opacity at 5000ms = %v, want <= 0", got)
	}

	sys := Bubble{Message: msg(conversation.System, "s"), AddedAt: t0}
	if got := m.Opacity(sys, t0.Add(time.Hour)); got != 1 {
		t.Errorf("system opacity = %v, want 1", got)
	}
}

func TestCustomDuration(t *testing.T) {
	m := New(time.Second, SystemSupersede)
	m.Push(msg(conversation.Player, "p"), t0)
	if m.Tick(t0.Add(999 * time.Millisecond)) {
		t.Error("expired early")
	}
	if !m.Tick(t0.Add(time.Second)) {
		t.Error("should expire at the configured duration")
	}
}

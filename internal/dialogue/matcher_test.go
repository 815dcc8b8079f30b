package dialogue

import (
	"math/rand"
	"testing"
)

func TestMatchRepeatSuppressed(t *testing.T) {
	stage := &Stage{}
	m := NewMatcher([]Rule{{Keywords: []string{"你好"}, Response: "R1"}}, stage)

	got, ok := m.Match("你好啊")
	if !ok || got.Text != "R1" {
		t.Fatalf("first Match = %+v, %v; want R1", got, ok)
	}

	if got, ok := m.Match("你好啊"); ok {
		t.Fatalf("repeat Match = %+v, want no match", got)
	}
	if stage.LastResponse != "R1" {
		t.Errorf("LastResponse = %q, want R1", stage.LastResponse)
	}
}

func TestMatchScanContinuesPastRepeat(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"救"}, Response: "first"},
		{Keywords: []string{"帮"}, Response: "second"},
	}
	m := NewMatcher(rules, &Stage{})

	if got, _ := m.Match("救救帮帮"); got.Text != "first" {
		t.Fatalf("got %q, want first", got.Text)
	}
	if got, ok := m.Match("救救帮帮"); !ok || got.Text != "second" {
		t.Fatalf("got %q/%v, want second after skipping the repeat", got.Text, ok)
	}
	if got, ok := m.Match("救救帮帮"); !ok || got.Text != "first" {
		t.Fatalf("got %q/%v, want first again", got.Text, ok)
	}
}

func TestMatchTableOrderAndFolding(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"HELLO"}, Response: "greeting"},
		{Keywords: []string{"hello there"}, Response: "never reached"},
	}
	m := NewMatcher(rules, &Stage{})

	got, ok := m.Match("Well, Hello There!")
	if !ok || got.Text != "greeting" {
		t.Fatalf("got %+v/%v, want greeting from the first rule", got, ok)
	}
}

func TestMatchEmptyInput(t *testing.T) {
	m := NewMatcher(Default().Rules, &Stage{})
	for _, in := range []string{"", "   ", "\n"} {
		if got, ok := m.Match(in); ok {
			t.Errorf("Match(%q) = %+v, want none", in, got)
		}
	}

	// A blank line is not input even when a keyword would be found in it.
	stage := &Stage{LastResponse: "before"}
	m = NewMatcher([]Rule{{Keywords: []string{" "}, Response: "space"}}, stage)
	if got, ok := m.Match("   "); ok {
		t.Errorf("Match(blank) = %+v, want none", got)
	}
	if stage.LastResponse != "before" {
		t.Errorf("LastResponse = %q, blank input must not touch the stage", stage.LastResponse)
	}
	if got, ok := m.Match("a b"); !ok || got.Text != "space" {
		t.Errorf("Match(%q) = %+v/%v, want the space rule", "a b", got, ok)
	}
}

func TestMatchFinalSetsStage(t *testing.T) {
	stage := &Stage{}
	m := NewMatcher(Default().Rules, stage)

	got, ok := m.Match("我有观音的咒语")
	if !ok || !got.Final {
		t.Fatalf("got %+v/%v, want the final rule", got, ok)
	}
	if !stage.FinalReached {
		t.Error("FinalReached should be set after a final rule")
	}
}

func TestMatchDefaultScriptConversation(t *testing.T) {
	m := NewMatcher(Default().Rules, &Stage{})
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"你好", "哼！又来了一个凡人，想要揭开这五指山？", true},
		{"我来救你", "五百年了，我被压在这五指山下整整五百年了！你真的能帮我？", true},
		{"今天天气不错", "", false},
		{"我一定可以", "就凭你？不过...如果你真能帮我离开这里，我就认你做主人！", true},
		{"要怎么做", "要解开这五指山，需要找到观音菩萨的咒语才行...", true},
	}
	for _, tt := range tests {
		got, ok := m.Match(tt.in)
		if ok != tt.ok || got.Text != tt.want {
			t.Errorf("Match(%q) = %q/%v, want %q/%v", tt.in, got.Text, ok, tt.want, tt.ok)
		}
	}
}

// Two consecutive returned responses are never identical, whatever the input.
func TestMatchNeverRepeatsConsecutively(t *testing.T) {
	rules := []Rule{
		{Keywords: []string{"a", "b"}, Response: "X"},
		{Keywords: []string{"b"}, Response: "Y"},
		{Keywords: []string{"c"}, Response: "X"},
		{Keywords: []string{"d"}, Response: "Z", Final: true},
	}
	alphabet := []string{"a", "b", "c", "d", "e", "ab", "bc", "cd"}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		m := NewMatcher(rules, &Stage{})
		last := ""
		for i := 0; i < 40; i++ {
			got, ok := m.Match(alphabet[rng.Intn(len(alphabet))])
			if !ok {
				continue
			}
			if got.Text == last {
				t.Fatalf("round %d step %d: %q returned twice in a row", round, i, got.Text)
			}
			last = got.Text
		}
	}
}

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func TestFillersPick(t *testing.T) {
	f := Default().Fillers
	if len(f) != 5 {
		t.Fatalf("default script has %d fillers, want 5", len(f))
	}
	if got := f.Pick(fixedRand(3)); got != f[3] {
		t.Errorf("Pick = %q, want %q", got, f[3])
	}
	if got := Fillers(nil).Pick(fixedRand(0)); got != "" {
		t.Errorf("empty Pick = %q, want empty", got)
	}

	seen := map[string]bool{}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		seen[f.Pick(rng)] = true
	}
	if len(seen) != len(f) {
		t.Errorf("saw %d distinct fillers in 500 picks, want %d", len(seen), len(f))
	}
}

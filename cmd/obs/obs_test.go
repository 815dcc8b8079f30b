package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/disciple/internal/dialogue"
)

const journal = `{"t":"2024-01-01T10:00:00Z","kind":"screen.start","session_id":"aaaaaaaa-1"}
{"t":"2024-01-01T10:00:05Z","kind":"chat.send","session_id":"aaaaaaaa-1","msg":"你好"}
{"t":"2024-01-01T10:00:06Z","kind":"chat.reply","session_id":"aaaaaaaa-1","dur_ms":500}
{"t":"2024-01-01T10:00:09Z","kind":"chat.send","session_id":"aaaaaaaa-1","msg":"咒语"}
{"t":"2024-01-01T10:00:10Z","kind":"chat.reply","session_id":"aaaaaaaa-1","dur_ms":700}
{"t":"2024-01-01T10:00:11Z","kind":"chat.unlock","session_id":"aaaaaaaa-1"}
{"t":"2024-01-01T10:00:12Z","kind":"ui.tap","session_id":"aaaaaaaa-1","action":"activate"}
{"t":"2024-01-01T10:00:12Z","kind":"chat.activate","session_id":"aaaaaaaa-1"}
not json
{"t":"2023-12-31T09:00:00Z","kind":"chat.send","session_id":"bbbbbbbb-2","level":"info"}
{"t":"2023-12-31T09:00:01Z","kind":"chat.filler","session_id":"bbbbbbbb-2","level":"warn"}
`

func TestSummarize(t *testing.T) {
	events, err := readEvents(strings.NewReader(journal))
	if err != nil {
		t.Fatal(err)
	}
	sessions := summarize(events)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}

	old, cur := sessions[0], sessions[1]
	if old.ID != "bbbbbbbb-2" {
		t.Errorf("sessions not ordered by start: first is %s", old.ID)
	}
	if old.Sends != 1 || old.Fillers != 1 || old.Unlocked {
		t.Errorf("old session = %+v", old)
	}
	if cur.Sends != 2 || cur.Replies != 2 || cur.Taps != 1 || !cur.Unlocked || !cur.Activated {
		t.Errorf("current session = %+v", cur)
	}
	if cur.ReplyMs != 1200 {
		t.Errorf("reply ms = %v, want 1200", cur.ReplyMs)
	}
	if got := cur.End.Sub(cur.Start); got != 12*time.Second {
		t.Errorf("duration = %v, want 12s", got)
	}
}

func TestCollectTailNumbersTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte(journal), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := collectTail(f, 3, eventFilter{chatOnly: true}, turns{})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind string
		turn int
	}{
		{"chat.activate", 2},
		{"chat.send", 1},
		{"chat.filler", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].rec.Kind != w.kind || got[i].turn != w.turn {
			t.Errorf("entry %d = %s #%d, want %s #%d", i, got[i].rec.Kind, got[i].turn, w.kind, w.turn)
		}
	}
}

func TestEventFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter eventFilter
		want   int
	}{
		{"all", eventFilter{}, 10},
		{"session prefix", eventFilter{session: "bbbb"}, 2},
		{"kind prefix", eventFilter{kind: "chat.send"}, 3},
		{"warn and above", eventFilter{minLevel: levelRank("warn")}, 1},
		{"conversation only", eventFilter{chatOnly: true}, 9},
	}
	events, err := readEvents(strings.NewReader(journal))
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 0
			for _, ev := range events {
				if tt.filter.match(ev) {
					n++
				}
			}
			if n != tt.want {
				t.Errorf("matched %d, want %d", n, tt.want)
			}
		})
	}
}

func TestFormatEntry(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)
	tests := []struct {
		name string
		e    entry
		want string
	}{
		{"send", entry{rec: record{Time: at, Kind: "chat.send", Msg: "你好"}, turn: 1},
			"10:00:05.000 #1  > 你好"},
		{"matched reply", entry{rec: record{Time: at, Kind: "chat.reply", Msg: "哼", DurMs: 500}, turn: 1},
			"10:00:05.000 #1  < 哼  (+500ms)"},
		{"filler", entry{rec: record{Time: at, Kind: "chat.filler", Msg: "嗯？", DurMs: 500}, turn: 12},
			"10:00:05.000 #12 < 嗯？  (filler, +500ms)"},
		{"unlock", entry{rec: record{Time: at, Kind: "chat.unlock", Msg: "孙悟空"}, turn: 3},
			"10:00:05.000 #3  ! activation unlocked for 孙悟空"},
		{"before first line", entry{rec: record{Time: at, Kind: "screen.start", Msg: "孙悟空", Mode: "bubble"}},
			"10:00:05.000     = screen opened: 孙悟空, bubble mode"},
		{"error", entry{rec: record{Time: at, Kind: "sys.error", Level: "error", Comp: "ui", Err: "boom"}},
			"10:00:05.000     [ui] sys.error  err=boom  [ERROR]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEntry(tt.e); got != tt.want {
				t.Errorf("formatEntry() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPrinterSessionHeaders(t *testing.T) {
	var b strings.Builder
	p := &printer{w: &b}
	for _, id := range []string{"aaaaaaaa-1", "aaaaaaaa-1", "bbbbbbbb-2"} {
		p.print(entry{rec: record{Kind: "ui.tap", SessionID: id, Action: "back"}})
	}
	if got := strings.Count(b.String(), "── session"); got != 2 {
		t.Errorf("headers = %d, want 2:\n%s", got, b.String())
	}
	if !strings.Contains(b.String(), "── session bbbbbbbb ──") {
		t.Errorf("missing short session id:\n%s", b.String())
	}
}

func TestLevelRank(t *testing.T) {
	if !(levelRank("error") > levelRank("warn") && levelRank("warn") > levelRank("info") && levelRank("info") > levelRank("debug")) {
		t.Error("levels out of order")
	}
	if levelRank("bogus") != 0 {
		t.Error("unknown level should rank lowest")
	}
}

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func TestReplayDefaultScript(t *testing.T) {
	s := dialogue.Default()
	got := replay(s, []string{"你好", " ", "你好", "观音菩萨的咒语"}, zeroRand{})
	want := []string{
		"> 你好",
		"< " + s.Rules[0].Response,
		"> 你好",
		"< " + s.Fillers[0] + "  (filler)",
		"> 观音菩萨的咒语",
		"< " + s.Rules[len(s.Rules)-1].Response,
		"! " + s.Unlock,
	}
	if len(got) != len(want) {
		t.Fatalf("transcript:\n%s", strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("等等！你手上拿的是什么？", 8); got != "等等！你手..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/disciple/internal/otel"
)

// entry is a journal record placed in its session's conversation.
type entry struct {
	rec  record
	raw  []byte
	turn int
}

// eventFilter selects which records the viewer prints.
type eventFilter struct {
	session  string
	kind     string
	minLevel int
	chatOnly bool
}

func (f eventFilter) match(rec record) bool {
	if f.session != "" && !strings.HasPrefix(rec.SessionID, f.session) {
		return false
	}
	if f.kind != "" && !strings.HasPrefix(rec.Kind, f.kind) {
		return false
	}
	if levelRank(rec.Level) < f.minLevel {
		return false
	}
	if f.chatOnly && !strings.HasPrefix(rec.Kind, "chat.") && !strings.HasPrefix(rec.Kind, "screen.") {
		return false
	}
	return true
}

func runEvents() {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	tail := fs.Int("tail", 50, "Number of recent events to show")
	follow := fs.Bool("f", false, "Keep printing events as they are written")
	session := fs.String("session", "", "Only this session (ID prefix)")
	kind := fs.String("kind", "", "Filter by event kind prefix (e.g. 'chat')")
	level := fs.String("level", "", "Minimum level: debug, info, warn, error")
	chat := fs.Bool("chat", false, "Only the conversation: lines, replies, unlock and activation")
	rawJSON := fs.Bool("json", false, "Output raw JSON lines")
	fs.Parse(os.Args[1:])

	logPath := eventLogPath()
	f, err := os.Open(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintf(os.Stderr, "  Event log not found at %s\n", logPath)
		fmt.Fprintf(os.Stderr, "  Run disciple with %s=1 first to generate events.\n", otel.TraceEnv)
		os.Exit(1)
	}
	defer f.Close()

	filter := eventFilter{session: *session, kind: *kind, minLevel: levelRank(*level), chatOnly: *chat}
	p := &printer{w: os.Stdout, raw: *rawJSON}
	t := turns{}

	entries, err := collectTail(f, *tail, filter, t)
	if err != nil {
		fatalf("read %s: %v", logPath, err)
	}
	for _, e := range entries {
		p.print(e)
	}
	if *follow {
		followJournal(f, filter, t, p)
	}
}

// collectTail scans the whole journal so turn numbers stay right, and keeps
// the last n matching entries.
func collectTail(r io.Reader, n int, filter eventFilter, t turns) ([]entry, error) {
	var out []entry
	err := scanJournal(r, func(rec record, raw []byte) {
		turn := t.next(rec)
		if n <= 0 || !filter.match(rec) {
			return
		}
		if len(out) == n {
			out = out[1:]
		}
		out = append(out, entry{rec: rec, raw: append([]byte(nil), raw...), turn: turn})
	})
	return out, err
}

// followJournal polls r for appended lines until it fails.
func followJournal(r io.Reader, filter eventFilter, t turns, p *printer) {
	reader := bufio.NewReader(r)
	var partial []byte
	for {
		chunk, err := reader.ReadBytes('\n')
		partial = append(partial, chunk...)
		if err == io.EOF {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		line := strings.TrimRight(string(partial), "\r\n")
		partial = partial[:0]
		rec, ok := decodeRecord([]byte(line))
		if !ok {
			continue
		}
		turn := t.next(rec)
		if filter.match(rec) {
			p.print(entry{rec: rec, raw: []byte(line), turn: turn})
		}
	}
}

// printer writes entries as a conversation log, with a header each time
// the session changes.
type printer struct {
	w       io.Writer
	raw     bool
	session string
}

func (p *printer) print(e entry) {
	if p.raw {
		fmt.Fprintln(p.w, string(e.raw))
		return
	}
	if e.rec.SessionID != p.session {
		p.session = e.rec.SessionID
		fmt.Fprintf(p.w, "── session %s ──\n", shortID(p.session))
	}
	fmt.Fprintln(p.w, formatEntry(e))
}

// formatEntry renders one event. Conversation events read like the
// transcript: "> " for the player, "< " for the disciple.
func formatEntry(e entry) string {
	rec := e.rec
	ts := rec.Time.Format("15:04:05.000")
	turn := "   "
	if e.turn > 0 {
		turn = fmt.Sprintf("#%-2d", e.turn)
	}

	var body string
	switch rec.Kind {
	case kindSend:
		body = "> " + rec.Msg
	case kindReply:
		body = "< " + rec.Msg + replyNote("", rec.DurMs)
	case kindFiller:
		body = "< " + rec.Msg + replyNote("filler", rec.DurMs)
	case kindUnlock:
		body = "! activation unlocked for " + rec.Msg
	case kindActivate:
		body = "* " + rec.Msg + " activated"
	case kindStart:
		body = fmt.Sprintf("= screen opened: %s, %s mode", rec.Msg, rec.Mode)
	case kindClose:
		body = fmt.Sprintf("= screen closed after %d messages", rec.Count)
	case kindMode:
		body = "~ switched to " + rec.Mode
	case kindTap:
		body = ". tap " + rec.Action
	case kindDrag:
		body = fmt.Sprintf(". drag dy=%v", rec.Extra["dy"])
	default:
		body = fmt.Sprintf("[%s] %s %s", rec.Comp, rec.Kind, rec.Msg)
	}
	if rec.Err != "" {
		body += " err=" + rec.Err
	}

	line := fmt.Sprintf("%s %s %s", ts, turn, strings.TrimRight(body, " "))
	if lvl := levelRank(rec.Level); lvl >= levelRank("warn") {
		line += "  [" + strings.ToUpper(rec.Level) + "]"
	}
	return line
}

// replyNote describes how a reply was chosen and how long the disciple
// took to answer.
func replyNote(note string, ms float64) string {
	var parts []string
	if note != "" {
		parts = append(parts, note)
	}
	if ms > 0 {
		parts = append(parts, fmt.Sprintf("+%.0fms", ms))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  (" + strings.Join(parts, ", ") + ")"
}

package main

import (
	"bufio"
	"encoding/json"
	"io"
	"time"
)

// record mirrors otel.Event for decoding. A local type keeps old journals
// readable when the event schema grows.
type record struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	MsgID     string         `json:"msg_id"`
	Speaker   string         `json:"speaker"`
	Mode      string         `json:"mode"`
	Action    string         `json:"action"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

// Conversation event kinds as they appear in the journal.
const (
	kindSend     = "chat.send"
	kindReply    = "chat.reply"
	kindFiller   = "chat.filler"
	kindUnlock   = "chat.unlock"
	kindActivate = "chat.activate"
	kindMode     = "ui.mode"
	kindTap      = "ui.tap"
	kindDrag     = "ui.drag"
	kindStart    = "screen.start"
	kindClose    = "screen.close"
	kindError    = "sys.error"
)

func decodeRecord(line []byte) (record, bool) {
	var rec record
	if len(line) == 0 || json.Unmarshal(line, &rec) != nil {
		return record{}, false
	}
	return rec, true
}

// scanJournal calls fn for every well-formed line of r, in file order.
// raw is only valid during the call.
func scanJournal(r io.Reader, fn func(rec record, raw []byte)) error {
	scanner := bufio.NewScanner(r)
	// Drag events carry Extra maps; leave room for long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if rec, ok := decodeRecord(raw); ok {
			fn(rec, raw)
		}
	}
	return scanner.Err()
}

// turns numbers the exchanges of each session. A turn starts with every
// line the player sends; everything until the next send belongs to it.
type turns map[string]int

// next returns the turn rec belongs to, opening a new one on a send.
func (t turns) next(rec record) int {
	if rec.Kind == kindSend {
		t[rec.SessionID]++
	}
	return t[rec.SessionID]
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

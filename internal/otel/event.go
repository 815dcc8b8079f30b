// Package otel records what the activation screen does as structured
// events.
//
// Events are typed structs serialized as JSONL lines. The Logger writes them
// asynchronously through a buffered channel; an optional RingBuffer keeps
// the latest events in memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level is event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind names an event as "<subsystem>.<action>".
type EventKind string

const (
	// Conversation
	KindChatSend     EventKind = "chat.send"
	KindChatReply    EventKind = "chat.reply"
	KindChatFiller   EventKind = "chat.filler"
	KindChatUnlock   EventKind = "chat.unlock"
	KindChatActivate EventKind = "chat.activate"

	// Screen interaction
	KindMode EventKind = "ui.mode"
	KindTap  EventKind = "ui.tap"
	KindDrag EventKind = "ui.drag"

	// Screen lifecycle
	KindScreenStart EventKind = "screen.start"
	KindScreenClose EventKind = "screen.close"

	// Process
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
)

// Event is the one record type. Only Kind is required; Time and SessionID
// are filled in by the Logger.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "screen", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	MsgID     string         `json:"msg_id,omitempty"`
	Speaker   string         `json:"speaker,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	Action    string         `json:"action,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // derived from Dur when marshalled
	Count     int            `json:"count,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}

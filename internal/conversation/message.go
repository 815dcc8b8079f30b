// Package conversation is the ordered, append-only message log of one
// activation screen, plus the text layout metrics the renderer and the
// scroll controller derive from it.
package conversation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a message.
type Speaker int

const (
	System Speaker = iota
	Character
	Player
)

func (s Speaker) String() string {
	switch s {
	case System:
		return "system"
	case Character:
		return "character"
	case Player:
		return "player"
	default:
		return fmt.Sprintf("speaker(%d)", int(s))
	}
}

// ParseSpeaker accepts the names used in dialogue scripts. "ai" is an
// alias for the character.
func ParseSpeaker(name string) (Speaker, error) {
	switch name {
	case "system":
		return System, nil
	case "character", "ai":
		return Character, nil
	case "player":
		return Player, nil
	}
	return 0, fmt.Errorf("unknown speaker %q", name)
}

// Message is one line of the conversation. Values are never modified after
// creation.
type Message struct {
	ID        string
	Speaker   Speaker
	Text      string
	CreatedAt time.Time
}

// NewMessage stamps a message with a fresh ID.
func NewMessage(speaker Speaker, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Text:      text,
		CreatedAt: at,
	}
}

// IsSystem reports whether m is a system caption.
func (m Message) IsSystem() bool { return m.Speaker == System }

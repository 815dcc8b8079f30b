package conversation

// Store is the append-only message log. Insertion order defines both the
// history scroll order and bubble recency. Nothing is ever removed or
// rewritten; callers filter copies instead.
type Store struct {
	messages []Message
}

// NewStore returns a store seeded with msgs, in order.
func NewStore(msgs ...Message) *Store {
	s := &Store{messages: make([]Message, 0, len(msgs)+16)}
	s.messages = append(s.messages, msgs...)
	return s
}

// Append adds m at the end. Content is not validated.
func (s *Store) Append(m Message) {
	s.messages = append(s.messages, m)
}

// Len returns the number of messages.
func (s *Store) Len() int { return len(s.messages) }

// At returns the i-th message.
func (s *Store) At(i int) Message { return s.messages[i] }

// All returns a copy of every message in order.
func (s *Store) All() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Last returns a copy of the last n messages in order. Fewer are returned
// when the store is shorter.
func (s *Store) Last(n int) []Message {
	if n <= 0 {
		return nil
	}
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// Each calls fn for every message in order.
func (s *Store) Each(fn func(i int, m Message)) {
	for i, m := range s.messages {
		fn(i, m)
	}
}

// Filter returns copies of the messages from speaker, in order.
func (s *Store) Filter(speaker Speaker) []Message {
	var out []Message
	for _, m := range s.messages {
		if m.Speaker == speaker {
			out = append(out, m)
		}
	}
	return out
}

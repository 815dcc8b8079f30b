package activation

import (
	"strings"

	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/otel"
	"github.com/abelbrown/disciple/internal/render"
)

// ToggleMode switches between bubble and history display. Entering bubble
// mode shows the last two messages; entering history mode scrolls to the
// newest message.
func (s *Screen) ToggleMode() {
	if s.closed {
		return
	}
	s.mode = s.mode.Toggle()
	if s.mode == render.ModeBubble {
		s.enterBubbleMode()
	} else {
		s.scroll.SetActive(true)
		s.recompute()
		s.scroll.ScrollToBottom()
	}
	s.log.Debug("mode", "mode", s.mode)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindMode, Comp: comp, Mode: s.mode.String()})
	s.Render()
}

func (s *Screen) enterBubbleMode() {
	s.scroll.SetActive(false)
	s.bubbles.EnterBubbleMode(s.store.Last(2), s.now())
}

// FocusInput opens the keyboard on the current input text.
func (s *Screen) FocusInput() {
	if s.closed {
		return
	}
	s.focused = true
	if k := s.deps.Keyboard; k != nil {
		k.ShowKeyboard(input.KeyboardOptions{Value: s.input, MaxLength: s.opts.MaxInput})
	}
	s.Render()
}

// SetInput replaces the input text, truncated to the input limit.
func (s *Screen) SetInput(v string) {
	if s.closed {
		return
	}
	s.input = s.clip(v)
	s.Render()
}

// Send posts the input text as a player message and schedules the reply.
// Blank input is ignored.
func (s *Screen) Send() {
	if s.closed || strings.TrimSpace(s.input) == "" {
		return
	}
	text := s.input
	msg := s.post(conversation.Player, text)
	s.input = ""
	s.focused = false
	if k := s.deps.Keyboard; k != nil {
		k.HideKeyboard()
	}
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindChatSend, Comp: comp,
		MsgID: msg.ID, Speaker: msg.Speaker.String(), Mode: s.mode.String(), Msg: text})

	s.pending++
	s.after(s.opts.ReplyDelay, func() { s.reply(text) })
	s.Render()
}

// reply answers text after the thinking delay: the matched response when a
// rule fires, otherwise a random filler line.
func (s *Screen) reply(text string) {
	s.pending--
	r, ok := s.matcher.Match(text)
	kind := otel.KindChatReply
	if !ok {
		r.Text = s.script.Fillers.Pick(s.deps.Rand)
		kind = otel.KindChatFiller
	}
	msg := s.post(conversation.Character, r.Text)
	s.log.Debug("reply", "matched", ok, "final", r.Final)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: kind, Comp: comp,
		MsgID: msg.ID, Speaker: msg.Speaker.String(), Dur: s.opts.ReplyDelay, Msg: r.Text})

	if r.Final {
		s.after(s.opts.UnlockDelay, s.unlock)
	}
	s.Render()
}

func (s *Screen) unlock() {
	if s.stage.Unlocked {
		return
	}
	s.stage.Unlocked = true
	s.post(conversation.System, s.script.Unlock)
	s.showActivate = true
	s.log.Info("activation unlocked", "disciple", s.script.Disciple.Name)
	s.events.Info(otel.KindChatUnlock, comp, s.script.Disciple.Name)
	s.Render()
}

// Activate accepts the disciple once the unlock follow-up has been shown,
// then returns to the main screen after a short pause.
func (s *Screen) Activate() {
	if s.closed || !s.showActivate || s.stage.Activated {
		return
	}
	s.stage.Activated = true
	s.showActivate = false
	s.post(conversation.System, s.script.Congratulation)
	s.log.Info("disciple activated", "disciple", s.script.Disciple.Name)
	s.events.Info(otel.KindChatActivate, comp, s.script.Disciple.Name)
	s.after(s.opts.ReturnDelay, s.Back)
	s.Render()
}

// Back closes the screen and hands control to the navigator.
func (s *Screen) Back() {
	if s.closed {
		return
	}
	res := Result{To: DestinationMain, Activated: s.stage.Activated, Messages: s.store.Len()}
	s.Close()
	if s.deps.Navigator != nil {
		s.deps.Navigator.Navigate(res)
	}
}

// post appends a message and shows it in the current mode: as a bubble in
// bubble mode, scrolled into view in history mode.
func (s *Screen) post(sp conversation.Speaker, text string) conversation.Message {
	now := s.now()
	msg := conversation.NewMessage(sp, text, now)
	s.store.Append(msg)
	s.recompute()
	if s.mode == render.ModeBubble {
		s.bubbles.Push(msg, now)
	} else {
		s.scroll.ScrollToBottom()
	}
	return msg
}

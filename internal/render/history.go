package render

import (
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/geom"
)

// drawHistory draws the scrollable message log and returns how many
// messages intersect the viewport.
func (r *Renderer) drawHistory(s Surface, st State) int {
	l, th := r.layout, r.theme
	s.FillRect(l.Chat, th.ChatShade)

	offset := 0.0
	if st.Scroll != nil {
		offset = st.Scroll.Display()
	}
	meas := r.Measurer(s)

	drawn := 0
	s.PushClip(l.Chat)
	y := l.HistoryTop + offset
	if st.Store != nil {
		st.Store.Each(func(_ int, m conversation.Message) {
			h := conversation.MessageExtent(m, l.HistoryWrap, meas)
			if y+h >= l.Chat.Y && y <= l.Chat.Bottom() {
				drawn++
				switch m.Speaker {
				case conversation.System:
					s.FillText(m.Text, l.Width/2, y+(conversation.SystemHeight-conversation.LineHeight)/2,
						th.CaptionFont, AlignCenter, th.Caption)
				case conversation.Character:
					r.historyBubble(s, m.Text, y, true)
				default:
					r.historyBubble(s, m.Text, y, false)
				}
			}
			y += h
		})
	}
	s.PopClip()

	r.drawScrollbar(s, st)
	return drawn
}

// historyBubble draws an avatar and a speech bubble sized to its text.
// Character messages sit on the left, player messages on the right.
func (r *Renderer) historyBubble(s Surface, text string, y float64, left bool) {
	l, th := r.layout, r.theme
	lines := conversation.WrapLines(text, l.HistoryWrap, r.Measurer(s))

	textW := 0.0
	for _, line := range lines {
		textW = max(textW, s.MeasureText(line, th.Body))
	}
	pad := conversation.BubblePadding
	w := textW + 2*pad
	h := conversation.BubbleHeight(len(lines))

	avatarSize := AvatarSize * l.Unit
	var bubbleX float64
	var fill, ink Paint
	if left {
		r.avatar(s, ImageCharacter, geom.R(20*l.Unit, y, avatarSize, avatarSize), th.Gold)
		bubbleX = 70 * l.Unit
		fill, ink = th.CharFill, th.CharText
	} else {
		r.avatar(s, ImageUser, geom.R(l.Width-60*l.Unit, y, avatarSize, avatarSize), th.PlayerStroke)
		bubbleX = l.Width - 70*l.Unit - w
		fill, ink = th.PlayerFill, th.PlayerText
	}
	s.FillRoundRect(geom.R(bubbleX, y, w, h), 10*l.Unit, fill)
	for i, line := range lines {
		s.FillText(line, bubbleX+pad, y+pad+float64(i)*conversation.LineHeight, th.Body, AlignLeft, ink)
	}
}

func (r *Renderer) drawScrollbar(s Surface, st State) {
	if st.Scroll == nil {
		return
	}
	track := r.layout.Scrollbar
	pos, size, ok := st.Scroll.Thumb(track.H)
	if !ok {
		return
	}
	s.FillRect(track, r.theme.ScrollTrack)
	s.FillRect(geom.R(track.X, track.Y+pos, track.W, size), r.theme.ScrollThumb)
}

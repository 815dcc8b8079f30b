package render

import (
	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/geom"
)

// drawBubbles draws bubble mode: system banners stacked from the top,
// character bubbles flowing down from the upper anchor and player bubbles
// flowing up from the lower anchor. It returns how many were drawn.
func (r *Renderer) drawBubbles(s Surface, st State) int {
	if st.Bubbles == nil {
		return 0
	}
	l := r.layout
	drawn := 0
	sysY := l.SystemTop
	charY := l.CharacterY
	playerY := l.PlayerY
	for _, b := range st.Bubbles.Active() {
		op := st.Bubbles.Opacity(b, st.Now)
		if op <= 0 {
			continue
		}
		switch b.Message.Speaker {
		case conversation.System:
			r.systemBubble(s, b.Message.Text, sysY)
			sysY += SystemBubbleStep
		case conversation.Character:
			n := r.floatingBubble(s, b, op, charY, true)
			charY += float64(n)*conversation.LineHeight + BubbleStep
		default:
			n := r.floatingBubble(s, b, op, playerY, false)
			playerY -= float64(n)*conversation.LineHeight + BubbleStep
		}
		drawn++
	}
	s.SetAlpha(1)
	return drawn
}

func (r *Renderer) systemBubble(s Surface, text string, y float64) {
	l, th := r.layout, r.theme
	s.SetAlpha(1)
	s.FillRoundRect(geom.R(20*l.Unit, y, l.Width-40*l.Unit, SystemBubbleH), 15*l.Unit, th.SystemBubble)
	s.FillText(text, l.Width/2, y+(SystemBubbleH-conversation.LineHeight)/2, th.Body, AlignCenter, th.SystemText)
}

// floatingBubble draws a full width band with centered text and the
// speaker's avatar above (character) or below (player). It returns the
// number of wrapped lines.
func (r *Renderer) floatingBubble(s Surface, b bubble.Bubble, opacity, y float64, character bool) int {
	l, th := r.layout, r.theme
	s.SetAlpha(opacity)

	cx := l.Width / 2
	size := AvatarSize * l.Unit
	if character {
		r.avatar(s, ImageCharacter, geom.R(cx-size/2, y-AvatarOffset, size, size), th.Gold)
	} else {
		r.avatar(s, ImageUser, geom.R(cx-size/2, y+AvatarOffset, size, size), th.PlayerStroke)
	}

	lines := conversation.WrapLines(b.Message.Text, l.BubbleWrap, r.Measurer(s))
	bandH := float64(len(lines))*conversation.LineHeight + BubbleBandPadding
	s.FillRect(geom.R(0, y, l.Width, bandH), th.BubbleBand)
	for i, line := range lines {
		s.FillText(line, cx, y+BubbleBandPadding/2+float64(i)*conversation.LineHeight, th.Body, AlignCenter, th.BubbleText)
	}
	return len(lines)
}

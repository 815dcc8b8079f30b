package render

import (
	"fmt"
	"time"

	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/geom"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/scroll"
)

// Mode selects how the conversation is displayed.
type Mode int

const (
	ModeBubble Mode = iota
	ModeHistory
)

func (m Mode) String() string {
	if m == ModeHistory {
		return "history"
	}
	return "bubble"
}

// ParseMode reads a mode name from configuration.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "bubble":
		return ModeBubble, nil
	case "history":
		return ModeHistory, nil
	}
	return 0, fmt.Errorf("unknown display mode %q", name)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeHistory {
		return ModeBubble
	}
	return ModeHistory
}

// Button and header labels.
const (
	LabelBack        = "返回"
	LabelSend        = "发送"
	LabelActivate    = "激活徒弟"
	LabelToBubble    = "气泡"
	LabelToHistory   = "历史"
	LabelInputHint   = "说点什么..."
	TitlePrefix      = "激活徒弟 - "
	LabelThinkSuffix = "正在思考..."
)

// State is everything a render pass reads.
type State struct {
	Mode         Mode
	Name         string
	Store        *conversation.Store
	Bubbles      *bubble.Manager
	Scroll       *scroll.Controller
	Input        string
	InputFocused bool
	ShowActivate bool
	Pending      bool
	Now          time.Time
}

// Frame describes one completed render pass.
type Frame struct {
	Regions []input.Region
	// Drawn counts the messages or bubbles that were drawn.
	Drawn int
}

// Renderer draws the activation screen for a fixed layout.
type Renderer struct {
	layout Layout
	theme  Theme
}

// NewRenderer returns a renderer using the default theme for l.
func NewRenderer(l Layout) *Renderer {
	return &Renderer{layout: l, theme: DefaultTheme(l.Unit)}
}

// Layout returns the layout the renderer draws with.
func (r *Renderer) Layout() Layout { return r.layout }

// Theme returns the renderer's palette and fonts.
func (r *Renderer) Theme() Theme { return r.theme }

// Measurer adapts s to the body font, the font every message is wrapped in.
func (r *Renderer) Measurer(s Surface) conversation.Measurer {
	font := r.theme.Body
	return conversation.MeasureFunc(func(text string) float64 {
		return s.MeasureText(text, font)
	})
}

// Render draws a full frame and returns its interactive regions.
func (r *Renderer) Render(s Surface, st State) Frame {
	var f Frame
	s.SetAlpha(1)
	r.drawBackground(s)
	r.drawHeader(s, st)
	switch st.Mode {
	case ModeHistory:
		f.Drawn = r.drawHistory(s, st)
	default:
		f.Drawn = r.drawBubbles(s, st)
	}
	r.drawInputRow(s, st)
	if st.ShowActivate {
		r.drawActivate(s)
	}

	l := r.layout
	f.Regions = []input.Region{
		{Box: l.Back, Action: input.ActionBack},
		{Box: l.Toggle, Action: input.ActionToggleMode},
		{Box: l.Send, Action: input.ActionSend},
		{Box: l.Input, Action: input.ActionInput},
	}
	if st.ShowActivate {
		f.Regions = append(f.Regions, input.Region{Box: l.Activate, Action: input.ActionActivate})
	}
	return f
}

func (r *Renderer) drawBackground(s Surface) {
	l, th := r.layout, r.theme
	full := geom.R(0, 0, l.Width, l.Height)
	if !s.DrawImage(ImageBackground, full) {
		s.FillRect(full, th.Backdrop)
	}
	s.FillRect(geom.R(0, 0, l.Width, l.Header.H), th.TopShade)
	s.FillRect(geom.R(0, l.Header.H, l.Width, l.Height-l.Header.H), th.ChatShade)
}

func (r *Renderer) drawHeader(s Surface, st State) {
	l, th := r.layout, r.theme
	s.FillRect(l.Header, th.HeaderShade)

	textY := l.Back.Center().Y - th.Body.Size/2
	s.FillText(LabelBack, l.Back.Center().X, textY, th.Body, AlignCenter, th.Gold)
	s.FillText(TitlePrefix+st.Name, l.Width/2, textY, th.TitleFont, AlignCenter, th.Title)

	s.FillRoundRect(l.Toggle, 10*l.Unit, th.ToggleFill)
	label := LabelToBubble
	if st.Mode == ModeBubble {
		label = LabelToHistory
	}
	s.FillText(label, l.Toggle.Center().X, textY, th.Small, AlignCenter, th.Gold)
}

// avatar draws img or, when the host does not have it, a placeholder box.
func (r *Renderer) avatar(s Surface, img Image, box geom.Rect, stroke Paint) {
	if !s.DrawImage(img, box) {
		s.FillRect(box, r.theme.Placeholder)
	}
	s.StrokeRect(box, 1, stroke)
}

func (r *Renderer) drawInputRow(s Surface, st State) {
	l, th := r.layout, r.theme
	s.FillRect(l.InputRow, th.InputShade)
	s.FillRoundRect(l.Input, 20*l.Unit, th.InputFill)
	s.FillRoundRect(l.Send, 20*l.Unit, th.Accent)

	textY := l.Input.Center().Y - th.Body.Size/2
	s.FillText(LabelSend, l.Send.Center().X, textY, th.Body, AlignCenter, th.ButtonText)

	x := l.Input.X + 10*l.Unit
	s.PushClip(l.Input)
	switch {
	case st.Input != "":
		s.FillText(st.Input, x, textY, th.Body, AlignLeft, th.InputText)
	case !st.InputFocused:
		s.FillText(LabelInputHint, x, textY, th.Body, AlignLeft, th.Hint)
	}
	s.PopClip()

	if st.Pending {
		s.FillText(st.Name+LabelThinkSuffix, l.Width/2, l.InputRow.Y-conversation.LineHeight, th.CaptionFont, AlignCenter, th.Caption)
	}
}

func (r *Renderer) drawActivate(s Surface) {
	l, th := r.layout, r.theme
	b := l.Activate
	s.FillRoundRect(b, 25*l.Unit, th.Accent)
	s.StrokeRect(geom.R(b.X+2, b.Y+2, b.W-4, b.H-4), 2, th.Gold)
	s.FillText(LabelActivate, b.Center().X, b.Center().Y-th.Button.Size/2, th.Button, AlignCenter, th.ButtonText)
}

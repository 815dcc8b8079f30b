package render_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/render"
	"github.com/abelbrown/disciple/internal/render/rendertest"
	"github.com/abelbrown/disciple/internal/scroll"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func setup() (*render.Renderer, *rendertest.Surface, render.Layout) {
	l := render.NewLayout(375, 667, render.LayoutOptions{Unit: 1})
	return render.NewRenderer(l), rendertest.New(), l
}

func opening() *conversation.Store {
	return conversation.NewStore(
		conversation.NewMessage(conversation.System, "你来到了五指山下", now),
		conversation.NewMessage(conversation.Character, "哼！又来了一个凡人？", now),
	)
}

func TestLayoutDerivedUnit(t *testing.T) {
	l := render.NewLayout(750, 1334, render.LayoutOptions{})
	if l.Unit != 2 {
		t.Fatalf("Unit = %v, want 2", l.Unit)
	}
	if got := l.Chat.H; got != 1334-88-120 {
		t.Errorf("chat height = %v, want %v", got, 1334-88-120)
	}
	if !near(l.CharacterY, 466.9) || !near(l.PlayerY, 867.1) {
		t.Errorf("anchors = %v, %v", l.CharacterY, l.PlayerY)
	}
	if !near(l.HistoryWrap, 450) || !near(l.BubbleWrap, 525) {
		t.Errorf("wrap widths = %v, %v", l.HistoryWrap, l.BubbleWrap)
	}
	for name, b := range map[string]struct{ X, Y, R, B float64 }{
		"back":   {l.Back.X, l.Back.Y, l.Back.Right(), l.Back.Bottom()},
		"toggle": {l.Toggle.X, l.Toggle.Y, l.Toggle.Right(), l.Toggle.Bottom()},
		"input":  {l.Input.X, l.Input.Y, l.Input.Right(), l.Input.Bottom()},
		"send":   {l.Send.X, l.Send.Y, l.Send.Right(), l.Send.Bottom()},
	} {
		if b.X < 0 || b.Y < 0 || b.R > l.Width || b.B > l.Height {
			t.Errorf("%s box %+v outside viewport", name, b)
		}
	}
}

func TestToggleLabel(t *testing.T) {
	tests := []struct {
		mode render.Mode
		want string
	}{
		{render.ModeHistory, render.LabelToBubble},
		{render.ModeBubble, render.LabelToHistory},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, s, _ := setup()
			r.Render(s, render.State{Mode: tt.mode, Name: "孙悟空", Store: opening(), Now: now})
			if _, ok := s.FindText(tt.want); !ok {
				t.Errorf("toggle label %q not drawn; texts: %v", tt.want, s.Texts())
			}
			if _, ok := s.FindText("激活徒弟 - 孙悟空"); !ok {
				t.Error("title not drawn")
			}
		})
	}
}

func TestRegions(t *testing.T) {
	r, s, l := setup()
	f := r.Render(s, render.State{Store: opening(), Now: now})
	if len(f.Regions) != 4 {
		t.Fatalf("regions = %d, want 4 without the activate button", len(f.Regions))
	}
	if _, ok := s.FindText(render.LabelActivate); ok {
		t.Error("activate button drawn while hidden")
	}

	s.Reset()
	f = r.Render(s, render.State{Store: opening(), ShowActivate: true, Now: now})
	if len(f.Regions) != 5 {
		t.Fatalf("regions = %d, want 5", len(f.Regions))
	}
	last := f.Regions[4]
	if last.Action != input.ActionActivate || last.Box != l.Activate {
		t.Errorf("activate region = %+v", last)
	}
}

func TestBubbleModeAnchors(t *testing.T) {
	r, s, l := setup()
	store := opening()
	m := bubble.New(0, bubble.SystemSupersede)
	m.EnterBubbleMode(store.Last(2), now)

	f := r.Render(s, render.State{Mode: render.ModeBubble, Store: store, Bubbles: m, Now: now})
	if f.Drawn != 2 {
		t.Fatalf("Drawn = %d, want 2", f.Drawn)
	}
	sys, ok := s.FindText("你来到了五指山下")
	if !ok || !near(sys.Y, l.SystemTop+(render.SystemBubbleH-conversation.LineHeight)/2) {
		t.Errorf("system banner = %+v, %v", sys, ok)
	}
	ch, ok := s.FindText("哼！又来了一个凡人？")
	if !ok {
		t.Fatal("character bubble not drawn")
	}
	if want := l.CharacterY + render.BubbleBandPadding/2; !near(ch.Y, want) {
		t.Errorf("character text y = %v, want %v", ch.Y, want)
	}
	if ch.Alpha != 1 || ch.Align != render.AlignCenter {
		t.Errorf("character text alpha=%v align=%v", ch.Alpha, ch.Align)
	}
}

func TestBubbleStacking(t *testing.T) {
	r, s, l := setup()
	m := bubble.New(0, bubble.SystemSupersede)
	m.EnterBubbleMode([]conversation.Message{
		conversation.NewMessage(conversation.Character, "甲", now),
		conversation.NewMessage(conversation.Character, "乙", now),
	}, now)
	r.Render(s, render.State{Mode: render.ModeBubble, Bubbles: m, Now: now})
	a, _ := s.FindText("甲")
	b, _ := s.FindText("乙")
	if got := b.Y - a.Y; !near(got, conversation.LineHeight+render.BubbleStep) {
		t.Errorf("character step = %v, want %v", got, conversation.LineHeight+render.BubbleStep)
	}

	s.Reset()
	m.EnterBubbleMode([]conversation.Message{
		conversation.NewMessage(conversation.Player, "丙", now),
		conversation.NewMessage(conversation.Player, "丁", now),
	}, now)
	r.Render(s, render.State{Mode: render.ModeBubble, Bubbles: m, Now: now})
	c, _ := s.FindText("丙")
	d, _ := s.FindText("丁")
	if !near(c.Y, l.PlayerY+render.BubbleBandPadding/2) {
		t.Errorf("first player bubble y = %v", c.Y)
	}
	if got := c.Y - d.Y; !near(got, conversation.LineHeight+render.BubbleStep) {
		t.Errorf("player bubbles should stack upward by %v, got %v", conversation.LineHeight+render.BubbleStep, got)
	}
}

func TestBubbleOpacity(t *testing.T) {
	r, s, _ := setup()
	m := bubble.New(0, bubble.SystemSupersede)
	m.Push(conversation.NewMessage(conversation.Player, "你好", now), now)

	r.Render(s, render.State{Mode: render.ModeBubble, Bubbles: m, Now: now.Add(2500 * time.Millisecond)})
	op, ok := s.FindText("你好")
	if !ok || !near(op.Alpha, 0.5) {
		t.Errorf("half-way bubble = %+v, %v; want alpha 0.5", op, ok)
	}

	s.Reset()
	f := r.Render(s, render.State{Mode: render.ModeBubble, Bubbles: m, Now: now.Add(5 * time.Second)})
	if _, ok := s.FindText("你好"); ok || f.Drawn != 0 {
		t.Error("bubble at zero opacity must not be drawn")
	}
}

func TestHistoryScrolledToBottom(t *testing.T) {
	r, s, l := setup()
	store := conversation.NewStore()
	for i := 0; i < 20; i++ {
		store.Append(conversation.NewMessage(conversation.Player, fmt.Sprintf("消息%d", i), now))
	}
	sc := scroll.New(false)
	sc.Recompute(store.Extent(l.HistoryWrap, r.Measurer(s)), l.Viewport())
	sc.ScrollToBottom()

	r.Render(s, render.State{Mode: render.ModeHistory, Store: store, Scroll: sc, Now: now})
	last, ok := s.FindText("消息19")
	if !ok {
		t.Fatal("newest message not drawn at the bottom")
	}
	if last.Clip != l.Chat {
		t.Errorf("history text clip = %+v, want %+v", last.Clip, l.Chat)
	}
	if _, ok := s.FindText("消息0"); ok {
		t.Error("oldest message should be scrolled out of view")
	}

	thumbs := 0
	for _, op := range s.Ops {
		if op.Kind == "fill" && op.Paint == r.Theme().ScrollThumb {
			thumbs++
			if op.Rect.Bottom() > l.Chat.Bottom()+1e-9 {
				t.Errorf("thumb %+v runs past the track", op.Rect)
			}
		}
	}
	if thumbs != 1 {
		t.Errorf("scrollbar thumbs = %d, want 1", thumbs)
	}
}

func TestHistoryNoScrollbarWhenFits(t *testing.T) {
	r, s, l := setup()
	store := opening()
	sc := scroll.New(false)
	sc.Recompute(store.Extent(l.HistoryWrap, r.Measurer(s)), l.Viewport())

	f := r.Render(s, render.State{Mode: render.ModeHistory, Store: store, Scroll: sc, Now: now})
	if f.Drawn != 2 {
		t.Errorf("Drawn = %d, want 2", f.Drawn)
	}
	for _, op := range s.Ops {
		if op.Paint == r.Theme().ScrollThumb {
			t.Fatal("scrollbar drawn for content that fits")
		}
	}
	sys, _ := s.FindText("你来到了五指山下")
	if !near(sys.Y, l.HistoryTop+(conversation.SystemHeight-conversation.LineHeight)/2) {
		t.Errorf("system caption y = %v", sys.Y)
	}
}

func TestImagePlaceholders(t *testing.T) {
	r, s, _ := setup()
	store := opening()
	r.Render(s, render.State{Mode: render.ModeHistory, Store: store, Scroll: scroll.New(false), Now: now})
	if s.Count("image") != 0 {
		t.Fatal("no images are loaded")
	}
	placeholders := 0
	for _, op := range s.Ops {
		if op.Kind == "fill" && op.Paint == r.Theme().Placeholder {
			placeholders++
		}
	}
	if placeholders != 1 {
		t.Errorf("placeholders = %d, want one for the character avatar", placeholders)
	}

	s.Reset()
	s.Images[render.ImageBackground] = true
	s.Images[render.ImageCharacter] = true
	r.Render(s, render.State{Mode: render.ModeHistory, Store: store, Scroll: scroll.New(false), Now: now})
	if s.Count("image") != 2 {
		t.Errorf("image draws = %d, want 2", s.Count("image"))
	}
}

func TestInputRow(t *testing.T) {
	r, s, _ := setup()
	r.Render(s, render.State{Store: opening(), Now: now})
	if _, ok := s.FindText(render.LabelInputHint); !ok {
		t.Error("hint missing for empty unfocused input")
	}

	s.Reset()
	r.Render(s, render.State{Store: opening(), InputFocused: true, Input: "你好", Pending: true, Name: "孙悟空", Now: now})
	if _, ok := s.FindText(render.LabelInputHint); ok {
		t.Error("hint drawn over typed text")
	}
	if _, ok := s.FindText("你好"); !ok {
		t.Error("typed text missing")
	}
	if _, ok := s.FindText("孙悟空" + render.LabelThinkSuffix); !ok {
		t.Error("pending indicator missing")
	}
}

func TestTitleAndCaptionStyles(t *testing.T) {
	r, s, l := setup()
	th := render.DefaultTheme(l.Unit)
	store := opening()
	r.Render(s, render.State{Store: store, Mode: render.ModeHistory, Name: "孙悟空", Pending: true, Now: now})

	tests := []struct {
		text  string
		font  render.Font
		paint render.Paint
	}{
		{render.TitlePrefix + "孙悟空", th.TitleFont, th.Title},
		{"孙悟空" + render.LabelThinkSuffix, th.CaptionFont, th.Caption},
		{"你来到了五指山下", th.CaptionFont, th.Caption},
	}
	for _, tt := range tests {
		op, ok := s.FindText(tt.text)
		if !ok {
			t.Errorf("%q not drawn; texts: %v", tt.text, s.Texts())
			continue
		}
		if op.Font != tt.font {
			t.Errorf("%q font = %+v, want %+v", tt.text, op.Font, tt.font)
		}
		if op.Paint != tt.paint {
			t.Errorf("%q paint = %+v, want %+v", tt.text, op.Paint, tt.paint)
		}
	}
	if !th.TitleFont.Bold || th.CaptionFont.Bold {
		t.Errorf("title bold = %v, caption bold = %v", th.TitleFont.Bold, th.CaptionFont.Bold)
	}
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]render.Mode{"": render.ModeBubble, "bubble": render.ModeBubble, "history": render.ModeHistory} {
		got, err := render.ParseMode(name)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := render.ParseMode("grid"); err == nil {
		t.Error("unknown mode should fail")
	}
	if render.ModeBubble.Toggle() != render.ModeHistory || render.ModeHistory.Toggle() != render.ModeBubble {
		t.Error("Toggle should flip modes")
	}
}

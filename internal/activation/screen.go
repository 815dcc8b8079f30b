// Package activation is the dialogue engine of the disciple activation
// screen. A Screen owns the conversation, the bubble set and the scroll
// state, reacts to input routed from the host, schedules the delayed
// replies, and re-renders through the host surface.
//
// A Screen is not safe for concurrent use: the host must deliver input
// events and timer callbacks on one goroutine.
package activation

import (
	"errors"
	"io"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/dialogue"
	"github.com/abelbrown/disciple/internal/geom"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/otel"
	"github.com/abelbrown/disciple/internal/render"
	"github.com/abelbrown/disciple/internal/scroll"
	"github.com/abelbrown/disciple/internal/timer"
)

const comp = "screen"

// Screen is one activation screen instance.
type Screen struct {
	deps Deps
	opts Options

	script   *dialogue.Script
	stage    dialogue.Stage
	matcher  *dialogue.Matcher
	store    *conversation.Store
	bubbles  *bubble.Manager
	scroll   *scroll.Controller
	renderer *render.Renderer
	router   *input.Router
	meas     conversation.Measurer

	mode         render.Mode
	input        string
	focused      bool
	showActivate bool
	pending      int

	timers  timer.Set
	subs    []input.Subscription
	limiter *rate.Limiter
	dirty   bool

	started bool
	closed  bool
	log     *log.Logger
	events  *otel.Logger
	frame   render.Frame
}

// New builds a screen showing the script's opening lines. Nothing is
// subscribed or scheduled until Start.
func New(deps Deps, opts Options) (*Screen, error) {
	if deps.Surface == nil || deps.Timers == nil || deps.Clock == nil {
		return nil, errors.New("activation: surface, timers and clock are required")
	}
	script := opts.Script
	if script == nil {
		script = dialogue.Default()
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(deps.Clock.Now().UnixNano()))
	}
	if deps.Log == nil {
		deps.Log = log.New(io.Discard)
	}
	if deps.Events == nil {
		deps.Events = otel.NewNullLogger()
	}
	if opts.MaxInput <= 0 {
		opts.MaxInput = 100
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 100 * time.Millisecond
	}

	s := &Screen{
		deps:    deps,
		opts:    opts,
		script:  script,
		store:   conversation.NewStore(),
		bubbles: bubble.New(opts.BubbleDuration, opts.SystemPolicy),
		scroll:  scroll.New(opts.SmoothScroll),
		router:  input.NewRouter(),
		mode:    opts.Mode,
		log:     deps.Log,
		events:  deps.Events,
	}
	s.matcher = dialogue.NewMatcher(script.Rules, &s.stage)
	if opts.DragFPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.DragFPS), 1)
	}

	now := s.now()
	for _, line := range script.Opening {
		sp, err := conversation.ParseSpeaker(line.Speaker)
		if err != nil {
			return nil, err
		}
		s.store.Append(conversation.NewMessage(sp, line.Text, now))
	}
	s.layout(opts.Width, opts.Height)
	if s.mode == render.ModeBubble {
		s.enterBubbleMode()
	} else {
		s.scroll.SetActive(true)
		s.scroll.ScrollToBottom()
	}
	return s, nil
}

func (s *Screen) now() time.Time { return s.deps.Clock.Now() }

func (s *Screen) layout(w, h float64) {
	s.opts.Width, s.opts.Height = w, h
	s.renderer = render.NewRenderer(render.NewLayout(w, h, s.opts.Layout))
	s.meas = s.renderer.Measurer(s.deps.Surface)
	s.recompute()
}

// recompute refreshes the scroll range after the store or layout changed.
func (s *Screen) recompute() {
	l := s.renderer.Layout()
	s.scroll.Recompute(s.store.Extent(l.HistoryWrap, s.meas), l.Viewport())
}

// Start subscribes to input, starts the frame timer and draws the first
// frame.
func (s *Screen) Start() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.started:
		return ErrAlreadyStarted
	}
	s.started = true

	if t := s.deps.Touch; t != nil {
		s.subs = append(s.subs,
			t.OnTouchStart(s.handleTouchStart),
			t.OnTouchMove(s.handleTouchMove),
		)
	}
	if k := s.deps.Keyboard; k != nil {
		k.HideKeyboard()
		s.subs = append(s.subs,
			k.OnKeyboardInput(s.handleKeyboardInput),
			k.OnKeyboardConfirm(s.handleKeyboardConfirm),
		)
	}
	s.timers.Add(s.deps.Timers.Every(s.opts.FrameInterval, s.onFrame))

	s.log.Info("screen started", "disciple", s.script.Disciple.Name, "mode", s.mode)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindScreenStart, Comp: comp,
		Mode: s.mode.String(), Msg: s.script.Disciple.Name})
	s.Render()
	return nil
}

// after schedules fn, skipping it if the screen has been closed by then.
func (s *Screen) after(d time.Duration, fn func()) {
	s.timers.Add(s.deps.Timers.AfterFunc(d, func() {
		if s.closed {
			return
		}
		fn()
	}))
}

func (s *Screen) onFrame() {
	if s.closed {
		return
	}
	now := s.now()
	changed := s.bubbles.Tick(now)
	animating := s.scroll.Animate()
	if s.dirty || changed || animating || s.fading() {
		s.Render()
	}
}

// fading reports whether a visible bubble is changing opacity.
func (s *Screen) fading() bool {
	if s.mode != render.ModeBubble {
		return false
	}
	for _, b := range s.bubbles.Active() {
		if !b.IsSystem() {
			return true
		}
	}
	return false
}

// Render draws a frame and refreshes the tap regions from it.
func (s *Screen) Render() render.Frame {
	if s.closed {
		return render.Frame{}
	}
	s.frame = s.renderer.Render(s.deps.Surface, render.State{
		Mode:         s.mode,
		Name:         s.script.Disciple.Name,
		Store:        s.store,
		Bubbles:      s.bubbles,
		Scroll:       s.scroll,
		Input:        s.input,
		InputFocused: s.focused,
		ShowActivate: s.showActivate,
		Pending:      s.pending > 0,
		Now:          s.now(),
	})
	s.router.SetRegions(s.frame.Regions)
	s.dirty = false
	return s.frame
}

// Close cancels every timer and input subscription. It is idempotent.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	stopped := s.timers.StopAll()
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	if k := s.deps.Keyboard; k != nil && s.started {
		k.HideKeyboard()
	}
	s.log.Info("screen closed", "messages", s.store.Len(), "cancelled", stopped)
	s.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindScreenClose, Comp: comp,
		Count: s.store.Len()})
}

// Resize lays the screen out for a new viewport.
func (s *Screen) Resize(w, h float64) {
	if s.closed {
		return
	}
	s.layout(w, h)
	s.Render()
}

func (s *Screen) handleTouchStart(points []geom.Point) {
	if s.closed {
		return
	}
	action, ok := s.router.TouchStart(points)
	if !ok {
		return
	}
	s.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindTap, Comp: comp, Action: action.String()})
	switch action {
	case input.ActionBack:
		s.Back()
	case input.ActionToggleMode:
		s.ToggleMode()
	case input.ActionSend:
		s.Send()
	case input.ActionInput:
		s.FocusInput()
	case input.ActionActivate:
		s.Activate()
	}
}

func (s *Screen) handleTouchMove(points []geom.Point) {
	if s.closed {
		return
	}
	dy, ok := s.router.TouchMove(points)
	if !ok || s.mode != render.ModeHistory {
		return
	}
	if !s.scroll.Drag(dy) {
		return
	}
	s.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDrag, Comp: comp,
		Extra: map[string]any{"dy": dy, "offset": s.scroll.Offset()}})
	s.dirty = true
	if s.limiter == nil || s.limiter.AllowN(s.now(), 1) {
		s.Render()
	}
}

func (s *Screen) handleKeyboardInput(value string) {
	if s.closed {
		return
	}
	s.SetInput(value)
}

func (s *Screen) handleKeyboardConfirm(value string) {
	if s.closed {
		return
	}
	s.input = s.clip(value)
	s.Send()
}

// ScrollBy moves the history view by dy, as a drag would.
func (s *Screen) ScrollBy(dy float64) {
	if s.closed || s.mode != render.ModeHistory {
		return
	}
	if s.scroll.Drag(dy) {
		s.Render()
	}
}

func (s *Screen) clip(v string) string {
	if utf8.RuneCountInString(v) <= s.opts.MaxInput {
		return v
	}
	return string([]rune(v)[:s.opts.MaxInput])
}

// Accessors used by hosts and tests.

func (s *Screen) Mode() render.Mode                { return s.mode }
func (s *Screen) Input() string                    { return s.input }
func (s *Screen) InputFocused() bool               { return s.focused }
func (s *Screen) ActivateVisible() bool            { return s.showActivate }
func (s *Screen) Pending() bool                    { return s.pending > 0 }
func (s *Screen) Closed() bool                     { return s.closed }
func (s *Screen) Stage() dialogue.Stage            { return s.stage }
func (s *Screen) Messages() []conversation.Message { return s.store.All() }
func (s *Screen) Bubbles() []bubble.Bubble         { return s.bubbles.Active() }
func (s *Screen) ScrollOffset() float64            { return s.scroll.Offset() }
func (s *Screen) MaxScroll() float64               { return s.scroll.MaxOffset() }
func (s *Screen) Layout() render.Layout            { return s.renderer.Layout() }
func (s *Screen) Frame() render.Frame              { return s.frame }
func (s *Screen) Disciple() dialogue.Disciple      { return s.script.Disciple }

// Scheduled returns the number of timer handles retained for teardown.
func (s *Screen) Scheduled() int { return s.timers.Len() }

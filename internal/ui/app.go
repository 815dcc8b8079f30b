package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/disciple/internal/activation"
	"github.com/abelbrown/disciple/internal/conversation"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/otel"
	"github.com/abelbrown/disciple/internal/render"
	"github.com/abelbrown/disciple/internal/timer"
)

// chromeRows is the number of terminal lines below the canvas.
const chromeRows = 1

// wheelStep is how far one mouse wheel notch scrolls the history, in lines.
const wheelStep = 3

// AppConfig holds the screen options and the observability sinks.
// Width and Height in Options are ignored; the terminal size is used.
type AppConfig struct {
	Options    activation.Options
	CellWidth  float64
	CellHeight float64
	Clock      timer.Clock
	Log        *log.Logger
	Events     *otel.Logger
	Ring       *otel.RingBuffer
}

// exitState is shared by every copy of the App so the navigator, which the
// screen calls during Update, can hand its result back.
type exitState struct {
	result *activation.Result
}

func (e *exitState) Navigate(r activation.Result) { e.result = &r }

// App is the root Bubble Tea model. It owns the host side of the screen:
// the canvas, the input hub and the timer bridge. The screen is built on
// the first WindowSizeMsg.
type App struct {
	cfg    AppConfig
	hub    *input.Hub
	sched  *Scheduler
	canvas *Canvas
	screen *activation.Screen
	exit   *exitState
	log    *log.Logger

	input    textinput.Model
	spinner  spinner.Model
	spinning bool

	err          error
	width        int
	height       int
	ready        bool
	debugVisible bool
}

// NewApp creates an App. Zero cell sizes use the defaults.
func NewApp(cfg AppConfig) App {
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = DefaultCellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = DefaultCellHeight
	}
	if cfg.Clock == nil {
		cfg.Clock = timer.System{}
	}
	if cfg.Log == nil {
		cfg.Log = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = InputPrompt.Render("› ")
	ti.Placeholder = render.LabelInputHint
	ti.Cursor.SetMode(cursor.CursorStatic)
	if cfg.Options.MaxInput > 0 {
		ti.CharLimit = cfg.Options.MaxInput
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return App{
		cfg:     cfg,
		hub:     input.NewHub(),
		sched:   &Scheduler{},
		exit:    &exitState{},
		log:     cfg.Log,
		input:   ti,
		spinner: sp,
	}
}

// Init has nothing to start until the terminal size is known.
func (a App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if a.screen != nil {
				a.screen.Close()
			}
			return a, tea.Quit
		}
		cmds = append(cmds, a.handleKeyMsg(msg))

	case tea.MouseMsg:
		a.handleMouse(msg)

	case timerFired:
		a.sched.fire(msg.t)

	case spinner.TickMsg:
		if a.Pending() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			a.spinning = false
		}
	}

	cmds = append(cmds, a.syncKeyboard())
	if a.Pending() && !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	if a.exit.result != nil {
		a.log.Info("screen exited", "to", a.exit.result.To, "activated", a.exit.result.Activated)
		cmds = append(cmds, tea.Quit)
	}
	cmds = append(cmds, a.sched.Cmd())
	return a, tea.Batch(cmds...)
}

// resize builds the screen on the first size message and relays later ones.
func (a *App) resize() {
	cols, rows := max(a.width, 1), max(a.height-chromeRows, 1)
	if a.screen != nil {
		a.canvas.Resize(cols, rows)
		a.screen.Resize(a.canvas.Size())
		return
	}
	if a.err != nil {
		return
	}

	a.canvas = NewCanvas(cols, rows)
	a.canvas.CellW, a.canvas.CellH = a.cfg.CellWidth, a.cfg.CellHeight
	opts := a.cfg.Options
	opts.Width, opts.Height = a.canvas.Size()

	screen, err := activation.New(activation.Deps{
		Surface:   a.canvas,
		Touch:     a.hub,
		Keyboard:  a.hub,
		Timers:    a.sched,
		Clock:     a.cfg.Clock,
		Navigator: a.exit,
		Log:       a.cfg.Log.WithPrefix("screen"),
		Events:    a.cfg.Events,
	}, opts)
	if err == nil {
		err = screen.Start()
	}
	if err != nil {
		a.err = err
		a.log.Error("screen failed", "err", err)
		if a.cfg.Events != nil {
			a.cfg.Events.Error(otel.KindError, "ui", err)
		}
		return
	}
	a.screen = screen
	a.log.Info("screen ready", "cols", cols, "rows", rows, "mode", screen.Mode())
}

// handleKeyMsg routes keys to the text input while it has focus and to the
// shortcuts otherwise.
func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if a.err != nil {
		return tea.Quit
	}
	if a.screen == nil || a.screen.Closed() {
		return nil
	}

	if a.input.Focused() {
		switch {
		case key.Matches(msg, inputKeys.Confirm):
			a.hub.DispatchKeyboardConfirm(a.input.Value())
			return nil
		case key.Matches(msg, inputKeys.Cancel):
			a.hub.HideKeyboard()
			return nil
		}
		before := a.input.Value()
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		if v := a.input.Value(); v != before {
			a.hub.DispatchKeyboardInput(v)
		}
		return cmd
	}

	line := float64(conversation.LineHeight)
	page := a.screen.Layout().Viewport() * 0.8
	switch {
	case key.Matches(msg, keys.Debug):
		a.debugVisible = !a.debugVisible
	case a.debugVisible:
		// Other keys are inert while the overlay covers the screen.
	case key.Matches(msg, keys.Back):
		a.screen.Back()
	case key.Matches(msg, keys.Toggle):
		a.screen.ToggleMode()
	case key.Matches(msg, keys.Type):
		a.screen.FocusInput()
	case key.Matches(msg, keys.Activate):
		a.screen.Activate()
	case key.Matches(msg, keys.Up):
		a.screen.ScrollBy(line)
	case key.Matches(msg, keys.Down):
		a.screen.ScrollBy(-line)
	case key.Matches(msg, keys.PageUp):
		a.screen.ScrollBy(page)
	case key.Matches(msg, keys.PageDown):
		a.screen.ScrollBy(-page)
	}
	return nil
}

// handleMouse turns terminal mouse events into touches at cell centers.
func (a *App) handleMouse(msg tea.MouseMsg) {
	if a.screen == nil || a.debugVisible || msg.Y >= a.canvas.Rows() {
		return
	}
	p := a.canvas.PointAt(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.screen.ScrollBy(wheelStep * conversation.LineHeight)
	case msg.Button == tea.MouseButtonWheelDown:
		a.screen.ScrollBy(-wheelStep * conversation.LineHeight)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		a.hub.DispatchTouchStart(p)
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		a.hub.DispatchTouchMove(p)
	}
}

// syncKeyboard mirrors the keyboard requested through the hub onto the
// text input.
func (a *App) syncKeyboard() tea.Cmd {
	opts, visible := a.hub.KeyboardVisible()
	switch {
	case visible && !a.input.Focused():
		if opts.MaxLength > 0 {
			a.input.CharLimit = opts.MaxLength
		}
		a.input.SetValue(opts.Value)
		a.input.CursorEnd()
		return a.input.Focus()
	case !visible && a.input.Focused():
		a.input.Blur()
		a.input.Reset()
	}
	return nil
}

// View renders the canvas above a one line status bar, or the debug
// overlay when it is open.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.err != nil {
		return ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()) + "\n" +
			HelpStyle.Render("press any key to exit")
	}
	if a.debugVisible {
		overlay := debugOverlay(a.cfg.Ring, a.width, a.height-chromeRows)
		if overlay == "" {
			overlay = HelpStyle.Render("no event buffer attached")
		}
		body := lipgloss.Place(a.width, a.height-chromeRows, lipgloss.Center, lipgloss.Center, overlay)
		return body + "\n" + debugStatusBar(a.width)
	}
	return a.canvas.String() + "\n" + a.statusBar()
}

// statusBar shows the text input while typing and key hints otherwise.
func (a App) statusBar() string {
	if a.input.Focused() {
		hint := StatusBarKey.Render("enter") + StatusBarText.Render(":send ") +
			StatusBarKey.Render("esc") + StatusBarText.Render(":close")
		room := a.width - lipgloss.Width(hint) - 2
		a.input.Width = max(room-lipgloss.Width(a.input.Prompt)-1, 1)
		return StatusBar.Width(a.width).Render(a.input.View() + " " + hint)
	}

	var b strings.Builder
	b.WriteString(StatusBarMode.Render(a.screen.Mode().String()))
	b.WriteString(" ")
	if a.Pending() {
		b.WriteString(a.spinner.View() + " ")
	}
	pairs := [][2]string{{"i", "type"}, {"tab", "mode"}, {"b", "back"}}
	if a.screen.Mode() == render.ModeHistory {
		pairs = append(pairs, [2]string{"↑↓", "scroll"})
	}
	if a.screen.ActivateVisible() {
		pairs = append(pairs, [2]string{"a", "activate"})
	}
	pairs = append(pairs, [2]string{"D", "debug"})
	for _, p := range pairs {
		b.WriteString(" " + StatusBarKey.Render(p[0]) + StatusBarText.Render(":"+p[1]))
	}
	return StatusBar.Width(a.width).Render(b.String())
}

// Pending reports whether a reply is being prepared.
func (a App) Pending() bool {
	return a.screen != nil && a.screen.Pending()
}

// Screen returns the hosted screen, nil before the first size message.
func (a App) Screen() *activation.Screen {
	return a.screen
}

// Result returns how the screen was left, if it was.
func (a App) Result() (activation.Result, bool) {
	if a.exit == nil || a.exit.result == nil {
		return activation.Result{}, false
	}
	return *a.exit.result, true
}

// Err returns the error that prevented the screen from starting.
func (a App) Err() error {
	return a.err
}

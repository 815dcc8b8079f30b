package activation

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/dialogue"
	"github.com/abelbrown/disciple/internal/input"
	"github.com/abelbrown/disciple/internal/otel"
	"github.com/abelbrown/disciple/internal/render"
	"github.com/abelbrown/disciple/internal/timer"
)

var (
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("activation: screen already started")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("activation: screen closed")
)

// DestinationMain is where Back navigates.
const DestinationMain = "main"

// Result is handed to the Navigator when the screen is left.
type Result struct {
	To        string
	Activated bool
	Messages  int
}

// Navigator builds the next screen. The activation screen is already
// closed when Navigate is called.
type Navigator interface {
	Navigate(r Result)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Result)

func (f NavigatorFunc) Navigate(r Result) { f(r) }

// Deps are the host capabilities the screen runs on. Surface, Timers and
// Clock are required; the rest may be nil.
type Deps struct {
	Surface   render.Surface
	Touch     input.TouchSource
	Keyboard  input.Keyboard
	Timers    timer.Service
	Clock     timer.Clock
	Navigator Navigator
	Rand      dialogue.Intn
	Log       *log.Logger
	Events    *otel.Logger
}

// Options tune the screen.
type Options struct {
	Script *dialogue.Script

	Width, Height float64
	Layout        render.LayoutOptions

	Mode         render.Mode
	SystemPolicy bubble.Policy

	BubbleDuration time.Duration
	ReplyDelay     time.Duration
	UnlockDelay    time.Duration
	ReturnDelay    time.Duration
	FrameInterval  time.Duration

	SmoothScroll bool
	// DragFPS caps synchronous redraws while dragging. Moves beyond the cap
	// are drawn on the next frame tick. Zero redraws on every move.
	DragFPS int
	// MaxInput caps the input text in runes.
	MaxInput int
}

// DefaultOptions returns the stock timings for a w by h viewport.
func DefaultOptions(w, h float64) Options {
	return Options{
		Width:          w,
		Height:         h,
		Mode:           render.ModeBubble,
		SystemPolicy:   bubble.SystemSupersede,
		BubbleDuration: bubble.DefaultDuration,
		ReplyDelay:     500 * time.Millisecond,
		UnlockDelay:    1000 * time.Millisecond,
		ReturnDelay:    2000 * time.Millisecond,
		FrameInterval:  100 * time.Millisecond,
		DragFPS:        30,
		MaxInput:       100,
	}
}

package render

import (
	"math"

	"github.com/abelbrown/disciple/internal/geom"
)

// ReferenceWidth is the design width the unit scale is derived from.
const ReferenceWidth = 375.0

// Fixed vertical metrics of bubble mode, in surface pixels.
const (
	SystemBubbleStep  = 40.0
	SystemBubbleH     = 30.0
	BubbleStep        = 90.0
	BubbleBandPadding = 20.0
	AvatarSize        = 40.0
	AvatarOffset      = 50.0
	CharacterAnchor   = 0.35
	PlayerAnchor      = 0.65
	HistoryWrapRatio  = 0.6
	BubbleWrapRatio   = 0.7
)

// LayoutOptions tune NewLayout. A zero Unit derives the scale from the
// viewport; SafeTop reserves space above the header for host chrome.
type LayoutOptions struct {
	Unit    float64
	SafeTop float64
}

// Layout holds every box of the screen for one viewport size.
type Layout struct {
	Width, Height float64
	Unit          float64
	SafeTop       float64

	Header   geom.Rect
	Chat     geom.Rect
	InputRow geom.Rect

	Back     geom.Rect
	Toggle   geom.Rect
	Input    geom.Rect
	Send     geom.Rect
	Activate geom.Rect

	// HistoryTop is where the first history message starts before the
	// scroll offset is applied. SystemTop anchors the bubble mode banners.
	HistoryTop float64
	SystemTop  float64

	CharacterY float64
	PlayerY    float64

	HistoryWrap float64
	BubbleWrap  float64

	Scrollbar geom.Rect
}

// NewLayout computes the layout for a width by height viewport.
func NewLayout(width, height float64, opts LayoutOptions) Layout {
	unit := opts.Unit
	if unit <= 0 {
		unit = math.Min(width, height) / ReferenceWidth
	}
	l := Layout{
		Width:   width,
		Height:  height,
		Unit:    unit,
		SafeTop: opts.SafeTop,
	}

	headerH := 44 * unit
	inputH := 60 * unit
	buttonH := 40 * unit

	l.Header = geom.R(0, 0, width, opts.SafeTop+headerH)
	buttonY := opts.SafeTop + (headerH-buttonH)/2
	l.Back = geom.R(15*unit, buttonY, 60*unit, buttonH)
	l.Toggle = geom.R(width-15*unit-60*unit, buttonY, 60*unit, buttonH)

	l.InputRow = geom.R(0, height-inputH, width, inputH)
	fieldY := l.InputRow.Y + (inputH-buttonH)/2
	l.Input = geom.R(20*unit, fieldY, width-100*unit, buttonH)
	l.Send = geom.R(width-70*unit, fieldY, 50*unit, buttonH)

	chatY := l.Header.Bottom()
	l.Chat = geom.R(0, chatY, width, math.Max(0, l.InputRow.Y-chatY))

	l.Activate = geom.R((width-150*unit)/2, l.InputRow.Y-60*unit, 150*unit, 50*unit)

	l.HistoryTop = chatY + 15*unit
	l.SystemTop = chatY + 15*unit
	l.CharacterY = height * CharacterAnchor
	l.PlayerY = height * PlayerAnchor
	l.HistoryWrap = width * HistoryWrapRatio
	l.BubbleWrap = width * BubbleWrapRatio

	l.Scrollbar = geom.R(width-9*unit, chatY, 6*unit, l.Chat.H)
	return l
}

// Viewport is the height of the scrollable history area.
func (l Layout) Viewport() float64 { return l.Chat.H }

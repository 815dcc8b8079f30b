package render

// Theme collects every paint and font the renderer uses.
type Theme struct {
	Backdrop     Paint
	HeaderShade  Paint
	TopShade     Paint
	ChatShade    Paint
	Gold         Paint
	Title        Paint
	ToggleFill   Paint
	Caption      Paint
	CharFill     Paint
	CharText     Paint
	PlayerFill   Paint
	PlayerText   Paint
	PlayerStroke Paint
	InputShade   Paint
	InputFill    Paint
	InputText    Paint
	Hint         Paint
	Accent       Paint
	ButtonText   Paint
	ScrollTrack  Paint
	ScrollThumb  Paint
	SystemBubble Paint
	SystemText   Paint
	BubbleBand   Paint
	BubbleText   Paint
	Placeholder  Paint

	Body        Font
	Small       Font
	CaptionFont Font
	TitleFont   Font
	Button      Font
}

// DefaultTheme returns the stock palette scaled by unit.
func DefaultTheme(unit float64) Theme {
	return Theme{
		Backdrop:     Opaque("#1a1a2e"),
		HeaderShade:  RGBA("#000000", 0.6),
		TopShade:     RGBA("#000000", 0.5),
		ChatShade:    RGBA("#000000", 0.3),
		Gold:         Opaque("#ffd700"),
		Title:        Opaque("#ffffff"),
		ToggleFill:   RGBA("#000000", 0.6),
		Caption:      RGBA("#ffffff", 0.7),
		CharFill:     RGBA("#ffffff", 0.9),
		CharText:     Opaque("#000000"),
		PlayerFill:   RGBA("#e94560", 0.9),
		PlayerText:   Opaque("#ffffff"),
		PlayerStroke: Opaque("#e94560"),
		InputShade:   RGBA("#000000", 0.6),
		InputFill:    RGBA("#ffffff", 0.9),
		InputText:    Opaque("#000000"),
		Hint:         Opaque("#888888"),
		Accent:       Opaque("#e94560"),
		ButtonText:   Opaque("#ffffff"),
		ScrollTrack:  RGBA("#ffffff", 0.1),
		ScrollThumb:  RGBA("#ffffff", 0.5),
		SystemBubble: RGBA("#ffd700", 0.8),
		SystemText:   Opaque("#000000"),
		BubbleBand:   RGBA("#000000", 0.6),
		BubbleText:   Opaque("#ffffff"),
		Placeholder:  Opaque("#4a4a6a"),

		Body:        Font{Size: 16 * unit},
		Small:       Font{Size: 12.8 * unit},
		CaptionFont: Font{Size: 14 * unit},
		TitleFont:   Font{Size: 17.6 * unit, Bold: true},
		Button:      Font{Size: 18 * unit, Bold: true},
	}
}

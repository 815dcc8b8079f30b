package ui

import "github.com/charmbracelet/lipgloss"

// Colors used by the terminal chrome around the canvas.
var (
	colorGold      = lipgloss.Color("#ffd700")
	colorAccent    = lipgloss.Color("#e94560")
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorBar       = lipgloss.Color("#16213e")
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorBar).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorGold).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBarMode style for the current display mode badge.
var StatusBarMode = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(colorGold).
	Padding(0, 1)

// SpinnerStyle colors the thinking indicator.
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(colorAccent)

// InputPrompt style for the prompt in front of the text input.
var InputPrompt = lipgloss.NewStyle().
	Foreground(colorAccent).
	Bold(true)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Foreground(colorGold).
	Bold(true)

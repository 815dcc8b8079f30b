package conversation

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Layout constants for one message in the history view, in surface pixels.
const (
	SystemHeight    = 40.0
	LineHeight      = 25.0
	BubblePadding   = 15.0
	VerticalPadding = 2 * BubblePadding
	MessageGap      = 20.0
)

// Measurer measures the rendered width of a string in the message font.
type Measurer interface {
	MeasureText(s string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(s string) float64

func (f MeasureFunc) MeasureText(s string) float64 { return f(s) }

// WrapLines breaks text into display lines no wider than maxWidth. Explicit
// newlines split paragraphs first. Inside a paragraph lines are built one
// character at a time: the source text is logographic so there are no word
// boundaries to respect. A character that would make the line meet or
// exceed maxWidth starts the next line instead. Every paragraph emits at
// least one line, possibly empty.
func WrapLines(text string, maxWidth float64, m Measurer) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		chars := graphemes(para)
		if len(chars) == 0 {
			lines = append(lines, "")
			continue
		}
		current := chars[0]
		for _, ch := range chars[1:] {
			if m.MeasureText(current+ch) < maxWidth {
				current += ch
				continue
			}
			lines = append(lines, current)
			current = ch
		}
		lines = append(lines, current)
	}
	return lines
}

// LineCount is len(WrapLines(...)).
func LineCount(text string, maxWidth float64, m Measurer) int {
	return len(WrapLines(text, maxWidth, m))
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// BubbleHeight is the height of a speech bubble holding lines of text.
func BubbleHeight(lines int) float64 {
	return float64(lines)*LineHeight + VerticalPadding
}

// MessageExtent is the vertical space one message occupies in the history
// view, including the gap below it.
func MessageExtent(msg Message, maxWidth float64, m Measurer) float64 {
	if msg.IsSystem() {
		return SystemHeight
	}
	return BubbleHeight(LineCount(msg.Text, maxWidth, m)) + MessageGap
}

// Extent sums MessageExtent over the whole store.
func (s *Store) Extent(maxWidth float64, m Measurer) float64 {
	total := 0.0
	for _, msg := range s.messages {
		total += MessageExtent(msg, maxWidth, m)
	}
	return total
}

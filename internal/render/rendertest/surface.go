// Package rendertest provides a recording render.Surface for tests.
package rendertest

import (
	"unicode/utf8"

	"github.com/abelbrown/disciple/internal/geom"
	"github.com/abelbrown/disciple/internal/render"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string
	Rect  geom.Rect
	Text  string
	X, Y  float64
	Align render.Align
	Font  render.Font
	Image render.Image
	Paint render.Paint
	Alpha float64
	Clip  geom.Rect
}

// Surface records every call. Text is measured as PerRune pixels per rune.
type Surface struct {
	PerRune float64
	// Images lists the images DrawImage succeeds for.
	Images map[render.Image]bool

	Ops   []Op
	alpha float64
	clips []geom.Rect
}

// New returns a recorder measuring 20px per rune with no images.
func New() *Surface {
	return &Surface{PerRune: 20, Images: map[render.Image]bool{}, alpha: 1}
}

// Reset drops recorded ops and state.
func (s *Surface) Reset() {
	s.Ops = s.Ops[:0]
	s.alpha = 1
	s.clips = s.clips[:0]
}

func (s *Surface) clip() geom.Rect {
	if len(s.clips) == 0 {
		return geom.Rect{}
	}
	return s.clips[len(s.clips)-1]
}

func (s *Surface) rec(op Op) {
	op.Alpha = s.alpha
	op.Clip = s.clip()
	s.Ops = append(s.Ops, op)
}

func (s *Surface) FillRect(r geom.Rect, p render.Paint) {
	s.rec(Op{Kind: "fill", Rect: r, Paint: p})
}

func (s *Surface) FillRoundRect(r geom.Rect, _ float64, p render.Paint) {
	s.rec(Op{Kind: "round", Rect: r, Paint: p})
}

func (s *Surface) StrokeRect(r geom.Rect, _ float64, p render.Paint) {
	s.rec(Op{Kind: "stroke", Rect: r, Paint: p})
}

func (s *Surface) DrawImage(img render.Image, r geom.Rect) bool {
	ok := s.Images[img]
	if ok {
		s.rec(Op{Kind: "image", Rect: r, Image: img})
	}
	return ok
}

func (s *Surface) MeasureText(text string, _ render.Font) float64 {
	return float64(utf8.RuneCountInString(text)) * s.PerRune
}

func (s *Surface) FillText(text string, x, y float64, f render.Font, align render.Align, p render.Paint) {
	s.rec(Op{Kind: "text", Text: text, X: x, Y: y, Align: align, Font: f, Paint: p})
}

func (s *Surface) PushClip(r geom.Rect) {
	if c := s.clip(); !c.Empty() {
		r = r.Intersect(c)
	}
	s.clips = append(s.clips, r)
}

func (s *Surface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Surface) SetAlpha(a float64) { s.alpha = a }

// Texts returns the text of every FillText call in order.
func (s *Surface) Texts() []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// FindText returns the first FillText op drawing text.
func (s *Surface) FindText(text string) (Op, bool) {
	for _, op := range s.Ops {
		if op.Kind == "text" && op.Text == text {
			return op, true
		}
	}
	return Op{}, false
}

// Count returns the number of ops of the given kind.
func (s *Surface) Count(kind string) int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

var _ render.Surface = (*Surface)(nil)

// Package render projects the activation screen state onto an immediate
// mode drawing surface. It never mutates the state it is given.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abelbrown/disciple/internal/geom"
)

// Paint is a color with straight alpha in [0, 1].
type Paint struct {
	Color colorful.Color
	A     float64
}

// RGBA builds a Paint from a #rrggbb hex string. It panics on malformed
// input, which only happens with a bad literal in this package.
func RGBA(hex string, a float64) Paint {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return Paint{Color: c, A: a}
}

// Opaque builds a fully opaque Paint.
func Opaque(hex string) Paint { return RGBA(hex, 1) }

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font describes the text style. Size is in surface pixels.
type Font struct {
	Size float64
	Bold bool
}

// Image names a picture the host may or may not have loaded.
type Image string

const (
	ImageBackground Image = "background"
	ImageCharacter  Image = "character"
	ImageUser       Image = "user"
)

// Surface is the drawing capability supplied by the host. All calls are
// synchronous. FillText positions text by the top of its line box.
type Surface interface {
	FillRect(r geom.Rect, p Paint)
	FillRoundRect(r geom.Rect, radius float64, p Paint)
	StrokeRect(r geom.Rect, width float64, p Paint)
	// DrawImage draws img scaled into r and reports false when the host has
	// no such image. The renderer then draws a placeholder.
	DrawImage(img Image, r geom.Rect) bool
	MeasureText(text string, f Font) float64
	FillText(text string, x, y float64, f Font, align Align, p Paint)
	// PushClip restricts drawing to the intersection of r and the current
	// clip until the matching PopClip.
	PushClip(r geom.Rect)
	PopClip()
	// SetAlpha sets a global opacity multiplier for subsequent calls.
	SetAlpha(a float64)
}

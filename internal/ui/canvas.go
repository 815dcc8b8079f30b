package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/disciple/internal/geom"
	"github.com/abelbrown/disciple/internal/render"
)

// Default cell size in virtual pixels. A text line of the screen is one
// row and a wide glyph measures 20px.
const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 25
)

// glyphCover is the effective fill alpha above which a fill hides the
// glyph underneath instead of tinting it.
const glyphCover = 0.5

var canvasBlack = colorful.Color{}

type cell struct {
	ch   rune
	wide bool // first half of a double width glyph
	cont bool // second half, printed by its left neighbour
	fg   colorful.Color
	bg   colorful.Color
	bold bool
}

// Canvas is a render.Surface backed by a grid of terminal cells. One cell
// covers CellW by CellH virtual pixels; a shape covers the cells whose
// centers it contains.
type Canvas struct {
	CellW, CellH float64
	// Images maps picture names to flat fills. Pictures missing here make
	// DrawImage report false so the renderer draws its placeholder.
	Images map[render.Image]render.Paint

	cols, rows int
	cells      []cell
	clips      []geom.Rect
	alpha      float64
}

// NewCanvas returns a cols by rows canvas with the default cell size.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		CellW:  DefaultCellWidth,
		CellH:  DefaultCellHeight,
		Images: map[render.Image]render.Paint{},
		alpha:  1,
	}
	c.Resize(cols, rows)
	return c
}

// Resize clears the canvas to cols by rows cells.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

// Clear blanks every cell and resets the clip stack and alpha.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', fg: canvasBlack, bg: canvasBlack}
	}
	c.clips = c.clips[:0]
	c.alpha = 1
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Size returns the canvas size in virtual pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols) * c.CellW, float64(c.rows) * c.CellH
}

// PointAt returns the virtual pixel at the center of cell (col, row).
func (c *Canvas) PointAt(col, row int) geom.Point {
	return geom.Point{
		X: (float64(col) + 0.5) * c.CellW,
		Y: (float64(row) + 0.5) * c.CellH,
	}
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *Canvas) clipped(p geom.Point) bool {
	for _, r := range c.clips {
		if !r.Contains(p) {
			return true
		}
	}
	return false
}

// span returns the cells covered by r.
func (c *Canvas) span(r geom.Rect) (c0, r0, c1, r1 int) {
	c0 = int(math.Ceil(r.X/c.CellW - 0.5))
	r0 = int(math.Ceil(r.Y/c.CellH - 0.5))
	c1 = int(math.Floor(r.Right()/c.CellW - 0.5))
	r1 = int(math.Floor(r.Bottom()/c.CellH - 0.5))
	return max(c0, 0), max(r0, 0), min(c1, c.cols-1), min(r1, c.rows-1)
}

func (c *Canvas) each(r geom.Rect, fn func(col, row int, cl *cell)) {
	c0, r0, c1, r1 := c.span(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if c.clipped(c.PointAt(col, row)) {
				continue
			}
			fn(col, row, c.at(col, row))
		}
	}
}

func (c *Canvas) FillRect(r geom.Rect, p render.Paint) {
	a := p.A * c.alpha
	if a <= 0 {
		return
	}
	c.each(r, func(col, row int, cl *cell) {
		cl.bg = cl.bg.BlendRgb(p.Color, a).Clamped()
		if a >= glyphCover {
			c.blank(col, row)
		} else {
			cl.fg = cl.fg.BlendRgb(p.Color, a).Clamped()
		}
	})
}

// FillRoundRect fills r; corners are below cell resolution.
func (c *Canvas) FillRoundRect(r geom.Rect, _ float64, p render.Paint) {
	c.FillRect(r, p)
}

// StrokeRect outlines the cells on the border of r with box drawing runes.
func (c *Canvas) StrokeRect(r geom.Rect, _ float64, p render.Paint) {
	a := p.A * c.alpha
	if a <= 0 {
		return
	}
	c0, r0, c1, r1 := c.span(r)
	c.each(r, func(col, row int, cl *cell) {
		top, bottom := row == r0, row == r1
		left, right := col == c0, col == c1
		var ch rune
		switch {
		case top && left:
			ch = '╭'
		case top && right:
			ch = '╮'
		case bottom && left:
			ch = '╰'
		case bottom && right:
			ch = '╯'
		case top || bottom:
			ch = '─'
		case left || right:
			ch = '│'
		default:
			return
		}
		c.blank(col, row)
		cl.ch = ch
		cl.fg = cl.bg.BlendRgb(p.Color, a).Clamped()
	})
}

func (c *Canvas) DrawImage(img render.Image, r geom.Rect) bool {
	p, ok := c.Images[img]
	if !ok {
		return false
	}
	c.FillRect(r, p)
	return true
}

// MeasureText returns the display width of text in pixels. Terminal cells
// have one size, so the font is ignored.
func (c *Canvas) MeasureText(text string, _ render.Font) float64 {
	return float64(runewidth.StringWidth(text)) * c.CellW
}

func (c *Canvas) FillText(text string, x, y float64, f render.Font, align render.Align, p render.Paint) {
	a := p.A * c.alpha
	if a <= 0 || text == "" {
		return
	}
	switch align {
	case render.AlignCenter:
		x -= c.MeasureText(text, f) / 2
	case render.AlignRight:
		x -= c.MeasureText(text, f)
	}
	row := int(math.Floor((y + c.CellH/2) / c.CellH))
	col := int(math.Round(x / c.CellW))
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if c.glyphFits(col, row, w) {
			c.put(col, row, ch, w, f.Bold, p.Color, a)
		}
		col += w
	}
}

func (c *Canvas) glyphFits(col, row, w int) bool {
	for i := 0; i < w; i++ {
		if c.at(col+i, row) == nil || c.clipped(c.PointAt(col+i, row)) {
			return false
		}
	}
	return true
}

func (c *Canvas) put(col, row int, ch rune, w int, bold bool, color colorful.Color, a float64) {
	for i := 0; i < w; i++ {
		c.blank(col+i, row)
	}
	first := c.at(col, row)
	first.ch, first.wide, first.bold = ch, w > 1, bold
	first.fg = first.bg.BlendRgb(color, a).Clamped()
	for i := 1; i < w; i++ {
		cl := c.at(col+i, row)
		cl.ch, cl.cont, cl.bold = 0, true, bold
		cl.fg = first.fg
	}
}

// blank clears the glyph at (col, row). Clearing either half of a wide
// glyph clears the other half too.
func (c *Canvas) blank(col, row int) {
	cl := c.at(col, row)
	if cl.cont {
		if left := c.at(col-1, row); left != nil && left.wide {
			left.ch, left.wide = ' ', false
		}
	}
	if cl.wide {
		if right := c.at(col+1, row); right != nil && right.cont {
			right.ch, right.cont = ' ', false
		}
	}
	cl.ch, cl.wide, cl.cont, cl.bold = ' ', false, false, false
}

func (c *Canvas) PushClip(r geom.Rect) { c.clips = append(c.clips, r) }

func (c *Canvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
	}
}

func (c *Canvas) SetAlpha(a float64) { c.alpha = math.Max(0, math.Min(1, a)) }

// Text returns the glyphs of row without styling, trailing blanks kept.
func (c *Canvas) Text(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for col := 0; col < c.cols; col++ {
		cl := c.at(col, row)
		if cl.cont {
			continue
		}
		b.WriteRune(cl.ch)
	}
	return b.String()
}

// String renders the canvas with lipgloss, one style per run of cells
// sharing colors and weight.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var line, run strings.Builder
		var cur *cell
		flush := func() {
			if cur == nil || run.Len() == 0 {
				return
			}
			line.WriteString(cellStyle(cur).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			cl := c.at(col, row)
			if cl.cont {
				continue
			}
			if cur == nil || !sameStyle(cur, cl) {
				flush()
				cur = cl
			}
			run.WriteRune(cl.ch)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b *cell) bool {
	return a.bold == b.bold && a.fg.Hex() == b.fg.Hex() && a.bg.Hex() == b.bg.Hex()
}

func cellStyle(cl *cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(cl.fg.Hex())).
		Background(lipgloss.Color(cl.bg.Hex())).
		Bold(cl.bold)
}

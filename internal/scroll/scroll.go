// Package scroll tracks the vertical offset of the history view.
//
// Offsets are zero or negative: 0 shows the top of the content and
// -MaxOffset shows the bottom. Every mutation clamps, so Offset is always
// inside [-MaxOffset, 0].
package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring parameters for the smoothed display offset.
const (
	springFPS       = 60
	springFrequency = 8.0
	springDamping   = 1.0

	// settle is the distance below which the display offset snaps to the
	// logical offset.
	settle = 0.5
)

// Controller holds the logical scroll offset and an optional smoothed
// display offset that follows it.
type Controller struct {
	extent    float64
	viewport  float64
	maxOffset float64
	offset    float64
	active    bool

	smooth   bool
	spring   harmonica.Spring
	display  float64
	velocity float64
}

// New returns an active controller. With smooth set, Display trails
// Offset and Animate must be called once per frame.
func New(smooth bool) *Controller {
	return &Controller{
		active: true,
		smooth: smooth,
		spring: harmonica.NewSpring(harmonica.FPS(springFPS), springFrequency, springDamping),
	}
}

// Recompute updates the content extent and viewport height and re-clamps
// the current offset.
func (c *Controller) Recompute(extent, viewport float64) {
	c.extent = extent
	c.viewport = viewport
	c.maxOffset = math.Max(0, extent-viewport)
	c.offset = c.Clamp(c.offset)
	c.display = c.Clamp(c.display)
}

// Clamp limits offset to the valid range.
func (c *Controller) Clamp(offset float64) float64 {
	return math.Min(0, math.Max(-c.maxOffset, offset))
}

// ScrollToBottom moves to the most negative valid offset.
func (c *Controller) ScrollToBottom() {
	c.offset = -c.maxOffset
	if !c.smooth {
		c.display = c.offset
	}
}

// Drag adds dy to the offset and clamps. It returns false, changing
// nothing, while the controller is inactive.
func (c *Controller) Drag(dy float64) bool {
	if !c.active {
		return false
	}
	c.offset = c.Clamp(c.offset + dy)
	if !c.smooth {
		c.display = c.offset
	}
	return true
}

// SetActive enables or disables drag handling. Bubble mode makes the
// controller inert.
func (c *Controller) SetActive(active bool) { c.active = active }

// Active reports whether drags are applied.
func (c *Controller) Active() bool { return c.active }

func (c *Controller) Offset() float64    { return c.offset }
func (c *Controller) MaxOffset() float64 { return c.maxOffset }
func (c *Controller) Extent() float64    { return c.extent }
func (c *Controller) Viewport() float64  { return c.viewport }

// Overflows reports whether the content is taller than the viewport.
func (c *Controller) Overflows() bool { return c.maxOffset > 0 }

// Animate advances the display offset one frame toward the logical offset
// and reports whether it is still moving.
func (c *Controller) Animate() bool {
	if !c.smooth {
		c.display = c.offset
		return false
	}
	c.display, c.velocity = c.spring.Update(c.display, c.velocity, c.offset)
	if math.Abs(c.display-c.offset) < settle && math.Abs(c.velocity) < settle {
		c.display = c.offset
		c.velocity = 0
		return false
	}
	return true
}

// Display is the offset to draw with. It is always inside the valid
// range, even while a spring overshoots.
func (c *Controller) Display() float64 {
	return c.Clamp(c.display)
}

// Thumb computes a proportional scrollbar thumb for a track of the given
// length: size is track*viewport/extent and pos follows the display
// offset. ok is false when the content fits.
func (c *Controller) Thumb(track float64) (pos, size float64, ok bool) {
	if !c.Overflows() || c.extent <= 0 || track <= 0 {
		return 0, 0, false
	}
	size = track * c.viewport / c.extent
	progress := -c.Display() / c.maxOffset
	pos = progress * (track - size)
	return pos, size, true
}

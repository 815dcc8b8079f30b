package input

import (
	"slices"

	"github.com/abelbrown/disciple/internal/geom"
)

// Router turns raw touches into at most one action per tap and vertical
// drag deltas. Only the first point of a touch is considered.
type Router struct {
	regions []Region
	last    geom.Point
	tracing bool
}

// NewRouter returns a router with no regions.
func NewRouter() *Router { return &Router{} }

// SetRegions replaces the interactive regions, usually with the regions of
// the latest render pass. They are kept in priority order.
func (r *Router) SetRegions(regions []Region) {
	r.regions = slices.Clone(regions)
	slices.SortStableFunc(r.regions, func(a, b Region) int {
		return int(a.Action) - int(b.Action)
	})
}

// Regions returns the regions in priority order.
func (r *Router) Regions() []Region { return slices.Clone(r.regions) }

// TouchStart records the first point as the drag origin and hit-tests it.
// The first region in priority order containing the point wins.
func (r *Router) TouchStart(points []geom.Point) (Action, bool) {
	if len(points) == 0 {
		return 0, false
	}
	p := points[0]
	r.last = p
	r.tracing = true
	for _, reg := range r.regions {
		if reg.Box.Contains(p) {
			return reg.Action, true
		}
	}
	return 0, false
}

// TouchMove returns the vertical distance moved since the previous event.
// Multi-touch moves and moves without a preceding start are ignored.
func (r *Router) TouchMove(points []geom.Point) (float64, bool) {
	if len(points) != 1 || !r.tracing {
		return 0, false
	}
	dy := points[0].Y - r.last.Y
	r.last = points[0]
	return dy, true
}

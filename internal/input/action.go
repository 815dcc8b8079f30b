// Package input routes touches and keyboard events from the host to the
// activation screen.
package input

import "github.com/abelbrown/disciple/internal/geom"

// Action is what a tap on an interactive region asks for.
type Action int

// Actions in hit-test priority order.
const (
	ActionBack Action = iota
	ActionToggleMode
	ActionSend
	ActionInput
	ActionActivate
)

func (a Action) String() string {
	switch a {
	case ActionBack:
		return "back"
	case ActionToggleMode:
		return "toggle"
	case ActionSend:
		return "send"
	case ActionInput:
		return "input"
	case ActionActivate:
		return "activate"
	}
	return "unknown"
}

// Region is an interactive box produced by a render pass.
type Region struct {
	Box    geom.Rect
	Action Action
}

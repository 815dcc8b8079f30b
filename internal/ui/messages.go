// Package ui hosts the activation screen in a Bubble Tea terminal program.
package ui

// timerFired is delivered when a scheduled callback is due.
type timerFired struct {
	t *teaTimer
}

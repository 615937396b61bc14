// Package components defines ECS components for the simulation.
package components

// State tracks whether a pool slot currently holds a live ball.
// Inactive slots keep their entity so the pool can reuse them.
type State struct {
	Active bool
}

package systems

import "github.com/pthm-cable/fallingball/components"

// SpawnParams holds the parameters a pool slot is initialized with.
type SpawnParams struct {
	Radius   float32
	Position components.Position
	Velocity components.Velocity
	Color    components.Tint
}

// Particle is a snapshot of one pool slot, handed to renderers and tests.
type Particle struct {
	Index    int
	Radius   float32
	Position components.Position
	Velocity components.Velocity
	Color    components.Tint
	Active   bool
}

// Advance integrates one tick: gravity accelerates the vertical velocity,
// then the position moves by the updated velocity.
// Callers must only advance active balls.
func Advance(pos *components.Position, vel *components.Velocity, gravity float32) {
	vel.Y += gravity
	pos.X += vel.X
	pos.Y += vel.Y
}

// Reset overwrites every field of a slot and marks it active.
func Reset(
	pos *components.Position,
	vel *components.Velocity,
	body *components.Body,
	tint *components.Tint,
	state *components.State,
	params SpawnParams,
) {
	*pos = params.Position
	*vel = params.Velocity
	body.Radius = params.Radius
	*tint = params.Color
	state.Active = true
}

// Deactivate marks a slot dormant. Calling it again is a no-op.
func Deactivate(state *components.State) {
	state.Active = false
}

package components

// Position represents a ball's world position.
type Position struct {
	X, Y float32
}

// Velocity represents a ball's velocity in world units per tick.
type Velocity struct {
	X, Y float32
}

package systems

import (
	"math"

	"github.com/pthm-cable/fallingball/components"
)

// Bounds is the visible rectangle anchored at the origin.
// Only the left, right and bottom edges cull; balls may rise above y=0
// indefinitely and fall back in.
type Bounds struct {
	Width, Height float32
}

// Outside reports whether a position has left the bounds.
// The comparisons are strict, so a ball sitting exactly on x=0 stays alive.
func (b Bounds) Outside(p components.Position) bool {
	return p.X < 0 || p.X > b.Width || p.Y > b.Height
}

// Valid reports whether both dimensions are finite and positive.
func (b Bounds) Valid() bool {
	return validDim(b.Width) && validDim(b.Height)
}

func validDim(v float32) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

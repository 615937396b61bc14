package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fallingball/components"
	"github.com/pthm-cable/fallingball/systems"
)

// ActiveSet is anything that can enumerate active balls.
type ActiveSet interface {
	ForEachActive(visit func(systems.Particle))
}

// BallRenderer draws active balls as filled circles.
type BallRenderer struct {
	background rl.Color
}

// NewBallRenderer creates a renderer that clears to background.
func NewBallRenderer(background rl.Color) *BallRenderer {
	return &BallRenderer{background: background}
}

// Clear fills the frame with the background color.
func (r *BallRenderer) Clear() {
	rl.ClearBackground(r.background)
}

// Draw renders every active ball in slot order.
func (r *BallRenderer) Draw(balls ActiveSet) {
	balls.ForEachActive(func(b systems.Particle) {
		rl.DrawCircleV(rl.Vector2{X: b.Position.X, Y: b.Position.Y}, b.Radius, TintToColor(b.Color))
	})
}

// TintToColor converts a normalized tint to an 8-bit raylib color.
func TintToColor(t components.Tint) rl.Color {
	return rl.Color{
		R: channel(t.R),
		G: channel(t.G),
		B: channel(t.B),
		A: channel(t.A),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fallingball/telemetry"
)

// handleInput processes keyboard, pointer and window events.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.clear()
	}

	// Left release spawns a burst, unless it lands on a HUD button
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		x, y := rl.GetMouseX(), rl.GetMouseY()
		if !g.hud.OverButtons(int32(g.screenWidth), x, y) {
			g.perfCollector.Enter(telemetry.PhaseSpawn)
			g.spawnBurst(float32(x), float32(y))
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.sim.OnBoundsChanged(w, h) {
		slog.Debug("bounds changed", "width", w, "height", h)
	}
}

func (g *Game) clear() {
	g.sim.Clear()
	slog.Info("cleared balls", "pool_size", g.sim.Pool().Len(), "tick", g.tick)
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fallingball/ui"
)

const controlsLegend = "[Click] spawn  [Space] pause  [,/.] steps  [C] clear"

// Draw renders one frame: background, active balls, then the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.balls.Clear()

	g.balls.Draw(g.sim)

	stats := g.sim.Stats()
	pool := g.sim.Pool()
	g.hud.Draw(ui.HUDData{
		Title:    g.cfg.Screen.Title,
		PoolSize: pool.Len(),
		Active:   pool.ActiveCount(),
		Culled:   stats.Culled,
		Reused:   stats.Reused,
		Tick:     g.tick,
		Steps:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
	})

	actions := g.hud.DrawButtons(int32(g.screenWidth), g.paused)
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Clear {
		g.clear()
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

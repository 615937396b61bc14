// Package ui draws the heads-up display over the simulation.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	PoolSize int
	Active   int
	Culled   int64
	Reused   int64
	Tick     int64
	Steps    int
	FPS      int32
	Paused   bool
}

// HUDActions reports which HUD buttons were pressed this frame.
type HUDActions struct {
	TogglePause bool
	Clear       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	textColor rl.Color
	dimColor  rl.Color
}

// NewHUD creates a new HUD renderer. Text is dark because the
// simulation clears to white.
func NewHUD() *HUD {
	return &HUD{
		textColor: rl.DarkGray,
		dimColor:  rl.Gray,
	}
}

// Draw renders the HUD text.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, h.textColor)

	rl.DrawText(
		fmt.Sprintf("Balls: %d active / %d slots | Reused: %d | Culled: %d",
			data.Active, data.PoolSize, data.Reused, data.Culled),
		10, 35, 16, h.dimColor,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps: %dx | FPS: %d", data.Tick, data.Steps, data.FPS),
		10, 55, 16, h.dimColor,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Orange)
	}
}

// buttonRects returns the pause and clear button bounds for a screen width.
func buttonRects(screenWidth int32) (pause, clearBtn rl.Rectangle) {
	x := float32(screenWidth) - 230
	pause = rl.Rectangle{X: x, Y: 10, Width: 100, Height: 28}
	clearBtn = rl.Rectangle{X: x + 110, Y: 10, Width: 100, Height: 28}
	return pause, clearBtn
}

// OverButtons reports whether a screen point lies on a HUD button, so
// pointer releases there are not treated as spawn requests.
func (h *HUD) OverButtons(screenWidth, x, y int32) bool {
	if h == nil {
		return false
	}
	p := rl.Vector2{X: float32(x), Y: float32(y)}
	pause, clearBtn := buttonRects(screenWidth)
	return rl.CheckCollisionPointRec(p, pause) || rl.CheckCollisionPointRec(p, clearBtn)
}

// DrawButtons renders the pause and clear buttons in the top-right corner.
func (h *HUD) DrawButtons(screenWidth int32, paused bool) HUDActions {
	pause, clearBtn := buttonRects(screenWidth)
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}

	return HUDActions{
		TogglePause: gui.Button(pause, pauseLabel),
		Clear:       gui.Button(clearBtn, "Clear"),
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.dimColor)
}

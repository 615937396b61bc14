// Burst tuner - interactive spawn parameter tuning with sliders.
//
// Usage: go run ./cmd/tuner [-config path] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fallingball/config"
	"github.com/pthm-cable/fallingball/renderer"
	"github.com/pthm-cable/fallingball/sim"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	previewWidth = 720
	panelWidth   = windowWidth - previewWidth - 30
)

// slider describes one tunable float parameter.
type slider struct {
	label    string
	min, max float32
	value    *float64
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml to start from (empty = defaults)")
	outPath := flag.String("out", "tuned.yaml", "Where Save writes the tuned config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Burst Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	balls := renderer.NewBallRenderer(rl.White)
	ctrl, err := rebuild(cfg)
	if err != nil {
		slog.Error("invalid starting config", "error", err)
		os.Exit(1)
	}

	burstSize := float64(cfg.Spawn.BurstSize)
	sliders := []slider{
		{"Gravity", 0, 1, &cfg.Physics.Gravity},
		{"Burst size", 1, 50, &burstSize},
		{"Radius min", 1, 30, &cfg.Spawn.Radius.Min},
		{"Radius max", 2, 60, &cfg.Spawn.Radius.Max},
		{"Velocity X min", -20, 0, &cfg.Spawn.VelocityX.Min},
		{"Velocity X max", 0, 20, &cfg.Spawn.VelocityX.Max},
		{"Velocity Y min", -20, 0, &cfg.Spawn.VelocityY.Min},
		{"Velocity Y max", 0, 20, &cfg.Spawn.VelocityY.Max},
	}

	status := ""
	autoBurst := false

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && mouse.X < previewWidth {
			ctrl.SpawnBurst(mouse.X, mouse.Y)
		}
		if autoBurst && ctrl.Stats().Ticks%20 == 0 {
			ctrl.SpawnBurst(previewWidth/2, windowHeight/4)
		}
		ctrl.Tick()

		rl.BeginDrawing()
		balls.Clear()
		balls.Draw(ctrl)
		rl.DrawRectangleLines(0, 0, previewWidth, windowHeight, rl.DarkGray)

		pool := ctrl.Pool()
		rl.DrawText(fmt.Sprintf("Active: %d  Slots: %d", pool.ActiveCount(), pool.Len()), 10, 10, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Spawn Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := float32(*s.value)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				*s.value = float64(next)
				changed = true
			}
			panelY += 32
		}

		if changed {
			cfg.Spawn.BurstSize = int(burstSize + 0.5)
			if next, err := rebuild(cfg); err != nil {
				status = err.Error()
			} else {
				ctrl = next
				status = ""
			}
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(autoBurst, "Stop", "Auto Burst")) {
			autoBurst = !autoBurst
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Clear") {
			ctrl.Clear()
		}
		panelY += 40

		// cfg keeps the user's screen section; only the preview is resized.
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Save "+*outPath) {
			if err := cfg.WriteYAML(*outPath); err != nil {
				status = err.Error()
			} else {
				status = "saved " + *outPath
			}
		}
		panelY += 40

		if status != "" {
			rl.DrawText(status, int32(panelX), int32(panelY), 12, rl.Maroon)
		}

		rl.EndDrawing()
	}
}

// rebuild creates a controller for a preview-sized copy of cfg.
func rebuild(cfg *config.Config) (*sim.Controller, error) {
	preview, err := cfg.WithScreen(previewWidth, windowHeight)
	if err != nil {
		return nil, err
	}
	return sim.NewFromConfig(preview, int64(rl.GetRandomValue(1, 1<<30))), nil
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

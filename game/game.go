package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fallingball/config"
	"github.com/pthm-cable/fallingball/renderer"
	"github.com/pthm-cable/fallingball/sim"
	"github.com/pthm-cable/fallingball/telemetry"
	"github.com/pthm-cable/fallingball/ui"
)

// Options configures a Game beyond what config.Cfg() provides.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game couples the simulation controller with the raylib host:
// input routing, drawing and telemetry.
type Game struct {
	cfg *config.Config
	sim *sim.Controller

	// Rendering (nil in headless mode)
	balls *renderer.BallRenderer
	hud   *ui.HUD

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	tick           int64
	paused         bool
	stepsPerUpdate int

	// Window dimensions as last reported by the host
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim.NewFromConfig(cfg, opts.Seed),
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		stepsPerUpdate: steps,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	if !opts.Headless {
		g.balls = renderer.NewBallRenderer(rl.White)
		g.hud = ui.NewHUD()
	}

	return g, nil
}

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.perfCollector.BeginUpdate()

	g.perfCollector.Enter(telemetry.PhaseInput)
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}

	g.perfCollector.EndUpdate()
}

// UpdateHeadless runs stepsPerUpdate ticks with scripted bursts in place of
// pointer input. It makes no raylib calls.
func (g *Game) UpdateHeadless() {
	g.perfCollector.BeginUpdate()

	for i := 0; i < g.stepsPerUpdate; i++ {
		if g.scriptedBurstDue() {
			g.perfCollector.Enter(telemetry.PhaseSpawn)
			x, y := g.scriptedBurstPoint()
			g.spawnBurst(x, y)
		}
		g.step()
	}

	g.perfCollector.EndUpdate()
}

// step runs a single tick of the simulation.
func (g *Game) step() {
	g.perfCollector.Enter(telemetry.PhasePhysics)
	culled := g.sim.Tick()
	g.perfCollector.Step()
	g.collector.RecordCull(culled)
	g.tick++

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	g.flushTelemetry()
}

// spawnBurst forwards a burst to the controller and records it.
func (g *Game) spawnBurst(x, y float32) {
	res := g.sim.SpawnBurst(x, y)
	g.collector.RecordBurst(res.Reused, res.Grown)
}

func (g *Game) scriptedBurstDue() bool {
	interval := int64(g.cfg.Headless.BurstInterval)
	return interval > 0 && g.tick%interval == 0
}

// scriptedBurstPoint places headless bursts at a fixed fraction of the bounds.
func (g *Game) scriptedBurstPoint() (float32, float32) {
	b := g.sim.Bounds()
	return b.Width * float32(g.cfg.Headless.BurstX), b.Height * float32(g.cfg.Headless.BurstY)
}

// Unload releases all resources.
func (g *Game) Unload() error {
	return g.outputManager.Close()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Controller exposes the simulation controller.
func (g *Game) Controller() *sim.Controller {
	return g.sim
}

package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/fallingball/systems"
	"github.com/pthm-cable/fallingball/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePool())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// samplePool collects speed and radius values of active balls.
func (g *Game) samplePool() telemetry.PoolSample {
	pool := g.sim.Pool()
	sample := telemetry.PoolSample{
		PoolSize: pool.Len(),
		Active:   pool.ActiveCount(),
		Speeds:   make([]float64, 0, pool.ActiveCount()),
		Radii:    make([]float64, 0, pool.ActiveCount()),
	}

	pool.ForEachActive(func(b systems.Particle) {
		vx, vy := float64(b.Velocity.X), float64(b.Velocity.Y)
		sample.Speeds = append(sample.Speeds, math.Hypot(vx, vy))
		sample.Radii = append(sample.Radii, float64(b.Radius))
	})

	return sample
}

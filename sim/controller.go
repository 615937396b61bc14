// Package sim couples the random parameter source with the ball pool and
// exposes the operations a frame loop drives.
package sim

import (
	"log/slog"

	"github.com/pthm-cable/fallingball/components"
	"github.com/pthm-cable/fallingball/config"
	"github.com/pthm-cable/fallingball/systems"
)

// Options configures a Controller.
type Options struct {
	Gravity   float32
	BurstSize int
	Bounds    systems.Bounds
	Capacity  int
}

// OptionsFromConfig maps the loaded configuration onto controller options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Gravity:   cfg.Derived.Gravity32,
		BurstSize: cfg.Spawn.BurstSize,
		Bounds:    systems.Bounds{Width: cfg.Derived.ScreenW32, Height: cfg.Derived.ScreenH32},
		Capacity:  cfg.Pool.InitialCapacity,
	}
}

// SpawnRangesFromConfig maps the spawn section onto RNG ranges.
func SpawnRangesFromConfig(cfg *config.Config) systems.SpawnRanges {
	toRange := func(r config.RangeConfig) systems.Range {
		return systems.Range{Min: float32(r.Min), Max: float32(r.Max)}
	}
	return systems.SpawnRanges{
		VelocityX: toRange(cfg.Spawn.VelocityX),
		VelocityY: toRange(cfg.Spawn.VelocityY),
		Radius:    toRange(cfg.Spawn.Radius),
	}
}

// Stats holds cumulative counters since construction.
type Stats struct {
	Ticks   int64
	Spawned int64
	Reused  int64
	Grown   int64
	Culled  int64
}

// BurstResult describes how a burst was satisfied.
type BurstResult struct {
	Reused int
	Grown  int
}

// Controller is the single owner of the ball pool.
type Controller struct {
	src       systems.Source
	pool      *systems.Pool
	bounds    systems.Bounds
	gravity   float32
	burstSize int
	stats     Stats
}

// New creates a controller drawing spawn parameters from src.
func New(opts Options, src systems.Source) *Controller {
	burst := opts.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &Controller{
		src:       src,
		pool:      systems.NewPool(opts.Capacity),
		bounds:    opts.Bounds,
		gravity:   opts.Gravity,
		burstSize: burst,
	}
}

// NewFromConfig creates a controller with a seeded RandSource.
func NewFromConfig(cfg *config.Config, seed int64) *Controller {
	src := systems.NewRandSource(seed, SpawnRangesFromConfig(cfg))
	return New(OptionsFromConfig(cfg), src)
}

// Tick advances the simulation one step using the cached bounds.
// Returns the number of balls culled this tick.
func (c *Controller) Tick() int {
	culled := c.pool.Tick(c.gravity, c.bounds)
	c.stats.Ticks++
	c.stats.Culled += int64(culled)
	return culled
}

// SpawnBurst places BurstSize balls at (x, y), each with independently drawn
// color, velocity and radius.
func (c *Controller) SpawnBurst(x, y float32) BurstResult {
	var res BurstResult
	for i := 0; i < c.burstSize; i++ {
		params := systems.SpawnParams{
			Color:    c.src.NextColor(),
			Velocity: c.src.NextVelocity(),
			Radius:   c.src.NextRadius(),
			Position: components.Position{X: x, Y: y},
		}

		idx, reused := c.pool.SpawnOrReuse(params)
		if reused {
			res.Reused++
			slog.Debug("reused slot", "index", idx)
		} else {
			res.Grown++
			slog.Debug("allocated slot", "index", idx, "pool_size", c.pool.Len())
		}
	}

	c.stats.Spawned += int64(c.burstSize)
	c.stats.Reused += int64(res.Reused)
	c.stats.Grown += int64(res.Grown)
	return res
}

// OnBoundsChanged replaces the cached bounds used by later ticks.
// Non-positive or non-finite sizes are ignored and the previous bounds kept.
// Balls already deactivated stay dormant.
func (c *Controller) OnBoundsChanged(width, height float32) bool {
	b := systems.Bounds{Width: width, Height: height}
	if !b.Valid() {
		slog.Warn("ignoring invalid bounds", "width", width, "height", height)
		return false
	}
	c.bounds = b
	return true
}

// Clear deactivates every ball without shrinking the pool.
func (c *Controller) Clear() {
	c.pool.Clear()
}

// ForEachActive visits active balls in slot order for rendering.
func (c *Controller) ForEachActive(visit func(systems.Particle)) {
	c.pool.ForEachActive(visit)
}

// Pool exposes the underlying pool for read-only queries.
func (c *Controller) Pool() *systems.Pool { return c.pool }

// Bounds returns the cached bounds.
func (c *Controller) Bounds() systems.Bounds { return c.bounds }

// BurstSize returns the number of balls per burst.
func (c *Controller) BurstSize() int { return c.burstSize }

// Stats returns cumulative counters.
func (c *Controller) Stats() Stats { return c.stats }

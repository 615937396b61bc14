package telemetry

// Collector accumulates pool events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Event counters for current window
	bursts  int
	spawned int
	reused  int
	grown   int
	culled  int
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordBurst records one spawn burst and how its slots were obtained.
func (c *Collector) RecordBurst(reused, grown int) {
	c.bursts++
	c.spawned += reused + grown
	c.reused += reused
	c.grown += grown
}

// RecordCull records balls deactivated by a tick.
func (c *Collector) RecordCull(n int) {
	c.culled += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// PoolSample is the pool state observed at flush time.
type PoolSample struct {
	PoolSize int
	Active   int
	Speeds   []float64 // one entry per active ball
	Radii    []float64 // one entry per active ball
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, sample PoolSample) WindowStats {
	var utilization, reuseRate float64
	if sample.PoolSize > 0 {
		utilization = float64(sample.Active) / float64(sample.PoolSize)
	}
	if c.spawned > 0 {
		reuseRate = float64(c.reused) / float64(c.spawned)
	}

	speedMean, speedStd := ComputeSpread(sample.Speeds)
	radiusMean, radiusStd := ComputeSpread(sample.Radii)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Bursts:  c.bursts,
		Spawned: c.spawned,
		Reused:  c.reused,
		Grown:   c.grown,
		Culled:  c.culled,

		PoolSize:    sample.PoolSize,
		Active:      sample.Active,
		Utilization: utilization,
		ReuseRate:   reuseRate,

		SpeedMean:  speedMean,
		SpeedStd:   speedStd,
		SpeedP90:   EmpiricalQuantile(sample.Speeds, 0.9),
		RadiusMean: radiusMean,
		RadiusStd:  radiusStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.bursts = 0
	c.spawned = 0
	c.reused = 0
	c.grown = 0
	c.culled = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

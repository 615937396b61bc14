package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated pool statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Events during window
	Bursts  int `csv:"bursts"`
	Spawned int `csv:"spawned"`
	Reused  int `csv:"reused"`
	Grown   int `csv:"grown"`
	Culled  int `csv:"culled"`

	// Pool state at window end
	PoolSize    int     `csv:"pool_size"`
	Active      int     `csv:"active"`
	Utilization float64 `csv:"utilization"` // active / pool size
	ReuseRate   float64 `csv:"reuse_rate"`  // reused / spawned

	// Distribution of active balls at window end
	SpeedMean  float64 `csv:"speed_mean"`
	SpeedStd   float64 `csv:"speed_std"`
	SpeedP90   float64 `csv:"speed_p90"`
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
}

// ComputeSpread returns the population mean and standard deviation.
// Returns zeros for an empty slice.
func ComputeSpread(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// EmpiricalQuantile returns the smallest sample with at least fraction p of
// the samples at or below it. Returns 0 for an empty slice.
func EmpiricalQuantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("bursts", s.Bursts),
		slog.Int("spawned", s.Spawned),
		slog.Int("reused", s.Reused),
		slog.Int("grown", s.Grown),
		slog.Int("culled", s.Culled),
		slog.Int("pool_size", s.PoolSize),
		slog.Int("active", s.Active),
		slog.Float64("utilization", s.Utilization),
		slog.Float64("reuse_rate", s.ReuseRate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
	)
}

// LogStats logs the window stats at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", slog.Any("stats", s))
}

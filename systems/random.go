package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/fallingball/components"
)

// Source supplies the randomized parameters of a spawned ball.
type Source interface {
	NextColor() components.Tint
	NextVelocity() components.Velocity
	NextRadius() float32
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min, Max float32
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v < r.Max
}

// SpawnRanges bounds the values drawn by RandSource.
type SpawnRanges struct {
	VelocityX Range
	VelocityY Range
	Radius    Range
}

// DefaultSpawnRanges returns the ranges of the classic falling-ball demo.
// The vertical range leans upward so gravity dominates the arc.
func DefaultSpawnRanges() SpawnRanges {
	return SpawnRanges{
		VelocityX: Range{Min: -5, Max: 5},
		VelocityY: Range{Min: -5, Max: 2},
		Radius:    Range{Min: 5, Max: 15},
	}
}

// RandSource draws uniform values from a math/rand generator.
type RandSource struct {
	rng    *rand.Rand
	ranges SpawnRanges
}

// NewRandSource creates a source seeded with seed.
func NewRandSource(seed int64, ranges SpawnRanges) *RandSource {
	return &RandSource{
		rng:    rand.New(rand.NewSource(seed)),
		ranges: ranges,
	}
}

// NextColor returns an opaque color with independent uniform channels.
func (s *RandSource) NextColor() components.Tint {
	return components.Opaque(s.rng.Float32(), s.rng.Float32(), s.rng.Float32())
}

// NextVelocity returns a velocity drawn from the configured ranges.
func (s *RandSource) NextVelocity() components.Velocity {
	return components.Velocity{
		X: s.uniform(s.ranges.VelocityX),
		Y: s.uniform(s.ranges.VelocityY),
	}
}

// NextRadius returns a radius drawn from the configured range.
func (s *RandSource) NextRadius() float32 {
	return s.uniform(s.ranges.Radius)
}

// uniform samples [r.Min, r.Max). Rounding to float32 can land on Max,
// so the result is nudged back inside the interval.
func (s *RandSource) uniform(r Range) float32 {
	v := float32(float64(r.Min) + s.rng.Float64()*float64(r.Max-r.Min))
	if v >= r.Max && r.Max > r.Min {
		v = math.Nextafter32(r.Max, r.Min)
	}
	return v
}

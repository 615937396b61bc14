package telemetry

import (
	"math"
	"testing"
	"time"
)

// manualClock advances only when told to.
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time { return c.t }

func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTimedCollector(window int) (*PerfCollector, *manualClock) {
	clock := &manualClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

// runUpdate records one update: 1ms of input, then steps ticks of 2ms
// physics and 0.5ms telemetry each.
func runUpdate(pc *PerfCollector, clock *manualClock, steps int) {
	pc.BeginUpdate()
	pc.Enter(PhaseInput)
	clock.advance(time.Millisecond)
	for i := 0; i < steps; i++ {
		pc.Enter(PhasePhysics)
		clock.advance(2 * time.Millisecond)
		pc.Step()
		pc.Enter(PhaseTelemetry)
		clock.advance(500 * time.Microsecond)
	}
	pc.EndUpdate()
}

func TestPerfCollector_PerStepRate(t *testing.T) {
	tests := []struct {
		name        string
		steps       int
		wantAvgStep time.Duration
		wantRate    float64
	}{
		// (1 + 2.5*steps) ms per update
		{"one step", 1, 3500 * time.Microsecond, 1 / 0.0035},
		{"four steps", 4, 2750 * time.Microsecond, 4 / 0.011},
		{"ten steps", 10, 2600 * time.Microsecond, 10 / 0.026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, clock := newTimedCollector(8)
			for i := 0; i < 3; i++ {
				runUpdate(pc, clock, tt.steps)
			}

			s := pc.Stats()
			if s.Updates != 3 || s.Steps != 3*tt.steps {
				t.Fatalf("updates/steps = %d/%d, want 3/%d", s.Updates, s.Steps, 3*tt.steps)
			}
			if s.AvgStep != tt.wantAvgStep {
				t.Errorf("avg step = %v, want %v", s.AvgStep, tt.wantAvgStep)
			}
			if math.Abs(s.StepsPerS-tt.wantRate) > 1e-6 {
				t.Errorf("steps/s = %v, want %v", s.StepsPerS, tt.wantRate)
			}
		})
	}
}

func TestPerfCollector_PhaseShares(t *testing.T) {
	pc, clock := newTimedCollector(4)
	runUpdate(pc, clock, 4) // 1ms input, 8ms physics, 2ms telemetry

	s := pc.Stats()
	want := map[Phase]float64{
		PhaseInput:     100.0 / 11,
		PhaseSpawn:     0,
		PhasePhysics:   800.0 / 11,
		PhaseTelemetry: 200.0 / 11,
	}
	for phase, pct := range want {
		if math.Abs(s.PhasePct[phase]-pct) > 1e-9 {
			t.Errorf("%s pct = %v, want %v", phase, s.PhasePct[phase], pct)
		}
	}
	if s.MaxUpdate != 11*time.Millisecond {
		t.Errorf("max update = %v, want 11ms", s.MaxUpdate)
	}
}

func TestPerfCollector_PausedUpdatesLowerRate(t *testing.T) {
	pc, clock := newTimedCollector(4)
	runUpdate(pc, clock, 2) // 6ms, 2 steps
	runUpdate(pc, clock, 0) // 1ms, paused

	s := pc.Stats()
	if s.Steps != 2 || s.Elapsed != 7*time.Millisecond {
		t.Fatalf("steps/elapsed = %d/%v", s.Steps, s.Elapsed)
	}
	if s.AvgStep != 3500*time.Microsecond {
		t.Errorf("avg step = %v, want 3.5ms", s.AvgStep)
	}
}

func TestPerfCollector_RingKeepsNewest(t *testing.T) {
	pc, clock := newTimedCollector(2)
	runUpdate(pc, clock, 1)
	runUpdate(pc, clock, 2)
	runUpdate(pc, clock, 3)

	s := pc.Stats()
	if s.Updates != 2 || s.Steps != 5 {
		t.Errorf("updates/steps = %d/%d, want 2/5", s.Updates, s.Steps)
	}
}

func TestPerfCollector_IgnoresCallsOutsideUpdate(t *testing.T) {
	pc, clock := newTimedCollector(4)
	pc.Enter(PhasePhysics)
	pc.Step()
	clock.advance(time.Second)
	pc.EndUpdate()

	if s := pc.Stats(); s != (PerfStats{}) {
		t.Errorf("stats = %+v, want zero", s)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.Updates != 0 || s.AvgStep != 0 || s.StepsPerS != 0 {
		t.Errorf("stats = %+v, want zero", s)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	pc, clock := newTimedCollector(4)
	runUpdate(pc, clock, 4)

	rec := pc.Stats().ToCSV(600)
	if rec.WindowEnd != 600 || rec.Updates != 1 || rec.Steps != 4 {
		t.Errorf("row = %+v", rec)
	}
	if rec.AvgStepUS != 2750 || rec.MaxUpdateUS != 11000 {
		t.Errorf("avg step us = %d, max update us = %d", rec.AvgStepUS, rec.MaxUpdateUS)
	}
	if rec.SpawnPct != 0 || rec.PhysicsPct <= rec.TelemetryPct {
		t.Errorf("phase pct = spawn %v physics %v telemetry %v", rec.SpawnPct, rec.PhysicsPct, rec.TelemetryPct)
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseTelemetry.String() != "telemetry" || Phase(99).String() != "unknown" {
		t.Errorf("names = %q, %q", PhaseTelemetry, Phase(99))
	}
}

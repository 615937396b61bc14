package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies the part of an update that time is attributed to.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseSpawn
	PhasePhysics
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"input", "spawn", "physics", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// updateSample is one host update, which may run several simulation steps.
type updateSample struct {
	elapsed time.Duration
	steps   int
	phases  [numPhases]time.Duration
}

// PerfCollector times host updates over a ring of the most recent ones.
// Steps are counted separately so per-tick figures stay correct when an
// update runs more than one tick.
type PerfCollector struct {
	ring   []updateSample
	next   int
	filled int

	cur        updateSample
	start      time.Time
	phase      Phase
	phaseStart time.Time
	inPhase    bool
	open       bool

	now func() time.Time
}

// NewPerfCollector keeps the last window updates. window is floored at 1.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 1
	}
	return &PerfCollector{
		ring: make([]updateSample, window),
		now:  time.Now,
	}
}

// BeginUpdate starts timing an update. An update left open is discarded.
func (p *PerfCollector) BeginUpdate() {
	p.cur = updateSample{}
	p.start = p.now()
	p.inPhase = false
	p.open = true
}

// Enter attributes time from now on to phase, closing the previous one.
func (p *PerfCollector) Enter(phase Phase) {
	if !p.open {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.phase = phase
	p.phaseStart = t
	p.inPhase = true
}

// Step counts one simulation tick in the current update.
func (p *PerfCollector) Step() {
	if p.open {
		p.cur.steps++
	}
}

// EndUpdate closes the current update and stores it in the ring.
func (p *PerfCollector) EndUpdate() {
	if !p.open {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.cur.elapsed = t.Sub(p.start)
	p.open = false

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// PerfStats summarizes the updates currently in the ring.
type PerfStats struct {
	Updates   int
	Steps     int
	Elapsed   time.Duration
	AvgStep   time.Duration // Elapsed / Steps; zero when no step ran
	MaxUpdate time.Duration
	StepsPerS float64
	PhasePct  [numPhases]float64 // share of Elapsed, 0-100
}

// Stats aggregates the ring. Updates that ran no step still count toward
// elapsed time, so a paused host reports a lower step rate.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	var phases [numPhases]time.Duration
	for _, u := range p.ring[:p.filled] {
		s.Updates++
		s.Steps += u.steps
		s.Elapsed += u.elapsed
		if u.elapsed > s.MaxUpdate {
			s.MaxUpdate = u.elapsed
		}
		for i, d := range u.phases {
			phases[i] += d
		}
	}

	if s.Steps > 0 {
		s.AvgStep = s.Elapsed / time.Duration(s.Steps)
	}
	if s.Elapsed > 0 {
		s.StepsPerS = float64(s.Steps) / s.Elapsed.Seconds()
		for i, d := range phases {
			s.PhasePct[i] = float64(d) / float64(s.Elapsed) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("updates", s.Updates),
		slog.Int("steps", s.Steps),
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("max_update_us", s.MaxUpdate.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerS),
	}
	for i, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(i).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", slog.Any("perf", s))
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	Updates      int     `csv:"updates"`
	Steps        int     `csv:"steps"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MaxUpdateUS  int64   `csv:"max_update_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	InputPct     float64 `csv:"input_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a row tagged with the tick it was taken at.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Updates:      s.Updates,
		Steps:        s.Steps,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MaxUpdateUS:  s.MaxUpdate.Microseconds(),
		StepsPerSec:  s.StepsPerS,
		InputPct:     s.PhasePct[PhaseInput],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}

package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"
)

func TestComputeSpread(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty slice", []float64{}, 0, 0},
		{"single element", []float64{5}, 5, 0},
		{"constant", []float64{3, 3, 3}, 3, 0},
		{"textbook", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeSpread(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestEmpiricalQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty slice", nil, 0.9, 0},
		{"single element", []float64{7}, 0.9, 7},
		{"unsorted input", []float64{5, 1, 4, 2, 3}, 0.9, 5},
		{"median", []float64{5, 1, 4, 2, 3}, 0.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmpiricalQuantile(tt.values, tt.p); got != tt.want {
				t.Errorf("EmpiricalQuantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestEmpiricalQuantile_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	EmpiricalQuantile(values, 0.5)

	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

// captureLog routes the default logger to a JSON buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(saved) })
	return &buf
}

func TestLogStats_UsesLogValue(t *testing.T) {
	buf := captureLog(t)

	WindowStats{WindowStartTick: 600, WindowEndTick: 1200, Reused: 7, Utilization: 0.5}.LogStats()
	PerfStats{Updates: 3, Steps: 12}.LogStats()

	dec := json.NewDecoder(buf)
	var stats struct {
		Msg   string         `json:"msg"`
		Stats map[string]any `json:"stats"`
	}
	if err := dec.Decode(&stats); err != nil {
		t.Fatalf("decoding stats line: %v", err)
	}
	if stats.Msg != "stats" || stats.Stats["window_start"] != 600.0 ||
		stats.Stats["reused"] != 7.0 || stats.Stats["utilization"] != 0.5 {
		t.Errorf("stats line = %+v", stats)
	}

	var perf struct {
		Perf map[string]any `json:"perf"`
	}
	if err := dec.Decode(&perf); err != nil {
		t.Fatalf("decoding perf line: %v", err)
	}
	if perf.Perf["steps"] != 12.0 {
		t.Errorf("perf line = %+v", perf)
	}
	if _, ok := perf.Perf["physics_pct"]; !ok {
		t.Errorf("perf line missing physics_pct: %+v", perf)
	}
}

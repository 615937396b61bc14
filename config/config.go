// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Pool      PoolConfig      `yaml:"pool"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // Added to vertical velocity every tick
}

// RangeConfig is a half-open interval [min, max).
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SpawnConfig holds burst parameters.
type SpawnConfig struct {
	BurstSize int         `yaml:"burst_size"` // Balls per pointer release
	Radius    RangeConfig `yaml:"radius"`
	VelocityX RangeConfig `yaml:"velocity_x"`
	VelocityY RangeConfig `yaml:"velocity_y"`
}

// PoolConfig holds slot pool parameters.
type PoolConfig struct {
	InitialCapacity int `yaml:"initial_capacity"` // Preallocated slot bookkeeping, not balls
}

// HeadlessConfig drives scripted bursts when there is no pointer.
type HeadlessConfig struct {
	BurstInterval int     `yaml:"burst_interval"` // Ticks between bursts (0 = never)
	BurstX        float64 `yaml:"burst_x"`        // Fraction of screen width
	BurstY        float64 `yaml:"burst_y"`        // Fraction of screen height
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Gravity32 float32 // Physics.Gravity as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if !finite(c.Physics.Gravity) {
		errs = append(errs, fmt.Errorf("physics.gravity must be finite, got %g", c.Physics.Gravity))
	}
	if c.Spawn.BurstSize <= 0 {
		errs = append(errs, fmt.Errorf("spawn.burst_size must be positive, got %d", c.Spawn.BurstSize))
	}
	if c.Spawn.Radius.Min <= 0 {
		errs = append(errs, fmt.Errorf("spawn.radius.min must be positive, got %g", c.Spawn.Radius.Min))
	}
	ranges := []struct {
		name string
		r    RangeConfig
	}{
		{"spawn.radius", c.Spawn.Radius},
		{"spawn.velocity_x", c.Spawn.VelocityX},
		{"spawn.velocity_y", c.Spawn.VelocityY},
	}
	for _, nr := range ranges {
		if !finite(nr.r.Min) || !finite(nr.r.Max) || nr.r.Max <= nr.r.Min {
			errs = append(errs, fmt.Errorf("%s: max %g must exceed min %g", nr.name, nr.r.Max, nr.r.Min))
		}
	}
	if c.Pool.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("pool.initial_capacity must not be negative, got %d", c.Pool.InitialCapacity))
	}
	if c.Headless.BurstInterval < 0 {
		errs = append(errs, fmt.Errorf("headless.burst_interval must not be negative, got %d", c.Headless.BurstInterval))
	}
	if !unit(c.Headless.BurstX) || !unit(c.Headless.BurstY) {
		errs = append(errs, fmt.Errorf("headless.burst_x/burst_y must lie in [0,1], got %g, %g", c.Headless.BurstX, c.Headless.BurstY))
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow))
	}
	if c.Telemetry.PerfCollectorWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.perf_collector_window must be positive, got %d", c.Telemetry.PerfCollectorWindow))
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// unit reports whether v lies in [0, 1]. NaN fails both comparisons.
func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// Recompute validates the config after in-place edits and refreshes
// the derived values.
func (c *Config) Recompute() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Gravity32 = float32(c.Physics.Gravity)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WithScreen returns a validated copy of c sized w x h. c is not modified.
func (c *Config) WithScreen(w, h int) (*Config, error) {
	cp := *c
	cp.Screen.Width = w
	cp.Screen.Height = h
	if err := cp.Recompute(); err != nil {
		return nil, err
	}
	return &cp, nil
}

// WriteYAML writes the configuration to a YAML file. An invalid config is
// not written, so every file it produces loads back.
func (c *Config) WriteYAML(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Workers   WorkersConfig   `yaml:"workers"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The raster grid matches the screen
// one cell per pixel, so these also fix the grid dimensions.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle population parameters.
type ParticlesConfig struct {
	Count int    `yaml:"count"` // must be a multiple of the SIMD lane width
	Spawn string `yaml:"spawn"` // "random" or "scanline"
}

// PhysicsConfig holds the per-frame update tunables.
type PhysicsConfig struct {
	Attraction     float64 `yaml:"attraction"`      // acceleration toward the target per frame
	Friction       float64 `yaml:"friction"`        // multiplicative velocity damping in (0,1]
	InverseFalloff bool    `yaml:"inverse_falloff"` // scale attraction by 1/distance
	Wrap           bool    `yaml:"wrap"`            // toroidal position wrap at screen edges
}

// WorkersConfig holds the worker pool size.
type WorkersConfig struct {
	Count int `yaml:"count"` // 0 = one worker per logical CPU
}

// RenderConfig holds rasterization and color mapping parameters.
type RenderConfig struct {
	Mode       string      `yaml:"mode"`        // "density" or "occupancy"
	MaxDensity float64     `yaml:"max_density"` // density at which a cell reaches full particle color
	Background ColorConfig `yaml:"background"`
	Particle   ColorConfig `yaml:"particle"`
}

// ColorConfig is an RGBA color in YAML form.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // frames in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width32     float32 // Screen.Width as float32
	Height32    float32 // Screen.Height as float32
	Attraction  float32
	Friction    float32
	MaxDensity  float32
	WorkerCount int // Workers.Count with 0 resolved to GOMAXPROCS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is Init for callers that cannot proceed without config.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks invariants that must hold before the frame loop starts.
// Lane-width alignment of the particle count is enforced by the store itself;
// everything checked here is generic sanity.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen size %dx%d is invalid", c.Screen.Width, c.Screen.Height)
	}
	if c.Particles.Count <= 0 {
		return fmt.Errorf("config: particle count must be positive, got %d", c.Particles.Count)
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		return fmt.Errorf("config: friction must be in (0,1], got %v", c.Physics.Friction)
	}
	if c.Render.MaxDensity <= 0 {
		return fmt.Errorf("config: max_density must be positive, got %v", c.Render.MaxDensity)
	}
	if c.Workers.Count < 0 {
		return fmt.Errorf("config: worker count must not be negative, got %d", c.Workers.Count)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Width32 = float32(c.Screen.Width)
	c.Derived.Height32 = float32(c.Screen.Height)
	c.Derived.Attraction = float32(c.Physics.Attraction)
	c.Derived.Friction = float32(c.Physics.Friction)
	c.Derived.MaxDensity = float32(c.Render.MaxDensity)

	workers := c.Workers.Count
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	c.Derived.WorkerCount = workers
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package config provides configuration loading and access for the effect.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// FlowMode selects how flow-field angles are generated.
type FlowMode string

const (
	// FlowNoise uses the trigonometric lattice noise (the signature look).
	FlowNoise FlowMode = "noise"
	// FlowWave uses a plain sinusoidal field, cheaper and more regular.
	FlowWave FlowMode = "wave"
	// FlowSimplex uses OpenSimplex noise for a smoother, less banded field.
	FlowSimplex FlowMode = "simplex"
)

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Colors    []string        `yaml:"colors"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds the simulation and rendering parameters of the particle
// field. All values are validated and clamped by Validate.
type FieldConfig struct {
	ParticleCount   int     `yaml:"particle_count"`
	ParticleSize    float64 `yaml:"particle_size"`
	ParticleOpacity float64 `yaml:"particle_opacity"`

	VortexCount    int     `yaml:"vortex_count"`
	VortexStrength float64 `yaml:"vortex_strength"`
	VortexRadius   float64 `yaml:"vortex_radius"`

	FlowResolution float64  `yaml:"flow_resolution"` // cell size in pixels
	FlowMode       FlowMode `yaml:"flow_mode"`
	NoiseScale     float64  `yaml:"noise_scale"`
	NoiseSpeed     float64  `yaml:"noise_speed"`

	VelocityDamping float64 `yaml:"velocity_damping"`

	BlurAmount      int     `yaml:"blur_amount"`
	ColorCycleSpeed float64 `yaml:"color_cycle_speed"`
	TrailFade       float64 `yaml:"trail_fade"`

	InteractionRadius   float64 `yaml:"interaction_radius"`
	InteractionStrength float64 `yaml:"interaction_strength"`

	UseVortexDynamics bool `yaml:"use_vortex_dynamics"`
	UseColorDiffusion bool `yaml:"use_color_diffusion"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // samples per perf average
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

	cfg.Validate()

	return cfg, nil
}

// Validate clamps out-of-range values to safe fallbacks, logging each fix.
// A bad value degrades a frame, never the process.
func (c *Config) Validate() {
	clampInt := func(name string, v *int, min, fallback int) {
		if *v < min {
			slog.Warn("config value out of range, using fallback", "field", name, "value", *v, "fallback", fallback)
			*v = fallback
		}
	}
	clampFloat := func(name string, v *float64, min, max, fallback float64) {
		if *v < min || *v > max {
			slog.Warn("config value out of range, using fallback", "field", name, "value", *v, "fallback", fallback)
			*v = fallback
		}
	}

	clampInt("screen.width", &c.Screen.Width, 1, 1280)
	clampInt("screen.height", &c.Screen.Height, 1, 720)
	clampInt("screen.target_fps", &c.Screen.TargetFPS, 1, 60)

	f := &c.Field
	clampInt("field.particle_count", &f.ParticleCount, 1, 900)
	clampFloat("field.particle_size", &f.ParticleSize, 0.1, 100, 2.0)
	clampFloat("field.particle_opacity", &f.ParticleOpacity, 0, 1, 0.7)
	// At least one vortex: the pointer vortex always exists.
	clampInt("field.vortex_count", &f.VortexCount, 1, 5)
	clampFloat("field.vortex_radius", &f.VortexRadius, 1, 1e6, 150)
	clampFloat("field.flow_resolution", &f.FlowResolution, 1, 1e6, 20)
	clampFloat("field.velocity_damping", &f.VelocityDamping, 1e-6, 1, 0.95)
	clampFloat("field.trail_fade", &f.TrailFade, 0, 1, 0.08)
	clampInt("field.blur_amount", &f.BlurAmount, 0, 0)
	clampFloat("field.interaction_radius", &f.InteractionRadius, 0, 1e6, 200)

	switch f.FlowMode {
	case FlowNoise, FlowWave, FlowSimplex:
	default:
		slog.Warn("config value out of range, using fallback", "field", "field.flow_mode", "value", f.FlowMode, "fallback", FlowNoise)
		f.FlowMode = FlowNoise
	}

	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 5.0
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 120
	}
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

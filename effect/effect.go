// Package effect owns one particle-field instance: the simulation systems,
// the palette and the renderer, advanced by an external frame loop.
package effect

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/petrikm/driftfield/config"
	"github.com/petrikm/driftfield/palette"
	"github.com/petrikm/driftfield/renderer"
	"github.com/petrikm/driftfield/systems"
	"github.com/petrikm/driftfield/telemetry"
	"github.com/petrikm/driftfield/ui"
)

// Options holds run options not covered by the config file.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
}

// Effect is one simulation instance. All state is owned by the instance and
// mutated only inside its own Tick/Draw calls; the external loop serializes
// everything, so no locking is needed. Pointer updates are last-write-wins
// snapshots read at the start of the next tick.
type Effect struct {
	cfg *config.Config
	rng *rand.Rand

	flow      *systems.FlowField
	vortices  *systems.VortexSystem
	particles *systems.ParticleSystem
	pal       palette.Palette
	pointer   systems.Pointer

	rend  *renderer.Renderer
	panel *ui.Panel

	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool
	lastStats float64
	renderDur time.Duration

	width, height float32
	time          float64
	tick          int64
	paused        bool
	headless      bool

	speedBuf []float64
}

// New creates an effect instance for the configured surface. In graphical
// mode the raylib window must already exist. A degenerate surface returns an
// error and no instance; the caller checks and moves on.
func New(cfg *config.Config, opts Options) (*Effect, error) {
	width := float32(cfg.Screen.Width)
	height := float32(cfg.Screen.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("effect: degenerate surface %vx%v", width, height)
	}

	e := &Effect{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		width:    width,
		height:   height,
		headless: opts.Headless,
		logStats: opts.LogStats,
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		speedBuf: make([]float64, 0, cfg.Field.ParticleCount),
	}

	e.pal = palette.New(cfg.Colors)
	e.flow = systems.NewFlowField(width, height, &cfg.Field, opts.Seed)
	e.vortices = systems.NewVortexSystem(width, height, &cfg.Field, e.rng)
	e.particles = systems.NewParticleSystem(width, height, &cfg.Field, e.rng)

	if !opts.Headless {
		rend, err := renderer.New(int32(width), int32(height))
		if err != nil {
			return nil, err
		}
		e.rend = rend
		e.panel = ui.NewPanel(20, 20, 260)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	e.output = output

	slog.Info("effect initialized",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"particles", cfg.Field.ParticleCount,
		"vortices", cfg.Field.VortexCount,
		"flow_mode", cfg.Field.FlowMode,
		"palette", e.pal.String(),
	)

	return e, nil
}

// Update runs one graphical frame: input, then a tick unless paused.
func (e *Effect) Update() {
	if e.headless {
		e.UpdateHeadless()
		return
	}

	e.handleInput()
	if e.paused {
		return
	}
	e.Tick(float64(rl.GetFrameTime()))
}

// UpdateHeadless runs one fixed-step tick without any raylib calls.
func (e *Effect) UpdateHeadless() {
	e.Tick(1.0 / 60.0)
}

// Tick advances the simulation by dt seconds: flow regeneration, vortex
// dynamics, particle integration. Pausing is simply not calling Tick; the
// first dt after resume is whatever the driver hands in, so a clamp keeps a
// long pause from becoming one giant step.
func (e *Effect) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > 0.25 {
		dt = 0.25
	}
	e.time += dt

	e.perf.StartTick()

	e.perf.StartPhase(telemetry.PhaseFlow)
	e.flow.Regenerate(e.time, &e.cfg.Field)

	e.perf.StartPhase(telemetry.PhaseVortex)
	e.vortices.Update(e.width, e.height, e.pointer, &e.cfg.Field)

	e.perf.StartPhase(telemetry.PhaseParticles)
	e.particles.Update(e.flow, e.vortices, e.width, e.height, &e.cfg.Field)

	e.perf.EndTick()

	e.tick++
	e.maybeEmitStats()
}

// Draw renders the current state. No-op in headless mode.
func (e *Effect) Draw() {
	if e.headless {
		return
	}

	start := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	e.rend.Draw(e.particles.Particles, e.pal, e.time, &e.cfg.Field)
	e.panel.Draw(&e.cfg.Field)

	if e.paused {
		rl.DrawText("PAUSED", 10, int32(e.height)-30, 20, rl.Yellow)
	}

	rl.EndDrawing()

	e.renderDur = time.Since(start)
}

// Reinitialize is the resize barrier: grid, population, vortices, palette
// and render target are all rebuilt before the next tick can run. Never
// called concurrently with Tick; the single-threaded loop serializes them.
func (e *Effect) Reinitialize(width, height float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("effect: degenerate surface %vx%v", width, height)
	}

	e.width = width
	e.height = height

	e.flow.Resize(width, height, &e.cfg.Field)
	e.flow.Regenerate(e.time, &e.cfg.Field)
	e.vortices.Reinit(width, height, &e.cfg.Field)
	e.particles.Reinit(width, height, &e.cfg.Field)
	e.pal = palette.New(e.cfg.Colors)

	if e.rend != nil {
		if err := e.rend.Resize(int32(width), int32(height)); err != nil {
			return err
		}
	}

	slog.Info("effect reinitialized", "width", width, "height", height)
	return nil
}

// SetPointer records the latest pointer snapshot, read at next tick start.
func (e *Effect) SetPointer(x, y float32, active bool) {
	e.pointer = systems.Pointer{X: x, Y: y, Active: active}
}

// SetPalette overrides the palette with explicit color specs.
func (e *Effect) SetPalette(specs []string) {
	e.pal = palette.New(specs)
}

// maybeEmitStats closes the stats window when it has elapsed.
func (e *Effect) maybeEmitStats() {
	window := e.cfg.Telemetry.StatsWindow
	if e.time-e.lastStats < window {
		return
	}
	e.lastStats = e.time

	e.speedBuf = e.particles.Speeds(e.speedBuf[:0])
	mean, stddev, max := telemetry.ComputeSpeedStats(e.speedBuf)

	fps := 0.0
	if !e.headless {
		fps = float64(rl.GetFPS())
	}

	stats := telemetry.WindowStats{
		WindowEndTick: e.tick,
		SimTimeSec:    e.time,
		FPS:           fps,
		ParticleCount: e.particles.Count(),
		VortexCount:   e.vortices.Count(),
		SpeedMean:     mean,
		SpeedStdDev:   stddev,
		SpeedMax:      max,
		PointerActive: e.pointer.Active,
	}

	if e.logStats {
		stats.Log()
	}
	if err := e.output.WriteStats(stats); err != nil {
		slog.Warn("stats output failed", "error", err)
	}

	perf := telemetry.PerfRecord{
		Tick:        e.tick,
		TotalUs:     float64(e.perf.Total().Microseconds()),
		FlowUs:      float64(e.perf.Avg(telemetry.PhaseFlow).Microseconds()),
		VortexUs:    float64(e.perf.Avg(telemetry.PhaseVortex).Microseconds()),
		ParticlesUs: float64(e.perf.Avg(telemetry.PhaseParticles).Microseconds()),
		RenderUs:    float64(e.renderDur.Microseconds()),
	}
	if err := e.output.WritePerf(perf); err != nil {
		slog.Warn("perf output failed", "error", err)
	}
}

// Unload releases renderer resources and closes output files.
func (e *Effect) Unload() {
	if e.rend != nil {
		e.rend.Unload()
	}
	if err := e.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}

// TickCount returns the number of completed ticks.
func (e *Effect) TickCount() int64 {
	return e.tick
}

// Time returns the accumulated simulation time in seconds.
func (e *Effect) Time() float64 {
	return e.time
}

// Paused reports whether the effect is paused.
func (e *Effect) Paused() bool {
	return e.paused
}

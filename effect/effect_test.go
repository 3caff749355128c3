package effect

import (
	"math"
	"testing"

	"github.com/petrikm/driftfield/config"
)

func testConfig() *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	cfg.Screen.Width = 320
	cfg.Screen.Height = 240
	cfg.Field.ParticleCount = 40
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config) *Effect {
	t.Helper()
	e, err := New(cfg, Options{Seed: 42, Headless: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestNewRejectsDegenerateSurface(t *testing.T) {
	cfg := testConfig()
	cfg.Screen.Width = 0

	if _, err := New(cfg, Options{Seed: 1, Headless: true}); err == nil {
		t.Error("expected error for zero-width surface")
	}
}

func TestHeadlessRunKeepsInvariants(t *testing.T) {
	cfg := testConfig()
	e := newHeadless(t, cfg)
	defer e.Unload()

	e.SetPointer(100, 100, true)
	for i := 0; i < 200; i++ {
		e.UpdateHeadless()
	}

	if e.TickCount() != 200 {
		t.Errorf("tick count = %d, want 200", e.TickCount())
	}
	if math.Abs(e.Time()-200.0/60.0) > 1e-6 {
		t.Errorf("time = %v, want %v", e.Time(), 200.0/60.0)
	}

	for i, p := range e.particles.Particles {
		if p.X < 0 || p.X >= e.width || p.Y < 0 || p.Y >= e.height {
			t.Fatalf("particle %d escaped the surface: (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestPointerDrivesVortex(t *testing.T) {
	cfg := testConfig()
	cfg.Field.InteractionStrength = 100
	cfg.Field.InteractionRadius = 200
	e := newHeadless(t, cfg)
	defer e.Unload()

	e.SetPointer(100, 100, true)
	e.UpdateHeadless()

	v := e.vortices.PointerVortex()
	if v == nil {
		t.Fatal("no pointer vortex")
	}
	if v.X != 100 || v.Y != 100 || v.Strength != 100 || v.Radius != 200 || v.VX != 0 || v.VY != 0 {
		t.Errorf("pointer vortex = %+v, want {100 100 0 0 100 200}", *v)
	}
}

func TestReinitializeResizesEverything(t *testing.T) {
	cfg := testConfig()
	e := newHeadless(t, cfg)
	defer e.Unload()

	for i := 0; i < 10; i++ {
		e.UpdateHeadless()
	}

	if err := e.Reinitialize(500, 410); err != nil {
		t.Fatalf("Reinitialize failed: %v", err)
	}

	wantCols := int(math.Ceil(500 / cfg.Field.FlowResolution))
	wantRows := int(math.Ceil(410 / cfg.Field.FlowResolution))
	if e.flow.Cols() != wantCols || e.flow.Rows() != wantRows {
		t.Errorf("flow grid = %dx%d, want %dx%d", e.flow.Cols(), e.flow.Rows(), wantCols, wantRows)
	}
	if e.particles.Count() != cfg.Field.ParticleCount {
		t.Errorf("population = %d, want %d", e.particles.Count(), cfg.Field.ParticleCount)
	}

	// One more tick must hold the invariants against the new bounds
	e.UpdateHeadless()
	for i, p := range e.particles.Particles {
		if p.X < 0 || p.X >= 500 || p.Y < 0 || p.Y >= 410 {
			t.Fatalf("particle %d outside resized surface: (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestReinitializeRejectsDegenerateSurface(t *testing.T) {
	cfg := testConfig()
	e := newHeadless(t, cfg)
	defer e.Unload()

	if err := e.Reinitialize(0, 100); err == nil {
		t.Error("expected error for zero-width resize")
	}
}

func TestTickIgnoresNonPositiveDt(t *testing.T) {
	cfg := testConfig()
	e := newHeadless(t, cfg)
	defer e.Unload()

	e.Tick(0)
	e.Tick(-1)
	if e.TickCount() != 0 {
		t.Errorf("non-positive dt should not tick, count = %d", e.TickCount())
	}
}

func TestTickClampsLargeDt(t *testing.T) {
	cfg := testConfig()
	e := newHeadless(t, cfg)
	defer e.Unload()

	// A long pause hands in a huge dt; it must not become one giant step.
	e.Tick(60)
	if e.Time() > 0.25+1e-9 {
		t.Errorf("time after clamped tick = %v, want <= 0.25", e.Time())
	}
}

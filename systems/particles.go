package systems

import (
	"math"
	"math/rand"

	"github.com/petrikm/driftfield/config"
	"github.com/petrikm/driftfield/palette"
)

// Particle is a point mass advected by the flow field and the vortices.
// Age only drives the color phase; particles are never despawned for being
// old — the population is fixed-size and recycled via wraparound.
type Particle struct {
	X, Y     float32
	VX, VY   float32
	ColorIdx int
	Size     float32
	Age      float32
}

// Per-tick tuning constants.
const (
	ageStep              = 0.1
	flowInfluence        = 0.1
	vortexInfluence      = 0.01
	colorDiffusionChance = 0.005
)

// ParticleSystem owns the fixed-size particle population.
type ParticleSystem struct {
	Particles []Particle
	rng       *rand.Rand
}

// NewParticleSystem creates and seeds the population.
func NewParticleSystem(width, height float32, cfg *config.FieldConfig, rng *rand.Rand) *ParticleSystem {
	s := &ParticleSystem{rng: rng}
	s.Reinit(width, height, cfg)
	return s
}

// Reinit rebuilds the population from scratch. Called at creation and as part
// of the resize barrier; never during a tick.
func (s *ParticleSystem) Reinit(width, height float32, cfg *config.FieldConfig) {
	s.Particles = make([]Particle, cfg.ParticleCount)
	for i := range s.Particles {
		s.Particles[i] = Particle{
			X:        s.rng.Float32() * width,
			Y:        s.rng.Float32() * height,
			ColorIdx: s.rng.Intn(palette.Size),
			Size:     float32(cfg.ParticleSize) * (0.5 + s.rng.Float32()),
		}
	}
}

// Update advances every particle one tick: flow advection, vortex rotation,
// damping, integration, wraparound and stochastic color diffusion.
func (s *ParticleSystem) Update(flow *FlowField, vortices *VortexSystem, width, height float32, cfg *config.FieldConfig) {
	damping := float32(cfg.VelocityDamping)

	for i := range s.Particles {
		p := &s.Particles[i]

		p.Age += ageStep

		// Flow advection. A stale index right after a resize is skipped
		// rather than faulted; the particle just misses one contribution.
		col, row := flow.CellFor(p.X, p.Y)
		if cell, ok := flow.At(col, row); ok {
			p.VX += cell.X * flowInfluence
			p.VY += cell.Y * flowInfluence
		}

		// Vortex rotation: a perpendicular push that falls off linearly with
		// distance inside the radius. A particle sitting exactly on a vortex
		// center gets no influence (the perpendicular is undefined there).
		if cfg.UseVortexDynamics {
			for j := range vortices.Vortices {
				v := &vortices.Vortices[j]
				dx := p.X - v.X
				dy := p.Y - v.Y
				dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
				if dist <= 0 || dist >= v.Radius {
					continue
				}
				influence := (1 - dist/v.Radius) * v.Strength
				p.VX += -dy / dist * influence * vortexInfluence
				p.VY += dx / dist * influence * vortexInfluence
			}
		}

		p.VX *= damping
		p.VY *= damping
		p.X += p.VX
		p.Y += p.VY

		p.X = wrap(p.X, width)
		p.Y = wrap(p.Y, height)

		if cfg.UseColorDiffusion && s.rng.Float32() < colorDiffusionChance {
			p.ColorIdx = (p.ColorIdx + 1) % palette.Size
		}
	}
}

// Count returns the population size.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Speeds appends the speed of every particle to buf and returns it.
func (s *ParticleSystem) Speeds(buf []float64) []float64 {
	for i := range s.Particles {
		p := &s.Particles[i]
		buf = append(buf, math.Sqrt(float64(p.VX*p.VX+p.VY*p.VY)))
	}
	return buf
}

// wrap teleports a coordinate to the opposite edge, keeping it in [0, limit).
func wrap(v, limit float32) float32 {
	if v >= 0 && v < limit {
		return v
	}
	w := float32(math.Mod(float64(v), float64(limit)))
	if w < 0 {
		w += limit
	}
	if w >= limit {
		// float32 rounding can land exactly on the boundary
		w = 0
	}
	return w
}

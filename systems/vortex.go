package systems

import (
	"math/rand"

	"github.com/petrikm/driftfield/config"
)

// Pointer is the last known pointer state in surface coordinates. Writes are
// last-write-wins snapshots; the tick reads it once at the start.
type Pointer struct {
	X, Y   float32
	Active bool
}

// Vortex is a moving rotational force source. Strength is signed: the sign
// picks the rotation direction. The Pointer flag tags the one vortex that is
// overwritten from pointer input while the pointer is active.
type Vortex struct {
	X, Y     float32
	VX, VY   float32
	Strength float32
	Radius   float32
	Pointer  bool
}

// Smoothing factors for the random walk on strength and radius.
const (
	vortexKeep  = 0.99
	vortexBlend = 0.01
)

// VortexSystem owns the set of vortices.
type VortexSystem struct {
	Vortices []Vortex
	rng      *rand.Rand
}

// NewVortexSystem creates cfg.VortexCount vortices at random positions with
// slow random velocities. The first one carries the pointer tag.
func NewVortexSystem(width, height float32, cfg *config.FieldConfig, rng *rand.Rand) *VortexSystem {
	s := &VortexSystem{rng: rng}
	s.Reinit(width, height, cfg)
	return s
}

// Reinit rebuilds the vortex set for a (possibly new) surface size.
func (s *VortexSystem) Reinit(width, height float32, cfg *config.FieldConfig) {
	s.Vortices = make([]Vortex, cfg.VortexCount)
	for i := range s.Vortices {
		s.Vortices[i] = Vortex{
			X:        s.rng.Float32() * width,
			Y:        s.rng.Float32() * height,
			VX:       (s.rng.Float32() - 0.5),
			VY:       (s.rng.Float32() - 0.5),
			Strength: (s.rng.Float32()*2 - 1) * float32(cfg.VortexStrength),
			Radius:   float32(cfg.VortexRadius),
			Pointer:  i == 0,
		}
	}
}

// Update advances all vortices one tick. The pointer vortex is replaced
// wholesale while the pointer is active; once the pointer goes inactive it
// resumes autonomous drift from wherever it was left.
func (s *VortexSystem) Update(width, height float32, ptr Pointer, cfg *config.FieldConfig) {
	if !cfg.UseVortexDynamics {
		return
	}

	for i := range s.Vortices {
		v := &s.Vortices[i]

		if v.Pointer && ptr.Active {
			*v = Vortex{
				X:        ptr.X,
				Y:        ptr.Y,
				Strength: float32(cfg.InteractionStrength),
				Radius:   float32(cfg.InteractionRadius),
				Pointer:  true,
			}
			continue
		}

		// Drift and elastic bounce on the surface edges.
		v.X += v.VX
		v.Y += v.VY
		if v.X < 0 {
			v.X = 0
			v.VX = -v.VX
		} else if v.X > width {
			v.X = width
			v.VX = -v.VX
		}
		if v.Y < 0 {
			v.Y = 0
			v.VY = -v.VY
		} else if v.Y > height {
			v.Y = height
			v.VY = -v.VY
		}

		// Exponential smoothing toward fresh bounded random targets gives a
		// slow organic wander instead of static values.
		targetStrength := (s.rng.Float32()*2 - 1) * float32(cfg.VortexStrength)
		targetRadius := float32(cfg.VortexRadius) * (0.5 + s.rng.Float32())
		v.Strength = v.Strength*vortexKeep + targetStrength*vortexBlend
		v.Radius = v.Radius*vortexKeep + targetRadius*vortexBlend
	}
}

// PointerVortex returns the pointer-tagged vortex, or nil if there is none.
func (s *VortexSystem) PointerVortex() *Vortex {
	for i := range s.Vortices {
		if s.Vortices[i].Pointer {
			return &s.Vortices[i]
		}
	}
	return nil
}

// Count returns the number of vortices.
func (s *VortexSystem) Count() int {
	return len(s.Vortices)
}

package systems

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// TrigNoise maps (x, y, z) to a scalar in [0, 1] using the product of two
// offset sine/cosine lattices. It is not coherent noise in the Perlin sense,
// but it is cheap, deterministic and stateless, and the exact formula is what
// gives the flow field its characteristic banded look. Do not "fix" it.
func TrigNoise(x, y, z float64) float64 {
	a := math.Sin(10*x+z)*math.Cos(10*y-z)*0.5 + 0.5
	b := math.Sin(5*x-0.3*z)*math.Cos(7*y+0.2*z)*0.5 + 0.5
	return a * b
}

// SimplexNoise generates coherent noise via OpenSimplex, remapped to [0, 1].
// Used by the optional "simplex" flow mode for a smoother field.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates a seeded OpenSimplex generator.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Sample returns a noise value in [0, 1] for 3D coordinates.
func (s *SimplexNoise) Sample(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)*0.5 + 0.5
}

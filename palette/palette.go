// Package palette provides the 4-entry color palette and the color-cycling
// math used by the renderer.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Size is the fixed number of palette entries.
const Size = 4

// Palette is an ordered set of exactly Size colors with components in [0,1].
type Palette [Size]colorful.Color

// defaultSpecs is the built-in fallback palette.
var defaultSpecs = [Size]string{"#1a2a6c", "#b21f1f", "#fdbb2d", "#22c1c3"}

// Parse converts a "#RRGGBB" string into a color. Malformed input yields
// black; this effect never fails a frame over a bad color value.
func Parse(spec string) colorful.Color {
	c, err := colorful.Hex(spec)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// ParseInt converts a packed 0xRRGGBB integer into a color. Values outside
// 24 bits are masked rather than rejected.
func ParseInt(v int) colorful.Color {
	v &= 0xFFFFFF
	return colorful.Color{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}
}

// Lerp interpolates componentwise in RGB. t is not clamped; callers keep it
// in [0,1] via modular arithmetic, and out-of-range t extrapolates.
func Lerp(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
	}
}

// New builds a palette from up to Size hex specs. Missing or malformed
// entries fall back to the built-in defaults so the palette always has
// exactly Size usable colors.
func New(specs []string) Palette {
	var p Palette
	for i := 0; i < Size; i++ {
		spec := defaultSpecs[i]
		if i < len(specs) && specs[i] != "" {
			if _, err := colorful.Hex(specs[i]); err == nil {
				spec = specs[i]
			}
		}
		p[i], _ = colorful.Hex(spec)
	}
	return p
}

// Default returns the built-in palette.
func Default() Palette {
	return New(nil)
}

// CycleColor returns the palette color for a particle at the given simulation
// time and age. The fractional index (time*cycleSpeed + age*0.01) walks the
// palette cyclically; the fraction blends between the two bounding entries.
func (p Palette) CycleColor(time, age, cycleSpeed float64) colorful.Color {
	idx := math.Mod(time*cycleSpeed+age*0.01, Size)
	if idx < 0 {
		idx += Size
	}
	lo := int(idx)
	hi := (lo + 1) % Size
	return Lerp(p[lo], p[hi], idx-float64(lo))
}

// At returns the palette entry for an index taken modulo Size.
func (p Palette) At(i int) colorful.Color {
	i %= Size
	if i < 0 {
		i += Size
	}
	return p[i]
}

// Hex returns the palette as "#rrggbb" strings, for config round-trips.
func (p Palette) Hex() []string {
	out := make([]string, Size)
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// String implements fmt.Stringer for log output.
func (p Palette) String() string {
	return fmt.Sprintf("%s %s %s %s", p[0].Hex(), p[1].Hex(), p[2].Hex(), p[3].Hex())
}

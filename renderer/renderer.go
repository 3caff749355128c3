// Package renderer composites the particle field onto the screen.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/petrikm/driftfield/config"
	"github.com/petrikm/driftfield/palette"
	"github.com/petrikm/driftfield/systems"
)

// Renderer accumulates particle draws into an offscreen render texture so
// that a low-alpha black wash each frame leaves motion trails instead of a
// hard clear, then blits the texture to the screen with an optional blur
// pass. Must be created after the raylib window exists.
type Renderer struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
}

// New creates a renderer for the given surface size. A degenerate surface
// leaves the effect inert rather than crashing it.
func New(width, height int32) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: degenerate surface %dx%d", width, height)
	}

	r := &Renderer{width: width, height: height}
	r.target = rl.LoadRenderTexture(width, height)
	r.loaded = true

	// Start from black so the first frames fade from nothing.
	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()

	return r, nil
}

// Draw composites one frame: trail wash, particle circles, screen blit and
// the post-blur pass.
func (r *Renderer) Draw(particles []systems.Particle, pal palette.Palette, time float64, cfg *config.FieldConfig) {
	if !r.loaded {
		return
	}

	rl.BeginTextureMode(r.target)

	// Trail persistence: wash the previous frame down instead of clearing.
	fade := uint8(cfg.TrailFade * 255)
	rl.DrawRectangle(0, 0, r.width, r.height, rl.Color{A: fade})

	opacity := uint8(cfg.ParticleOpacity * 255)
	for i := range particles {
		p := &particles[i]
		c := pal.CycleColor(time, float64(p.Age), cfg.ColorCycleSpeed).Clamped()
		col := rl.Color{
			R: uint8(c.R * 255),
			G: uint8(c.G * 255),
			B: uint8(c.B * 255),
			A: opacity,
		}
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, p.Size, col)
	}

	rl.EndTextureMode()

	// Render textures are y-flipped; a negative source height corrects that.
	src := rl.Rectangle{Width: float32(r.width), Height: -float32(r.height)}
	rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{}, rl.White)

	if cfg.BlurAmount > 0 {
		r.blurPass(src, cfg.BlurAmount)
	}
}

// blurPass re-draws the accumulated frame over itself at small offsets with
// low alpha. A global pass after all particles, not per-particle.
func (r *Renderer) blurPass(src rl.Rectangle, amount int) {
	tint := rl.Color{R: 255, G: 255, B: 255, A: 48}
	rl.BeginBlendMode(rl.BlendAlpha)
	for i := 1; i <= amount; i++ {
		o := float32(i)
		rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{X: o}, tint)
		rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{X: -o}, tint)
		rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{Y: o}, tint)
		rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{Y: -o}, tint)
	}
	rl.EndBlendMode()
}

// Resize replaces the accumulation texture for a new surface size. The old
// contents are dropped; trails restart from black.
func (r *Renderer) Resize(width, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("renderer: degenerate surface %dx%d", width, height)
	}

	if r.loaded {
		rl.UnloadRenderTexture(r.target)
	}
	r.width = width
	r.height = height
	r.target = rl.LoadRenderTexture(width, height)
	r.loaded = true

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()

	return nil
}

// Unload frees the render texture.
func (r *Renderer) Unload() {
	if r.loaded {
		rl.UnloadRenderTexture(r.target)
		r.loaded = false
	}
}

// Package ui provides the in-window tuning panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/petrikm/driftfield/config"
)

// Panel is a raygui overlay with sliders for the parameters worth tweaking
// live. Changes apply directly to the shared config and take effect on the
// next tick.
type Panel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewPanel creates a hidden panel anchored at (x, y).
func NewPanel(x, y, width float32) *Panel {
	return &Panel{x: x, y: y, width: width}
}

// Toggle switches panel visibility and returns the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible returns whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Draw renders the panel and applies slider changes to cfg.
func (p *Panel) Draw(cfg *config.FieldConfig) {
	if !p.visible {
		return
	}

	const rows = 6
	panelHeight := float32(rows*46 + 40)
	rl.DrawRectangle(int32(p.x)-10, int32(p.y)-10, int32(p.width)+20, int32(panelHeight), rl.Color{R: 20, G: 20, B: 30, A: 220})

	y := p.y
	rl.DrawText("Field Tuning [Tab]", int32(p.x), int32(y), 16, rl.White)
	y += 28

	cfg.VelocityDamping = float64(p.slider(&y, "Damping", float32(cfg.VelocityDamping), 0.80, 1.0, "%.3f"))
	cfg.VortexStrength = float64(p.slider(&y, "Vortex strength", float32(cfg.VortexStrength), 0, 10, "%.2f"))
	cfg.VortexRadius = float64(p.slider(&y, "Vortex radius", float32(cfg.VortexRadius), 20, 500, "%.0f"))
	cfg.BlurAmount = int(p.slider(&y, "Blur", float32(cfg.BlurAmount), 0, 8, "%.0f"))
	cfg.ColorCycleSpeed = float64(p.slider(&y, "Color cycle", float32(cfg.ColorCycleSpeed), 0, 0.5, "%.3f"))
	cfg.TrailFade = float64(p.slider(&y, "Trail fade", float32(cfg.TrailFade), 0.01, 0.5, "%.3f"))
}

// slider draws one labeled slider row and advances the y cursor.
func (p *Panel) slider(y *float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(p.x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: *y, Width: p.width - 60, Height: 18},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(p.x+p.width-50), int32(*y+2), 14, rl.LightGray)
	*y += 28
	return v
}

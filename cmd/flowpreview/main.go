// Flow field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/flowpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/petrikm/driftfield/config"
	"github.com/petrikm/driftfield/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	fc := config.FieldConfig{
		FlowResolution: 20,
		FlowMode:       config.FlowNoise,
		NoiseScale:     0.1,
		NoiseSpeed:     0.2,
	}

	flow := systems.NewFlowField(previewSize, windowHeight, &fc, 12345)

	time := 0.0
	animating := true

	for !rl.WindowShouldClose() {
		if animating {
			time += float64(rl.GetFrameTime())
		}
		flow.Regenerate(time, &fc)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawArrows(flow)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Noise scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		fc.NoiseScale = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.01", "0.5",
			float32(fc.NoiseScale), 0.01, 0.5,
		))
		rl.DrawText(fmt.Sprintf("%.3f", fc.NoiseScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Noise speed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		fc.NoiseSpeed = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "2.0",
			float32(fc.NoiseSpeed), 0, 2,
		))
		rl.DrawText(fmt.Sprintf("%.2f", fc.NoiseSpeed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Resolution (cell px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		fc.FlowResolution = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"8", "64",
			float32(fc.FlowResolution), 8, 64,
		))
		rl.DrawText(fmt.Sprintf("%.0f", fc.FlowResolution), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 28}, "Noise") {
			fc.FlowMode = config.FlowNoise
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 28}, "Wave") {
			fc.FlowMode = config.FlowWave
		}
		panelY += 36
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 28}, "Simplex") {
			fc.FlowMode = config.FlowSimplex
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 28}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Mode: %s", fc.FlowMode), int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  Time: %.1f", flow.Cols(), flow.Rows(), time), int32(panelX), int32(panelY)+22, 16, rl.DarkGray)

		rl.EndDrawing()
	}
}

// drawArrows renders one direction arrow per flow cell.
func drawArrows(flow *systems.FlowField) {
	res := flow.Resolution()
	for row := 0; row < flow.Rows(); row++ {
		for col := 0; col < flow.Cols(); col++ {
			cell, ok := flow.At(col, row)
			if !ok {
				continue
			}
			cx := (float32(col) + 0.5) * res
			cy := (float32(row) + 0.5) * res
			scale := res * 0.4
			rl.DrawLineEx(
				rl.Vector2{X: cx, Y: cy},
				rl.Vector2{X: cx + cell.X*scale, Y: cy + cell.Y*scale},
				1.5,
				rl.Color{R: 40, G: 90, B: 160, A: 255},
			)
			rl.DrawCircleV(rl.Vector2{X: cx + cell.X*scale, Y: cy + cell.Y*scale}, 1.5, rl.DarkBlue)
		}
	}
}

func toggleText(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}

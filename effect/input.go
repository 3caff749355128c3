package effect

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes window and pointer input for a graphical frame.
func (e *Effect) handleInput() {
	e.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		e.paused = !e.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		e.panel.Toggle()
	}

	// The mouse drives the pointer vortex whenever the cursor is on the
	// surface. Leaving the window releases it back to autonomous drift.
	mouse := rl.GetMousePosition()
	e.SetPointer(mouse.X, mouse.Y, rl.IsCursorOnScreen())
}

// handleResize runs the reinitialization barrier when the window changes.
func (e *Effect) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == e.width && h == e.height {
		return
	}
	if err := e.Reinitialize(w, h); err != nil {
		slog.Warn("resize reinit failed", "error", err)
	}
}

package systems

import (
	"math"

	"github.com/petrikm/driftfield/config"
)

// FlowCell is a unit direction vector for one grid cell.
type FlowCell struct {
	X, Y float32
}

// FlowField is a row-major grid of unit direction vectors covering the
// surface. Cell (col, row) lives at index col + row*cols. The grid is fully
// rebuilt every tick by Regenerate; nothing persists across resizes.
type FlowField struct {
	cells      []FlowCell
	cols, rows int
	resolution float32 // cell size in pixels
	width      float32
	height     float32
	simplex    *SimplexNoise
}

// NewFlowField creates a flow field sized for the given surface.
func NewFlowField(width, height float32, cfg *config.FieldConfig, seed int64) *FlowField {
	f := &FlowField{simplex: NewSimplexNoise(seed)}
	f.Resize(width, height, cfg)
	return f
}

// Resize recomputes the grid dimensions for a new surface size and drops all
// cell data. Callers must Regenerate before the next particle update.
func (f *FlowField) Resize(width, height float32, cfg *config.FieldConfig) {
	f.width = width
	f.height = height
	f.resolution = float32(cfg.FlowResolution)
	f.cols = int(math.Ceil(float64(width) / float64(f.resolution)))
	f.rows = int(math.Ceil(float64(height) / float64(f.resolution)))
	f.cells = make([]FlowCell, f.cols*f.rows)
}

// Regenerate rebuilds every cell for the given simulation time (seconds).
// A changed resolution (live tuning) triggers a re-size of the grid first.
func (f *FlowField) Regenerate(time float64, cfg *config.FieldConfig) {
	if float32(cfg.FlowResolution) != f.resolution {
		f.Resize(f.width, f.height, cfg)
	}

	// The wave-mode constants assume a millisecond clock.
	tms := time * 1000

	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			cx := float64(col)
			cy := float64(row)

			var angle float64
			switch cfg.FlowMode {
			case config.FlowWave:
				angle = math.Sin(0.1*cx+0.001*tms) * math.Cos(0.1*cy+0.002*tms) * math.Pi
			case config.FlowSimplex:
				angle = f.simplex.Sample(cx*cfg.NoiseScale, cy*cfg.NoiseScale, time*cfg.NoiseSpeed) * 4 * math.Pi
			default:
				angle = TrigNoise(cx*cfg.NoiseScale, cy*cfg.NoiseScale, time*cfg.NoiseSpeed) * 4 * math.Pi
			}

			f.cells[col+row*f.cols] = FlowCell{
				X: float32(math.Cos(angle)),
				Y: float32(math.Sin(angle)),
			}
		}
	}
}

// At returns the cell at (col, row) and whether the index is in bounds.
// Out-of-bounds lookups happen transiently after a resize; callers skip the
// flow contribution for that tick instead of faulting.
func (f *FlowField) At(col, row int) (FlowCell, bool) {
	if col < 0 || col >= f.cols || row < 0 || row >= f.rows {
		return FlowCell{}, false
	}
	return f.cells[col+row*f.cols], true
}

// CellFor maps a surface position to its enclosing grid indices.
func (f *FlowField) CellFor(x, y float32) (col, row int) {
	return int(x / f.resolution), int(y / f.resolution)
}

// Cols returns the grid column count.
func (f *FlowField) Cols() int { return f.cols }

// Rows returns the grid row count.
func (f *FlowField) Rows() int { return f.rows }

// Resolution returns the current cell size in pixels.
func (f *FlowField) Resolution() float32 { return f.resolution }

// Package telemetry collects frame statistics and writes them to structured
// logs and CSV files.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	FPS           float64 `csv:"fps"`
	ParticleCount int     `csv:"particles"`
	VortexCount   int     `csv:"vortices"`

	// Particle speed distribution at window end
	SpeedMean   float64 `csv:"speed_mean"`
	SpeedStdDev float64 `csv:"speed_stddev"`
	SpeedMax    float64 `csv:"speed_max"`

	PointerActive bool `csv:"pointer_active"`
}

// ComputeSpeedStats returns mean, stddev and max of the given speeds.
// Empty input yields zeros.
func ComputeSpeedStats(speeds []float64) (mean, stddev, max float64) {
	if len(speeds) == 0 {
		return 0, 0, 0
	}
	mean, stddev = stat.MeanStdDev(speeds, nil)
	if len(speeds) == 1 {
		stddev = 0
	}
	for _, s := range speeds {
		if s > max {
			max = s
		}
	}
	return mean, stddev, max
}

// Log emits the window stats via slog.
func (w WindowStats) Log() {
	slog.Info("window stats",
		"window_end", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"fps", w.FPS,
		"particles", w.ParticleCount,
		"vortices", w.VortexCount,
		"speed_mean", w.SpeedMean,
		"speed_stddev", w.SpeedStdDev,
		"speed_max", w.SpeedMax,
		"pointer_active", w.PointerActive,
	)
}

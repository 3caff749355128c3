package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartTick()
	p.StartPhase(PhaseFlow)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseParticles)
	time.Sleep(time.Millisecond)
	p.EndTick()

	if p.Total() <= 0 {
		t.Error("total tick duration should be positive")
	}
	if p.Avg(PhaseFlow) <= 0 {
		t.Error("flow phase duration should be positive")
	}
	if p.Avg(PhaseParticles) <= 0 {
		t.Error("particles phase duration should be positive")
	}
	if p.Avg(PhaseRender) != 0 {
		t.Error("unrecorded phase should average zero")
	}
}

func TestPerfCollectorWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		p.StartTick()
		p.StartPhase(PhaseFlow)
		p.EndTick()
	}

	if p.sampleCount != 4 {
		t.Errorf("sample count = %d, want window size 4", p.sampleCount)
	}
}

func TestSortedNames(t *testing.T) {
	p := NewPerfCollector(4)

	p.StartTick()
	p.StartPhase(PhaseVortex)
	p.StartPhase(PhaseFlow)
	p.EndTick()

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseFlow || names[1] != PhaseVortex {
		t.Errorf("SortedNames = %v, want [flow vortex]", names)
	}
}

func TestPerfCollectorMinWindow(t *testing.T) {
	p := NewPerfCollector(0)
	if p.windowSize < 1 {
		t.Error("window size should be forced positive")
	}
}

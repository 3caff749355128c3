package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("empty dir should disable output, got error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should return nil manager")
	}

	// All methods are nil-safe
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil manager WriteStats: %v", err)
	}
	if err := om.WritePerf(PerfRecord{}); err != nil {
		t.Errorf("nil manager WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	stats := WindowStats{WindowEndTick: 300, SimTimeSec: 5, ParticleCount: 900, SpeedMean: 1.5}
	if err := om.WriteStats(stats); err != nil {
		t.Fatal(err)
	}
	stats.WindowEndTick = 600
	if err := om.WriteStats(stats); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// One header plus two records
	if len(lines) != 3 {
		t.Fatalf("stats.csv has %d lines, want 3:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("header missing window_end: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "300,") {
		t.Errorf("first record should start with tick 300: %q", lines[1])
	}
}

func TestOutputManagerPerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WritePerf(PerfRecord{Tick: 100, TotalUs: 1234}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "total_us") {
		t.Errorf("perf.csv missing expected header:\n%s", data)
	}
}

package palette

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const tol = 1e-9

func colorsEqual(a, b colorful.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func TestLerpEndpoints(t *testing.T) {
	a := colorful.Color{R: 0.1, G: 0.5, B: 0.9}
	b := colorful.Color{R: 0.8, G: 0.2, B: 0.3}

	if got := Lerp(a, b, 0); !colorsEqual(got, a, tol) {
		t.Errorf("Lerp(a, b, 0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); !colorsEqual(got, b, tol) {
		t.Errorf("Lerp(a, b, 1) = %v, want %v", got, b)
	}
}

func TestLerpMidpoint(t *testing.T) {
	a := colorful.Color{R: 0, G: 0, B: 0}
	b := colorful.Color{R: 1, G: 0.5, B: 0.25}

	got := Lerp(a, b, 0.5)
	want := colorful.Color{R: 0.5, G: 0.25, B: 0.125}
	if !colorsEqual(got, want, tol) {
		t.Errorf("Lerp midpoint = %v, want %v", got, want)
	}
}

func TestLerpDoesNotClamp(t *testing.T) {
	a := colorful.Color{R: 0, G: 0, B: 0}
	b := colorful.Color{R: 1, G: 1, B: 1}

	// Extrapolation is allowed; callers keep t in range themselves.
	got := Lerp(a, b, 1.5)
	if math.Abs(got.R-1.5) > tol {
		t.Errorf("Lerp(a, b, 1.5).R = %v, want 1.5 (unclamped)", got.R)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want colorful.Color
	}{
		{"white", "#ffffff", colorful.Color{R: 1, G: 1, B: 1}},
		{"black", "#000000", colorful.Color{}},
		{"red", "#ff0000", colorful.Color{R: 1}},
		{"malformed falls back to black", "not-a-color", colorful.Color{}},
		{"empty falls back to black", "", colorful.Color{}},
		{"missing hash falls back to black", "ff0000", colorful.Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.spec)
			if !colorsEqual(got, tt.want, 1e-6) {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	got := ParseInt(0xff8000)
	want := colorful.Color{R: 1, G: 128.0 / 255, B: 0}
	if !colorsEqual(got, want, 1e-6) {
		t.Errorf("ParseInt(0xff8000) = %v, want %v", got, want)
	}

	// High bits are masked, not rejected
	if got, want := ParseInt(0x1ff8000), ParseInt(0xff8000); !colorsEqual(got, want, tol) {
		t.Errorf("ParseInt should mask to 24 bits: %v != %v", got, want)
	}
}

func TestNewFillsMissingEntries(t *testing.T) {
	p := New([]string{"#102030", "#405060"})

	want0 := Parse("#102030")
	if !colorsEqual(p[0], want0, 1e-6) {
		t.Errorf("entry 0 = %v, want %v", p[0], want0)
	}

	// Entries 2 and 3 come from the default palette
	def := Default()
	if !colorsEqual(p[2], def[2], tol) || !colorsEqual(p[3], def[3], tol) {
		t.Error("missing entries should fall back to the default palette")
	}
}

func TestNewReplacesMalformedEntries(t *testing.T) {
	p := New([]string{"bogus", "#405060", "", "#708090"})
	def := Default()

	if !colorsEqual(p[0], def[0], tol) {
		t.Errorf("malformed entry should use default, got %v", p[0])
	}
	if !colorsEqual(p[1], Parse("#405060"), 1e-6) {
		t.Errorf("valid entry should survive, got %v", p[1])
	}
}

func TestCycleColorAtZero(t *testing.T) {
	p := Default()

	// age=0 at time=0 must yield entry 0 exactly (fractional index 0)
	got := p.CycleColor(0, 0, 0.05)
	if !colorsEqual(got, p[0], tol) {
		t.Errorf("CycleColor(0, 0) = %v, want %v", got, p[0])
	}
}

func TestCycleColorWrapsAroundPalette(t *testing.T) {
	p := New([]string{"#000000", "#ffffff", "#ff0000", "#00ff00"})

	// cycleSpeed 1, time 3.5 → index 3.5 → halfway between entry 3 and entry 0
	got := p.CycleColor(3.5, 0, 1)
	want := Lerp(p[3], p[0], 0.5)
	if !colorsEqual(got, want, tol) {
		t.Errorf("CycleColor wrap = %v, want %v", got, want)
	}

	// time 4 → index 0 again
	got = p.CycleColor(4, 0, 1)
	if !colorsEqual(got, p[0], tol) {
		t.Errorf("CycleColor full wrap = %v, want %v", got, p[0])
	}
}

func TestAtModulo(t *testing.T) {
	p := Default()
	if !colorsEqual(p.At(5), p[1], tol) {
		t.Error("At(5) should equal entry 1")
	}
	if !colorsEqual(p.At(-1), p[3], tol) {
		t.Error("At(-1) should equal entry 3")
	}
}

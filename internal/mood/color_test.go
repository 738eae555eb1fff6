package mood

import (
	"math"
	"strings"
	"testing"
)

func TestColorOf(t *testing.T) {
	tests := []struct {
		name      string
		happiness int
		calmness  int
		wantHex   string
		wantHSL   string
		wantHue   int
		wantSat   int
		wantLight int
	}{
		{"happy and calm", 75, 60, "#64e9a6", "hsl(150, 75%, 65%)", 150, 75, 65},
		{"midpoint", 50, 50, "#70c270", "hsl(120, 40%, 60%)", 120, 40, 60},
		{"sad and anxious floor", 0, 0, "#da0b0b", "hsl(0, 90%, 45%)", 0, 90, 45},
		{"ceiling", 100, 100, "#86f9f9", "hsl(180, 90%, 75%)", 180, 90, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorOf(tt.happiness, tt.calmness)
			if got.Hex != tt.wantHex {
				t.Errorf("Hex = %q, want %q", got.Hex, tt.wantHex)
			}
			if got.HSL != tt.wantHSL {
				t.Errorf("HSL = %q, want %q", got.HSL, tt.wantHSL)
			}
			if got.Hue != tt.wantHue || got.Saturation != tt.wantSat || got.Lightness != tt.wantLight {
				t.Errorf("HSL fields = (%d, %d, %d), want (%d, %d, %d)",
					got.Hue, got.Saturation, got.Lightness, tt.wantHue, tt.wantSat, tt.wantLight)
			}
		})
	}
}

func TestColorOfHueBands(t *testing.T) {
	for h := 0; h <= 100; h++ {
		for c := 0; c <= 100; c++ {
			hue, _, _ := hslOf(h, c)
			var lo, hi float64
			switch {
			case h >= 50 && c >= 50:
				lo, hi = 120, 180
			case h >= 50:
				lo, hi = 30, 60
			case c >= 50:
				lo, hi = 200, 260
			default:
				lo, hi = 0, 30
			}
			if hue < lo || hue > hi {
				t.Fatalf("hue(%d, %d) = %v, want within [%v, %v]", h, c, hue, lo, hi)
			}
		}
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name                string
		hue, sat, light     float64
		wantR, wantG, wantB uint8
	}{
		{"red", 0, 100, 50, 255, 0, 0},
		{"green", 120, 100, 50, 0, 255, 0},
		{"blue", 240, 100, 50, 0, 0, 255},
		{"grey", 0, 0, 50, 128, 128, 128},
		{"olive", 60, 100, 25, 128, 128, 0},
		{"steel blue", 210, 50, 40, 51, 102, 153},
		{"light magenta", 300, 100, 75, 255, 128, 255},
		{"full turn wraps", 360, 100, 50, 255, 0, 0},
		{"white", 90, 30, 100, 255, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSLToRGB(tt.hue, tt.sat, tt.light)
			if absDiff(r, tt.wantR) > 1 || absDiff(g, tt.wantG) > 1 || absDiff(b, tt.wantB) > 1 {
				t.Errorf("HSLToRGB(%v, %v, %v) = (%d,%d,%d), want (%d,%d,%d)",
					tt.hue, tt.sat, tt.light, r, g, b, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestColorOfRoundTrip(t *testing.T) {
	for h := 0; h <= 100; h++ {
		for c := 0; c <= 100; c++ {
			color := ColorOf(h, c)
			r, g, b, err := ParseHex(color.Hex)
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", color.Hex, err)
			}
			wr, wg, wb := HSLToRGB(hslOf(h, c))
			if absDiff(r, wr) > 1 || absDiff(g, wg) > 1 || absDiff(b, wb) > 1 {
				t.Fatalf("ColorOf(%d, %d) hex %s decodes to (%d,%d,%d), want (%d,%d,%d)",
					h, c, color.Hex, r, g, b, wr, wg, wb)
			}
			if color.Hex != strings.ToLower(color.Hex) {
				t.Fatalf("hex %q not lowercase", color.Hex)
			}
		}
	}
}

func TestColorOfRanges(t *testing.T) {
	for h := 0; h <= 100; h++ {
		for c := 0; c <= 100; c++ {
			got := ColorOf(h, c)
			if got.Hue < 0 || got.Hue >= 360 {
				t.Fatalf("Hue(%d, %d) = %d", h, c, got.Hue)
			}
			if got.Saturation < 40 || got.Saturation > 90 {
				t.Fatalf("Saturation(%d, %d) = %d", h, c, got.Saturation)
			}
			if got.Lightness < 45 || got.Lightness > 75 {
				t.Fatalf("Lightness(%d, %d) = %d", h, c, got.Lightness)
			}
		}
	}
}

func TestLightnessMonotonic(t *testing.T) {
	// Lightness depends only on h+c.
	prev := math.Inf(-1)
	for sum := 0; sum <= 200; sum++ {
		h := min(sum, 100)
		c := sum - h
		_, _, l := hslOf(h, c)
		if l < prev {
			t.Fatalf("lightness decreased at h+c=%d: %v < %v", sum, l, prev)
		}
		prev = l
	}
}

func TestSaturationMonotonic(t *testing.T) {
	// Walk outward from the midpoint along the diagonal and both axes.
	walks := []func(step int) (int, int){
		func(s int) (int, int) { return 50 + s, 50 + s },
		func(s int) (int, int) { return 50 - s, 50 - s },
		func(s int) (int, int) { return 50 + s, 50 },
		func(s int) (int, int) { return 50, 50 - s },
	}
	for i, walk := range walks {
		prev := math.Inf(-1)
		for step := 0; step <= 50; step++ {
			h, c := walk(step)
			_, s, _ := hslOf(h, c)
			if s < prev {
				t.Fatalf("walk %d: saturation decreased at (%d, %d): %v < %v", i, h, c, s, prev)
			}
			prev = s
		}
	}
}

func TestColorOfDeterministic(t *testing.T) {
	if ColorOf(33, 77) != ColorOf(33, 77) {
		t.Error("ColorOf() not deterministic")
	}
}

func TestGradientOf(t *testing.T) {
	got := GradientOf(95, 98)
	want := "linear-gradient(135deg, " + ColorOf(95, 98).Hex + " 0%, " + ColorOf(100, 100).Hex + " 100%)"
	if got != want {
		t.Errorf("GradientOf() = %q, want %q", got, want)
	}

	got = GradientOf(50, 50)
	want = "linear-gradient(135deg, #70c270 0%, " + ColorOf(60, 60).Hex + " 100%)"
	if got != want {
		t.Errorf("GradientOf(50, 50) = %q, want %q", got, want)
	}
}

func TestPalette(t *testing.T) {
	samples := make([]Input, 14)
	for i := range samples {
		samples[i] = Input{Happiness: i * 7, Calmness: 100 - i*7}
	}

	got := Palette(samples)
	if len(got) != 10 {
		t.Fatalf("len(Palette()) = %d, want 10", len(got))
	}
	for i, c := range got {
		if want := ColorOf(samples[i].Happiness, samples[i].Calmness); c != want {
			t.Errorf("Palette()[%d] = %+v, want %+v", i, c, want)
		}
	}

	if got := Palette(nil); len(got) != 0 {
		t.Errorf("Palette(nil) = %v, want empty", got)
	}
}

func TestParseHex(t *testing.T) {
	r, g, b, err := ParseHex("#64e9a6")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	if r != 0x64 || g != 0xe9 || b != 0xa6 {
		t.Errorf("ParseHex() = (%d,%d,%d)", r, g, b)
	}

	for _, bad := range []string{"", "64e9a6", "#64e9a", "#zzzzzz"} {
		if _, _, _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) expected error", bad)
		}
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

package mood

import (
	"fmt"
	"math"
	"strconv"
)

// Color is the display color for a mood sample.
// Hue, Saturation and Lightness are rounded for display; Hex is converted
// from the unrounded triple.
type Color struct {
	Hex        string `json:"hex"`
	HSL        string `json:"hsl"`
	Hue        int    `json:"hue"`
	Saturation int    `json:"saturation"`
	Lightness  int    `json:"lightness"`
}

// paletteSize caps the number of swatches returned by Palette.
const paletteSize = 10

// ColorOf maps a mood sample to a color.
//
// Hue is picked by quadrant around the 50/50 midpoint:
//   - happy & calm:      green to cyan   [120, 180]
//   - happy & energetic: yellow to amber (45, 60]
//   - sad & calm:        blue to purple  [230, 260]
//   - sad & anxious:     red to orange   [0, 15)
//
// Saturation grows with distance from the midpoint, lightness with the
// overall mood.
func ColorOf(happiness, calmness int) Color {
	hue, saturation, lightness := hslOf(happiness, calmness)
	r, g, b := HSLToRGB(hue, saturation, lightness)

	displayHue := int(math.Round(hue))
	displaySat := int(math.Round(saturation))
	displayLight := int(math.Round(lightness))

	return Color{
		Hex:        formatHex(r, g, b),
		HSL:        fmt.Sprintf("hsl(%d, %d%%, %d%%)", displayHue, displaySat, displayLight),
		Hue:        displayHue,
		Saturation: displaySat,
		Lightness:  displayLight,
	}
}

// hslOf returns the unrounded hue (degrees), saturation and lightness
// (percent) for a sample.
func hslOf(happiness, calmness int) (hue, saturation, lightness float64) {
	h := float64(happiness) / 100
	c := float64(calmness) / 100

	switch {
	case h >= 0.5 && c >= 0.5:
		hue = 120 + (h-0.5)*120
	case h >= 0.5:
		// Less calm skews toward orange.
		hue = 30 + (1-c)*30
	case c >= 0.5:
		hue = 200 + c*60
	default:
		hue = h * 30
	}

	intensity := math.Abs(h-0.5) + math.Abs(c-0.5)
	saturation = math.Min(90, 40+intensity*100)

	overall := (h + c) / 2
	lightness = 45 + overall*30

	return hue, saturation, lightness
}

// HSLToRGB converts hue in degrees and saturation/lightness in percent to
// 8-bit RGB channels.
func HSLToRGB(hue, saturation, lightness float64) (r, g, b uint8) {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	s := saturation / 100
	l := lightness / 100

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = chroma, x, 0
	case h < 120:
		rf, gf, bf = x, chroma, 0
	case h < 180:
		rf, gf, bf = 0, chroma, x
	case h < 240:
		rf, gf, bf = 0, x, chroma
	case h < 300:
		rf, gf, bf = x, 0, chroma
	default:
		rf, gf, bf = chroma, 0, x
	}

	return channel(rf + m), channel(gf + m), channel(bf + m)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func formatHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGB returns the channels encoded in Hex. A zero Color yields black.
func (c Color) RGB() (r, g, b uint8) {
	r, g, b, _ = ParseHex(c.Hex)
	return r, g, b
}

// ParseHex decodes a "#rrggbb" string into its channels.
func ParseHex(hex string) (r, g, b uint8, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("parsing hex color %q: want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing hex color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// GradientOf returns a 135° CSS gradient from the sample's color to the color
// of a slightly happier and calmer sample.
func GradientOf(happiness, calmness int) string {
	primary := ColorOf(happiness, calmness)
	secondary := ColorOf(min(MaxValue, happiness+10), min(MaxValue, calmness+10))
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", primary.Hex, secondary.Hex)
}

// Palette returns the colors of the first ten samples, in order.
func Palette(samples []Input) []Color {
	n := min(paletteSize, len(samples))
	colors := make([]Color, n)
	for i := 0; i < n; i++ {
		colors[i] = ColorOf(samples[i].Happiness, samples[i].Calmness)
	}
	return colors
}

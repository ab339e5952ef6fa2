package colors

import "math"

// HarmonyKind names a harmony rule.
type HarmonyKind string

const (
	HarmonyComplementary      HarmonyKind = "complementary"
	HarmonyAnalogous          HarmonyKind = "analogous"
	HarmonyTriadic            HarmonyKind = "triadic"
	HarmonySplitComplementary HarmonyKind = "split-complementary"
	HarmonyTetradic           HarmonyKind = "tetradic"
	HarmonyShades             HarmonyKind = "shades"
	HarmonyTints              HarmonyKind = "tints"
)

// HarmonySet is an ordered group of colors derived from one base color.
type HarmonySet struct {
	Kind   HarmonyKind `json:"kind"`
	Colors []Color     `json:"colors"`
}

var (
	shadeFactors = []float64{0.2, 0.4, 0.6, 0.8, 1}
	tintFactors  = []float64{1, 0.8, 0.6, 0.4, 0.2}
)

// Complementary inverts each RGB channel. This is not a hue rotation.
func Complementary(c Color) Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

// rotate returns colors at the given hue offsets from c, keeping the
// rounded saturation and lightness.
func rotate(c Color, offsets ...int) []Color {
	hsl := c.HSL()
	out := make([]Color, len(offsets))
	for i, off := range offsets {
		h := ((hsl.H+off)%360 + 360) % 360
		out[i] = FromHSL(float64(h), float64(hsl.S), float64(hsl.L)).WithAlpha(c.A)
	}
	return out
}

// Analogous returns the hues 30° either side of c.
func Analogous(c Color) []Color { return rotate(c, -30, 30) }

// Triadic returns the hues at +120° and +240°.
func Triadic(c Color) []Color { return rotate(c, 120, 240) }

// SplitComplementary returns the hues at +150° and +210°.
func SplitComplementary(c Color) []Color { return rotate(c, 150, 210) }

// Tetradic returns the hues at +90°, +180° and +270°.
func Tetradic(c Color) []Color { return rotate(c, 90, 180, 270) }

// Shades scales c toward black, darkest first.
func Shades(c Color) []Color {
	out := make([]Color, len(shadeFactors))
	for i, f := range shadeFactors {
		scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * f)) }
		out[i] = Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
	}
	return out
}

// Tints blends c toward white, starting with c itself.
func Tints(c Color) []Color {
	out := make([]Color, len(tintFactors))
	for i, f := range tintFactors {
		lift := func(v uint8) uint8 {
			return uint8(math.Round(float64(v) + float64(255-v)*(1-f)))
		}
		out[i] = Color{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: c.A}
	}
	return out
}

// Harmonies computes every harmony of c in a fixed order.
func Harmonies(c Color) []HarmonySet {
	return []HarmonySet{
		{HarmonyComplementary, []Color{Complementary(c)}},
		{HarmonyAnalogous, Analogous(c)},
		{HarmonyTriadic, Triadic(c)},
		{HarmonySplitComplementary, SplitComplementary(c)},
		{HarmonyTetradic, Tetradic(c)},
		{HarmonyShades, Shades(c)},
		{HarmonyTints, Tints(c)},
	}
}

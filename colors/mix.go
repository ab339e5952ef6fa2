package colors

import "math"

// Mix interpolates linearly from a to b. ratio is a percentage in [0,100];
// 0 yields a and 100 yields b. The result is opaque.
func Mix(a, b Color, ratio float64) Color {
	t := ratio / 100
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return RGB(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B))
}

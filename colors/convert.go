package colors

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is hue in degrees [0,360), saturation and lightness in percent.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

func (h HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h.H, h.S, h.L)
}

// HSLA renders the hsla() form with the given alpha.
func (h HSL) HSLA(alpha float64) string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", h.H, h.S, h.L, formatNumber(alpha))
}

// HSV is hue in degrees, saturation and value in percent.
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

func (h HSV) String() string {
	return fmt.Sprintf("hsv(%d°, %d%%, %d%%)", h.H, h.S, h.V)
}

// CMYK components are percentages.
type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

// LAB is CIE L*a*b* under D65, rounded.
type LAB struct {
	L int `json:"l"`
	A int `json:"a"`
	B int `json:"b"`
}

func (l LAB) String() string {
	return fmt.Sprintf("lab(%d, %d, %d)", l.L, l.A, l.B)
}

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

func (c Color) unit() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// hue returns the hue as a fraction of a full turn, or 0 for grays.
func hue(r, g, b, max, min float64) float64 {
	if max == min {
		return 0
	}
	d := max - min
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6
}

// HSLf returns hue in degrees and saturation and lightness in [0,1],
// without rounding.
func (c Color) HSLf() (h, s, l float64) {
	r, g, b := c.unit()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	return hue(r, g, b, max, min) * 360, s, l
}

// HSL converts to rounded HSL. Gray colors have hue and saturation 0.
func (c Color) HSL() HSL {
	h, s, l := c.HSLf()
	return HSL{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSV converts to rounded HSV.
func (c Color) HSV() HSV {
	r, g, b := c.unit()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	s := 0.0
	if max != 0 {
		s = (max - min) / max
	}
	return HSV{
		H: int(math.Round(hue(r, g, b, max, min)*360)) % 360,
		S: int(math.Round(s * 100)),
		V: int(math.Round(max * 100)),
	}
}

// CMYK converts using k = 1-max(r,g,b). Pure black yields 0,0,0,100.
func (c Color) CMYK() CMYK {
	r, g, b := c.unit()
	k := 1 - math.Max(r, math.Max(g, b))
	ink := func(v float64) float64 {
		if k == 1 {
			return 0
		}
		return (1 - v - k) / (1 - k)
	}
	return CMYK{
		C: int(math.Round(ink(r) * 100)),
		M: int(math.Round(ink(g) * 100)),
		Y: int(math.Round(ink(b) * 100)),
		K: int(math.Round(k * 100)),
	}
}

func linearize(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func labPivot(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}

// LAB converts through linear sRGB and XYZ with the D65 white point.
func (c Color) LAB() LAB {
	r, g, b := c.unit()
	r, g, b = linearize(r), linearize(g), linearize(b)

	x := labPivot((r*0.4124 + g*0.3576 + b*0.1805) / whiteX)
	y := labPivot((r*0.2126 + g*0.7152 + b*0.0722) / whiteY)
	z := labPivot((r*0.0193 + g*0.1192 + b*0.9505) / whiteZ)

	return LAB{
		L: int(math.Round(116*y - 16)),
		A: int(math.Round(500 * (x - y))),
		B: int(math.Round(200 * (y - z))),
	}
}

// FromHSL builds an opaque color from hue in degrees and saturation and
// lightness in percent. Hue is wrapped into [0,360).
func FromHSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	return RGB(r, g, b)
}

// Package colors is the color math engine: conversions between color spaces,
// contrast metrics, harmonies, vision simulation, gradients, mixing and
// palette extraction. Every function is pure; nothing here holds state.
package colors

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Color is the canonical 8-bit RGB color with a fractional alpha in [0,1].
// Every other representation is derived from it.
type Color struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

var (
	Black = Color{0, 0, 0, 1}
	White = Color{255, 255, 255, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex renders the color as #RRGGBB in uppercase.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HexA renders the color as #RRGGBBAA with alpha scaled to 0..255.
func (c Color) HexA() string {
	return fmt.Sprintf("%s%02X", c.Hex(), uint8(math.Round(c.A*255)))
}

// Clean is the hex form without the leading '#'.
func (c Color) Clean() string {
	return c.Hex()[1:]
}

// CSSRGB renders the color as rgb(r, g, b).
func (c Color) CSSRGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// CSSRGBA renders the color as rgba(r, g, b, a).
func (c Color) CSSRGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatNumber(c.A))
}

func (c Color) String() string {
	return c.Hex()
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ParseHex parses exactly "#" followed by six hex digits, in either case.
// On failure it returns ErrInvalidFormat and the zero Color; callers keep
// whatever color they had before.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidFormat, s)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidFormat, s)
		}
		ch[i] = uint8(v)
	}
	return RGB(ch[0], ch[1], ch[2]), nil
}

// MustParseHex is ParseHex for static tables; it panics on bad input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHexLoose accepts the forms a user types into a hex field: with or
// without '#', any case. The strict six-digit rule still applies.
func ParseHexLoose(s string) (Color, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return ParseHex(s)
}

// Random returns an opaque color drawn from rng.
func Random(rng *rand.Rand) Color {
	return RGB(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

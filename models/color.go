package models

import (
	"math"

	"github.com/color-studio/api/colors"
)

// ColorDetails is every representation of a single color, as returned by the
// inspect endpoint
type ColorDetails struct {
	Hex      ColorHex      `json:"hex"`
	RGB      ColorRGB      `json:"rgb"`
	HSL      ColorHSL      `json:"hsl"`
	HSV      ColorHSV      `json:"hsv"`
	CMYK     ColorCMYK     `json:"cmyk"`
	LAB      ColorLAB      `json:"lab"`
	Name     ColorName     `json:"name"`
	Contrast ColorContrast `json:"contrast"`
	Links    ColorLinks    `json:"_links"`
}

type ColorHex struct {
	Value     string `json:"value"`
	Clean     string `json:"clean"`
	WithAlpha string `json:"withAlpha"`
}

type ColorRGB struct {
	Fraction Fraction `json:"fraction"`
	R        int      `json:"r"`
	G        int      `json:"g"`
	B        int      `json:"b"`
	A        float64  `json:"a"`
	Value    string   `json:"value"`
	RGBA     string   `json:"rgba"`
}

type Fraction struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

type ColorHSL struct {
	Fraction FractionHSL `json:"fraction"`
	H        int         `json:"h"`
	S        int         `json:"s"`
	L        int         `json:"l"`
	Value    string      `json:"value"`
	HSLA     string      `json:"hsla"`
}

type FractionHSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

type ColorHSV struct {
	Value string `json:"value"`
	H     int    `json:"h"`
	S     int    `json:"s"`
	V     int    `json:"v"`
}

type ColorCMYK struct {
	Value string `json:"value"`
	C     int    `json:"c"`
	M     int    `json:"m"`
	Y     int    `json:"y"`
	K     int    `json:"k"`
}

type ColorLAB struct {
	Value string `json:"value"`
	L     int    `json:"l"`
	A     int    `json:"a"`
	B     int    `json:"b"`
}

type ColorName struct {
	Value           string `json:"value"`
	ClosestNamedHex string `json:"closest_named_hex"`
	ExactMatchName  bool   `json:"exact_match_name"`
	Distance        int    `json:"distance"`
}

// ColorContrast holds the preferred text color and the ratios against
// plain white and black backgrounds
type ColorContrast struct {
	Value   string  `json:"value"`
	OnWhite float64 `json:"on_white"`
	OnBlack float64 `json:"on_black"`
}

type ColorLinks struct {
	Self  Link `json:"self"`
	Share Link `json:"share"`
}

type Link struct {
	Href string `json:"href"`
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}

// NewColorDetails derives every representation of c
func NewColorDetails(c colors.Color, selfHref, shareHref string) ColorDetails {
	hsl := c.HSL()
	h, s, l := c.HSLf()
	hsv := c.HSV()
	cmyk := c.CMYK()
	lab := c.LAB()
	named, dist := colors.Names.NearestEntry(c)

	details := ColorDetails{
		Hex: ColorHex{Value: c.Hex(), Clean: c.Clean(), WithAlpha: c.HexA()},
		RGB: ColorRGB{
			Fraction: Fraction{
				R: round4(float64(c.R) / 255),
				G: round4(float64(c.G) / 255),
				B: round4(float64(c.B) / 255),
			},
			R:     int(c.R),
			G:     int(c.G),
			B:     int(c.B),
			A:     c.A,
			Value: c.CSSRGB(),
			RGBA:  c.CSSRGBA(),
		},
		HSL: ColorHSL{
			Fraction: FractionHSL{H: round4(h / 360), S: round4(s), L: round4(l)},
			H:        hsl.H,
			S:        hsl.S,
			L:        hsl.L,
			Value:    hsl.String(),
			HSLA:     hsl.HSLA(c.A),
		},
		HSV:  ColorHSV{Value: hsv.String(), H: hsv.H, S: hsv.S, V: hsv.V},
		CMYK: ColorCMYK{Value: cmyk.String(), C: cmyk.C, M: cmyk.M, Y: cmyk.Y, K: cmyk.K},
		LAB:  ColorLAB{Value: lab.String(), L: lab.L, A: lab.A, B: lab.B},
		Name: ColorName{
			Value:           named.Name,
			ClosestNamedHex: named.Hex,
			ExactMatchName:  dist == 0,
		},
		Contrast: ColorContrast{
			Value:   colors.TextColorFor(c).Hex(),
			OnWhite: colors.ContrastRatio(c, colors.White),
			OnBlack: colors.ContrastRatio(c, colors.Black),
		},
		Links: ColorLinks{Self: Link{Href: selfHref}, Share: Link{Href: shareHref}},
	}
	if !math.IsInf(dist, 1) {
		details.Name.Distance = int(math.Round(dist))
	}
	return details
}

// HarmonyResponse lists every harmony of a base color
type HarmonyResponse struct {
	Base      string       `json:"base"`
	Harmonies []HarmonySet `json:"harmonies"`
}

type HarmonySet struct {
	Kind   string   `json:"kind"`
	Colors []string `json:"colors"`
}

// ContrastResponse is the result of a foreground/background check
type ContrastResponse struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	Rating     string  `json:"rating"`
	Badge      string  `json:"badge"`
}

type SimulationResponse struct {
	Input  string `json:"input"`
	Type   string `json:"type"`
	Result string `json:"result"`
}

type MixResponse struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Ratio  float64 `json:"ratio"`
	Result string  `json:"result"`
}

// GradientRequest describes a gradient with hex stops
type GradientRequest struct {
	Type  string              `json:"type"`
	Angle float64             `json:"angle"`
	Stops []GradientStopInput `json:"stops"`
}

type GradientStopInput struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

type GradientResponse struct {
	CSS string `json:"css"`
}

type CSSSnippetResponse struct {
	Property string `json:"property"`
	Code     string `json:"code"`
}

type SwatchResponse struct {
	Hex   string `json:"hex"`
	Count int    `json:"count"`
}

type ExtractResponse struct {
	Colors []SwatchResponse `json:"colors"`
}

// HexList renders colors as hex strings
func HexList(cs []colors.Color) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Hex()
	}
	return out
}

package colors

import "math"

// WCAGLevel classifies a contrast ratio.
type WCAGLevel string

const (
	AAA     WCAGLevel = "AAA"
	AA      WCAGLevel = "AA"
	AALarge WCAGLevel = "AA Large"
	Fail    WCAGLevel = "Fail"
)

// WCAGRating is a level plus the badge color the client shows for it.
type WCAGRating struct {
	Level WCAGLevel `json:"rating"`
	Badge string    `json:"color"`
}

// textColorThreshold favors black text; it is not the 0.5 midpoint.
const textColorThreshold = 0.179

func channelLuminance(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance is the WCAG 2 relative luminance of c.
func RelativeLuminance(c Color) float64 {
	return 0.2126*channelLuminance(c.R) +
		0.7152*channelLuminance(c.G) +
		0.0722*channelLuminance(c.B)
}

// ContrastRatio is the WCAG contrast between a and b, rounded to two
// decimals. Argument order does not matter.
func ContrastRatio(a, b Color) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return math.Round((lighter+0.05)/(darker+0.05)*100) / 100
}

// Rating classifies ratio against the 7, 4.5 and 3 thresholds (inclusive).
func Rating(ratio float64) WCAGRating {
	switch {
	case ratio >= 7:
		return WCAGRating{AAA, "#22C55E"}
	case ratio >= 4.5:
		return WCAGRating{AA, "#EAB308"}
	case ratio >= 3:
		return WCAGRating{AALarge, "#F97316"}
	default:
		return WCAGRating{Fail, "#EF4444"}
	}
}

// TextColorFor picks black or white text for a background of color c.
func TextColorFor(c Color) Color {
	if RelativeLuminance(c) > textColorThreshold {
		return Black
	}
	return White
}

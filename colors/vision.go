package colors

import (
	"fmt"
	"math"
)

// VisionType selects a simulated color vision deficiency.
type VisionType string

const (
	VisionNormal        VisionType = "normal"
	VisionProtanopia    VisionType = "protanopia"
	VisionDeuteranopia  VisionType = "deuteranopia"
	VisionTritanopia    VisionType = "tritanopia"
	VisionAchromatopsia VisionType = "achromatopsia"
)

type matrix3 [3][3]float64

var visionMatrices = map[VisionType]matrix3{
	VisionProtanopia: {
		{0.567, 0.433, 0},
		{0.558, 0.442, 0},
		{0, 0.242, 0.758},
	},
	VisionDeuteranopia: {
		{0.625, 0.375, 0},
		{0.7, 0.3, 0},
		{0, 0.3, 0.7},
	},
	VisionTritanopia: {
		{0.95, 0.05, 0},
		{0, 0.433, 0.567},
		{0, 0.475, 0.525},
	},
	VisionAchromatopsia: {
		{0.299, 0.587, 0.114},
		{0.299, 0.587, 0.114},
		{0.299, 0.587, 0.114},
	},
}

// VisionTypes lists the supported types, normal first.
func VisionTypes() []VisionType {
	return []VisionType{VisionNormal, VisionProtanopia, VisionDeuteranopia, VisionTritanopia, VisionAchromatopsia}
}

// ParseVisionType validates a vision type name.
func ParseVisionType(s string) (VisionType, error) {
	for _, v := range VisionTypes() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown vision type %q", ErrInvalidFormat, s)
}

// Simulate approximates how c looks under the given vision type. Normal and
// unknown types return c unchanged.
func Simulate(c Color, v VisionType) Color {
	m, ok := visionMatrices[v]
	if !ok {
		return c
	}
	in := [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	var out [3]uint8
	for i, row := range m {
		out[i] = clampChannel(row[0]*in[0] + row[1]*in[1] + row[2]*in[2])
	}
	return Color{R: out[0], G: out[1], B: out[2], A: c.A}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

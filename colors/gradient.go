package colors

import (
	"fmt"
	"slices"
	"strings"
)

// GradientType is the CSS gradient function to render.
type GradientType string

const (
	Linear GradientType = "linear"
	Radial GradientType = "radial"
	Conic  GradientType = "conic"
)

// ParseGradientType validates a gradient type name.
func ParseGradientType(s string) (GradientType, error) {
	switch t := GradientType(s); t {
	case Linear, Radial, Conic:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown gradient type %q", ErrInvalidFormat, s)
}

// GradientStop places a color at a position in percent.
type GradientStop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"position"`
}

// Gradient is a set of stops with a type and an angle in degrees. The angle
// is ignored for radial gradients. Stop count limits belong to the caller.
type Gradient struct {
	Type  GradientType   `json:"type"`
	Angle float64        `json:"angle"`
	Stops []GradientStop `json:"stops"`
}

// gradientEnd is the closing stop color of DefaultGradient.
var gradientEnd = Color{R: 0xFF, G: 0x6B, B: 0x6B, A: 1}

// DefaultGradient is the 45° linear gradient from c to a coral end stop.
func DefaultGradient(c Color) Gradient {
	return Gradient{
		Type:  Linear,
		Angle: 45,
		Stops: []GradientStop{
			{Color: c.WithAlpha(1), Position: 0},
			{Color: gradientEnd, Position: 100},
		},
	}
}

// SortedStops returns the stops ordered by position. Equal positions keep
// their input order. The receiver is not modified.
func (g Gradient) SortedStops() []GradientStop {
	stops := slices.Clone(g.Stops)
	slices.SortStableFunc(stops, func(a, b GradientStop) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		}
		return 0
	})
	return stops
}

// CSS renders the gradient as a CSS image value. An empty stop list renders
// as an empty argument list rather than failing. Types other than linear and
// radial render as conic.
func (g Gradient) CSS() string {
	stops := g.SortedStops()
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = fmt.Sprintf("%s %s%%", s.Color.Hex(), formatNumber(s.Position))
	}
	list := strings.Join(parts, ", ")

	switch g.Type {
	case Linear:
		return fmt.Sprintf("linear-gradient(%sdeg, %s)", formatNumber(g.Angle), list)
	case Radial:
		return fmt.Sprintf("radial-gradient(circle, %s)", list)
	default:
		return fmt.Sprintf("conic-gradient(from %sdeg, %s)", formatNumber(g.Angle), list)
	}
}

package colors

import "fmt"

// CSSProperties lists the snippet templates CSSSnippet understands.
var CSSProperties = []string{
	"background", "background-color", "color", "border-color", "box-shadow",
	"text-shadow", "gradient", "filter", "outline", "accent-color",
	"caret-color", "::selection", "scrollbar", "button",
}

// fade lowers the alpha of fully opaque colors for shadow templates.
func fade(c Color, a float64) Color {
	if c.A == 1 {
		return c.WithAlpha(a)
	}
	return c
}

// CSSSnippet renders a ready-to-paste CSS declaration for c. When g has
// stops the background template uses the gradient instead of the flat color.
// The gradient template falls back to DefaultGradient(c) without one.
// Unknown properties fall back to background.
func CSSSnippet(property string, c Color, g *Gradient) string {
	hex := c.Hex()
	text := TextColorFor(c).Hex()
	gradient := ""
	if g != nil && len(g.Stops) > 0 {
		gradient = g.CSS()
	}

	switch property {
	case "background-color":
		return fmt.Sprintf("background-color: %s;", hex)
	case "color":
		return fmt.Sprintf("color: %s;", hex)
	case "border-color":
		return fmt.Sprintf("border: 2px solid %s;", hex)
	case "box-shadow":
		return fmt.Sprintf("box-shadow: 0 4px 20px %s;", fade(c, 0.4).CSSRGBA())
	case "text-shadow":
		return fmt.Sprintf("text-shadow: 2px 2px 4px %s;", fade(c, 0.5).CSSRGBA())
	case "gradient":
		if gradient == "" {
			return fmt.Sprintf("background: %s;", DefaultGradient(c).CSS())
		}
		return fmt.Sprintf("background: %s;", gradient)
	case "filter":
		return fmt.Sprintf("filter: drop-shadow(0 4px 8px %s);", fade(c, 0.4).CSSRGBA())
	case "outline":
		return fmt.Sprintf("outline: 3px solid %s;", hex)
	case "accent-color":
		return fmt.Sprintf("accent-color: %s;", hex)
	case "caret-color":
		return fmt.Sprintf("caret-color: %s;", hex)
	case "::selection":
		return fmt.Sprintf("::selection {\n  background: %s;\n  color: %s;\n}", hex, text)
	case "scrollbar":
		return fmt.Sprintf("::-webkit-scrollbar-thumb {\n  background: %s;\n}", hex)
	case "button":
		return fmt.Sprintf(".button {\n  background: %s;\n  color: %s;\n  border: none;\n"+
			"  padding: 12px 24px;\n  border-radius: 8px;\n  cursor: pointer;\n}\n"+
			".button:hover {\n  background: %s;\n}", hex, text, Shades(c)[3].CSSRGB())
	}

	if gradient != "" {
		return fmt.Sprintf("background: %s;", gradient)
	}
	return fmt.Sprintf("background: %s;", hex)
}

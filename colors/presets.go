package colors

// Preset is a named, ready-made palette.
type Preset struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

var presets = []Preset{
	{"sunset", []string{"#FF6B6B", "#FEC89A", "#FFD93D", "#6BCB77", "#4D96FF"}},
	{"ocean", []string{"#0077B6", "#00B4D8", "#90E0EF", "#CAF0F8", "#03045E"}},
	{"forest", []string{"#2D6A4F", "#40916C", "#52B788", "#74C69D", "#95D5B2"}},
	{"candy", []string{"#FF85A1", "#FBB1BD", "#F9D5E5", "#EEAC99", "#E06377"}},
	{"neon", []string{"#FF00FF", "#00FFFF", "#FF00AA", "#AAFF00", "#00AAFF"}},
	{"pastel", []string{"#FFB5E8", "#FF9CEE", "#B28DFF", "#85E3FF", "#BFFCC6"}},
	{"earth", []string{"#8B4513", "#A0522D", "#CD853F", "#DEB887", "#F5DEB3"}},
	{"vintage", []string{"#2C3E50", "#E74C3C", "#ECF0F1", "#3498DB", "#2980B9"}},
	{"monochrome", []string{"#000000", "#333333", "#666666", "#999999", "#CCCCCC"}},
	{"rainbow", []string{"#FF0000", "#FF7F00", "#FFFF00", "#00FF00", "#0000FF", "#8B00FF"}},
}

// Presets returns a copy of the built-in palettes in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = Preset{Name: p.Name, Colors: append([]string(nil), p.Colors...)}
	}
	return out
}

// LookupPreset finds a built-in palette by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

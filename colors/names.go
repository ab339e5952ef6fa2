package colors

import (
	"fmt"
	"math"
)

// UnnamedColor is returned when the name table is empty.
const UnnamedColor = "Custom Color"

// NamedColor is a single entry of a name table.
type NamedColor struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// NameTable is an immutable, ordered hex→name table used for nearest-name
// lookup.
type NameTable struct {
	entries []namedEntry
}

type namedEntry struct {
	color Color
	name  string
}

// NewNameTable builds a table from entries in order. Duplicate hex values are
// resolved at construction: the later name replaces the earlier one, and the
// entry keeps the position of its first occurrence.
func NewNameTable(entries []NamedColor) (NameTable, error) {
	index := make(map[Color]int, len(entries))
	table := NameTable{entries: make([]namedEntry, 0, len(entries))}
	for _, e := range entries {
		c, err := ParseHex(e.Hex)
		if err != nil {
			return NameTable{}, fmt.Errorf("name table entry %q: %w", e.Name, err)
		}
		if i, ok := index[c]; ok {
			table.entries[i].name = e.Name
			continue
		}
		index[c] = len(table.entries)
		table.entries = append(table.entries, namedEntry{color: c, name: e.Name})
	}
	return table, nil
}

// Len is the number of distinct colors in the table.
func (t NameTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in scan order.
func (t NameTable) Entries() []NamedColor {
	out := make([]NamedColor, len(t.entries))
	for i, e := range t.entries {
		out[i] = NamedColor{Hex: e.color.Hex(), Name: e.name}
	}
	return out
}

// Nearest returns the name closest to c by Euclidean RGB distance. The scan
// is linear and the first minimum wins.
func (t NameTable) Nearest(c Color) string {
	match, _ := t.NearestEntry(c)
	return match.Name
}

// NearestEntry is Nearest plus the matched hex and the distance to it. With
// an empty table it returns UnnamedColor and +Inf.
func (t NameTable) NearestEntry(c Color) (NamedColor, float64) {
	best, min := NamedColor{Name: UnnamedColor}, math.Inf(1)
	for _, e := range t.entries {
		if d := distance(c, e.color); d < min {
			best, min = NamedColor{Hex: e.color.Hex(), Name: e.name}, d
		}
	}
	return best, min
}

func distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Names is the built-in name table.
var Names = mustNameTable(builtinNames)

// NearestName looks c up in the built-in table.
func NearestName(c Color) string {
	return Names.Nearest(c)
}

func mustNameTable(entries []NamedColor) NameTable {
	t, err := NewNameTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// builtinNames keeps its historical duplicates (Royal Blue, Saddle Brown,
// Sea Green, Slate Blue, Tomato); NewNameTable collapses them.
var builtinNames = []NamedColor{
	{"#FF0000", "Red"},
	{"#00FF00", "Lime"},
	{"#0000FF", "Blue"},
	{"#FFFF00", "Yellow"},
	{"#FF00FF", "Magenta"},
	{"#00FFFF", "Cyan"},
	{"#FFA500", "Orange"},
	{"#800080", "Purple"},
	{"#FFC0CB", "Pink"},
	{"#A52A2A", "Brown"},
	{"#808080", "Gray"},
	{"#000000", "Black"},
	{"#FFFFFF", "White"},
	{"#FFD700", "Gold"},
	{"#C0C0C0", "Silver"},
	{"#000080", "Navy"},
	{"#008080", "Teal"},
	{"#800000", "Maroon"},
	{"#808000", "Olive"},
	{"#FF6347", "Tomato"},
	{"#4169E1", "Royal Blue"},
	{"#32CD32", "Lime Green"},
	{"#FF69B4", "Hot Pink"},
	{"#8B4513", "Saddle Brown"},
	{"#2E8B57", "Sea Green"},
	{"#6A5ACD", "Slate Blue"},
	{"#FF4500", "Orange Red"},
	{"#DA70D6", "Orchid"},
	{"#EEE8AA", "Pale Goldenrod"},
	{"#98FB98", "Pale Green"},
	{"#AFEEEE", "Pale Turquoise"},
	{"#DB7093", "Pale Violet Red"},
	{"#FFEFD5", "Papaya Whip"},
	{"#FFDAB9", "Peach Puff"},
	{"#CD853F", "Peru"},
	{"#DDA0DD", "Plum"},
	{"#B0E0E6", "Powder Blue"},
	{"#BC8F8F", "Rosy Brown"},
	{"#4169E1", "Royal Blue"},
	{"#8B4513", "Saddle Brown"},
	{"#FA8072", "Salmon"},
	{"#F4A460", "Sandy Brown"},
	{"#2E8B57", "Sea Green"},
	{"#FFF5EE", "Seashell"},
	{"#A0522D", "Sienna"},
	{"#87CEEB", "Sky Blue"},
	{"#6A5ACD", "Slate Blue"},
	{"#708090", "Slate Gray"},
	{"#FFFAFA", "Snow"},
	{"#00FF7F", "Spring Green"},
	{"#4682B4", "Steel Blue"},
	{"#D2B48C", "Tan"},
	{"#D8BFD8", "Thistle"},
	{"#FF6347", "Tomato"},
	{"#40E0D0", "Turquoise"},
	{"#EE82EE", "Violet"},
	{"#F5DEB3", "Wheat"},
	{"#F5F5F5", "White Smoke"},
	{"#9ACD32", "Yellow Green"},
}

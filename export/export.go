// Package export renders a user's colors as downloadable files.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/color-studio/api/models"
)

type Format string

const (
	TXT  Format = "txt"
	JSON Format = "json"
	CSS  Format = "css"
	SCSS Format = "scss"
)

// ErrUnknownFormat is returned for formats other than txt, json, css and scss.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// Data is what gets exported: the color list, usually the history, plus the
// user's library for the json format.
type Data struct {
	Colors        []string              `json:"colors"`
	Favorites     []string              `json:"favorites"`
	SavedPalettes []models.SavedPalette `json:"savedPalettes"`
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case TXT, JSON, CSS, SCSS:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Render serializes d in format f.
func Render(f Format, d Data) (File, error) {
	switch f {
	case TXT:
		return File{"palette.txt", "text/plain", []byte(strings.Join(d.Colors, "\n"))}, nil
	case JSON:
		if d.Colors == nil {
			d.Colors = []string{}
		}
		if d.Favorites == nil {
			d.Favorites = []string{}
		}
		if d.SavedPalettes == nil {
			d.SavedPalettes = []models.SavedPalette{}
		}
		body, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return File{}, fmt.Errorf("error encoding export: %v", err)
		}
		return File{"colors.json", "application/json", body}, nil
	case CSS:
		var b strings.Builder
		b.WriteString(":root {\n")
		for i, c := range d.Colors {
			fmt.Fprintf(&b, "  --color-%d: %s;\n", i+1, c)
		}
		b.WriteString("}")
		return File{"colors.css", "text/css", []byte(b.String())}, nil
	case SCSS:
		lines := make([]string, len(d.Colors))
		for i, c := range d.Colors {
			lines[i] = fmt.Sprintf("$color-%d: %s;", i+1, c)
		}
		return File{"colors.scss", "text/plain", []byte(strings.Join(lines, "\n"))}, nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

package models

import (
	"time"

	"github.com/color-studio/api/colors"
)

// DailyColor is the featured color picked for a given day
type DailyColor struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	ColorName string    `json:"color_name"`
	R         int       `json:"r"`
	G         int       `json:"g"`
	B         int       `json:"b"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDailyColor names c and stamps it with the given day
func NewDailyColor(day time.Time, c colors.Color) DailyColor {
	return DailyColor{
		Date:      NormalizeDay(day),
		ColorName: colors.NearestName(c),
		R:         int(c.R),
		G:         int(c.G),
		B:         int(c.B),
		CreatedAt: time.Now(),
	}
}

func (dc DailyColor) Color() colors.Color {
	return colors.RGB(uint8(dc.R), uint8(dc.G), uint8(dc.B))
}

// DailyColorResponse is the simplified response for API endpoints
type DailyColorResponse struct {
	Date      string `json:"date"`
	ColorName string `json:"color_name"`
	RGB       string `json:"rgb"`
	Hex       string `json:"hex"`
	TextColor string `json:"text_color"`
}

func (dc DailyColor) Response() DailyColorResponse {
	c := dc.Color()
	return DailyColorResponse{
		Date:      dc.Date.Format("2006-01-02"),
		ColorName: dc.ColorName,
		RGB:       c.CSSRGB(),
		Hex:       c.Hex(),
		TextColor: colors.TextColorFor(c).Hex(),
	}
}

// NormalizeDay truncates t to local midnight
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

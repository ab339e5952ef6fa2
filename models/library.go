package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SavedPalette is a named set of hex colors a user kept
type SavedPalette struct {
	ID        string    `json:"id" db:"palette_id"`
	UserID    string    `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Colors    []string  `json:"colors" db:"colors"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewSavedPalette assigns a fresh id to a palette
func NewSavedPalette(name string, hexes []string) SavedPalette {
	return SavedPalette{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Colors:    append([]string(nil), hexes...),
		CreatedAt: time.Now(),
	}
}

// Library is the persisted part of a user's studio: favorites, most recent
// first, and saved palettes, newest first
// Library is what a user keeps between sessions. StartColor is read from
// the user's profile and is not written back by SaveLibrary.
type Library struct {
	Favorites     []string       `json:"favorites"`
	SavedPalettes []SavedPalette `json:"savedPalettes"`
	StartColor    string         `json:"startColor,omitempty"`
}

type FavoriteRequest struct {
	Hex string `json:"hex"`
}

type FavoriteResponse struct {
	Added     bool     `json:"added"`
	Favorites []string `json:"favorites"`
}

type SavePaletteRequest struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

type DeletePaletteRequest struct {
	ID string `json:"id"`
}

// Package studio holds the editing state of a single user's color studio:
// the current color, undo history, favorites, palettes and the gradient
// editor. It calls into package colors for all color math and only writes to
// storage when Save is called.
package studio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/models"
)

const (
	HistoryLimit     = 20
	FavoritesLimit   = 30
	PaletteLimit     = 10
	MinGradientStops = 2
	MaxGradientStops = 5
)

var (
	ErrStopCount   = errors.New("gradient stop count out of range")
	ErrStopIndex   = errors.New("gradient stop index out of range")
	ErrNoPalette   = errors.New("palette not found")
	ErrPaletteName = errors.New("palette name is required")
	ErrPaletteFull = errors.New("palette is full")
	ErrPaletteIdx  = errors.New("palette index out of range")
)

// DefaultColor is the color a new session starts with.
var DefaultColor = colors.RGB(128, 90, 213)

// Store persists a user's library. Sessions never call it on their own.
type Store interface {
	SaveLibrary(ctx context.Context, userID string, lib models.Library) error
}

// Picker samples a color from the screen, like a browser eyedropper.
type Picker interface {
	Pick(ctx context.Context) (colors.Color, error)
}

// Session is one user's studio. It is not safe for concurrent use; Registry
// serializes access.
type Session struct {
	UserID string

	color        colors.Color
	history      []string
	historyIndex int
	favorites    []string
	palettes     []models.SavedPalette
	current      []string
	gradient     colors.Gradient
	extracted    []colors.Swatch
	dirty        bool
}

// NewSession starts a session for userID from its stored library.
func NewSession(userID string, lib models.Library) *Session {
	s := &Session{
		UserID:       userID,
		historyIndex: -1,
		favorites:    slices.Clone(lib.Favorites),
		palettes:     slices.Clone(lib.SavedPalettes),
		gradient:     colors.DefaultGradient(DefaultColor),
	}
	if len(s.favorites) > FavoritesLimit {
		s.favorites = s.favorites[:FavoritesLimit]
	}
	start := DefaultColor
	if c, err := colors.ParseHex(lib.StartColor); err == nil {
		start = c
	}
	s.SetColor(start)
	return s
}

// Color is the current color.
func (s *Session) Color() colors.Color {
	return s.color
}

// SetColor makes c current. A hex not yet in the history is pushed to its
// front and resets the undo position. The first gradient stop follows the
// current color.
func (s *Session) SetColor(c colors.Color) {
	s.color = c
	hex := c.Hex()
	if !slices.Contains(s.history, hex) {
		s.history = append([]string{hex}, s.history[:min(len(s.history), HistoryLimit-1)]...)
		s.historyIndex = -1
	}
	if len(s.gradient.Stops) > 0 {
		s.gradient.Stops[0].Color = c.WithAlpha(1)
	}
}

// SetHex parses hex and makes it current. On error nothing changes.
func (s *Session) SetHex(hex string) error {
	c, err := colors.ParseHexLoose(hex)
	if err != nil {
		return err
	}
	s.SetColor(c.WithAlpha(s.color.A))
	return nil
}

// SetChannels sets the RGB channels and alpha, clamping alpha to [0,1].
func (s *Session) SetChannels(r, g, b uint8, a float64) {
	s.SetColor(colors.Color{R: r, G: g, B: b, A: math.Max(0, math.Min(1, a))})
}

// Random picks a random opaque color.
func (s *Session) Random(rng *rand.Rand) colors.Color {
	s.SetColor(colors.Random(rng))
	return s.color
}

// Pick takes the current color from p. A nil picker reports
// colors.ErrUnsupportedCapability and leaves the session unchanged.
func (s *Session) Pick(ctx context.Context, p Picker) error {
	if p == nil {
		return fmt.Errorf("eyedropper: %w", colors.ErrUnsupportedCapability)
	}
	c, err := p.Pick(ctx)
	if err != nil {
		return err
	}
	s.SetColor(c)
	return nil
}

// History returns the visited colors, most recent first.
func (s *Session) History() []string {
	return slices.Clone(s.history)
}

// position is the history index of the current color; -1 and 0 both mean
// the newest entry.
func (s *Session) position() int {
	return max(s.historyIndex, 0)
}

// CanUndo reports whether Undo would move.
func (s *Session) CanUndo() bool {
	return s.position() < len(s.history)-1
}

// CanRedo reports whether Redo would move.
func (s *Session) CanRedo() bool {
	return s.position() > 0
}

// Undo steps back to an older color in the history.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.historyIndex = s.position() + 1
	s.applyHistory()
	return true
}

// Redo steps forward to a newer color in the history.
func (s *Session) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	s.historyIndex = s.position() - 1
	s.applyHistory()
	return true
}

func (s *Session) applyHistory() {
	c, err := colors.ParseHex(s.history[s.historyIndex])
	if err != nil {
		return
	}
	s.SetColor(c.WithAlpha(s.color.A))
}

// Favorites returns the favorites, most recent first.
func (s *Session) Favorites() []string {
	return slices.Clone(s.favorites)
}

// IsFavorite reports whether the current color is a favorite.
func (s *Session) IsFavorite() bool {
	return slices.Contains(s.favorites, s.color.Hex())
}

// AddFavorite adds the current color. It reports false if it was already
// there. The oldest favorite drops off past FavoritesLimit.
func (s *Session) AddFavorite() bool {
	return s.AddFavoriteColor(s.color)
}

// AddFavoriteColor adds c to the favorites without changing the current color.
func (s *Session) AddFavoriteColor(c colors.Color) bool {
	hex := c.Hex()
	if slices.Contains(s.favorites, hex) {
		return false
	}
	s.favorites = append([]string{hex}, s.favorites[:min(len(s.favorites), FavoritesLimit-1)]...)
	s.dirty = true
	return true
}

// RemoveFavorite drops hex from the favorites.
func (s *Session) RemoveFavorite(hex string) bool {
	hex = strings.ToUpper(hex)
	i := slices.Index(s.favorites, hex)
	if i < 0 {
		return false
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	s.dirty = true
	return true
}

// CurrentPalette is the palette being built.
func (s *Session) CurrentPalette() []string {
	return slices.Clone(s.current)
}

// AddToPalette appends the current color to the palette being built. Full
// palettes and repeated colors are refused.
func (s *Session) AddToPalette() bool {
	hex := s.color.Hex()
	if len(s.current) >= PaletteLimit || slices.Contains(s.current, hex) {
		return false
	}
	s.current = append(s.current, hex)
	return true
}

// RemoveFromPalette drops the color at index i of the palette being built.
func (s *Session) RemoveFromPalette(i int) bool {
	if i < 0 || i >= len(s.current) {
		return false
	}
	s.current = slices.Delete(s.current, i, i+1)
	return true
}

// SavePalette stores the palette being built under name and clears it.
func (s *Session) SavePalette(name string) (models.SavedPalette, error) {
	p, err := s.StorePalette(name, s.current)
	if err != nil {
		return models.SavedPalette{}, err
	}
	s.current = nil
	return p, nil
}

// StorePalette saves hexes under name. Every entry must be a valid hex color
// and at most PaletteLimit are allowed.
func (s *Session) StorePalette(name string, hexes []string) (models.SavedPalette, error) {
	if len(hexes) == 0 {
		return models.SavedPalette{}, fmt.Errorf("save palette: %w", colors.ErrEmptyInput)
	}
	if len(hexes) > PaletteLimit {
		return models.SavedPalette{}, fmt.Errorf("save palette: %w: %d colors, at most %d allowed", ErrPaletteFull, len(hexes), PaletteLimit)
	}
	if strings.TrimSpace(name) == "" {
		return models.SavedPalette{}, ErrPaletteName
	}
	clean := make([]string, len(hexes))
	for i, h := range hexes {
		c, err := colors.ParseHexLoose(h)
		if err != nil {
			return models.SavedPalette{}, err
		}
		clean[i] = c.Hex()
	}
	p := models.NewSavedPalette(name, clean)
	p.UserID = s.UserID
	s.palettes = append([]models.SavedPalette{p}, s.palettes...)
	s.dirty = true
	return p, nil
}

// SavedPalettes returns the saved palettes, newest first.
func (s *Session) SavedPalettes() []models.SavedPalette {
	return slices.Clone(s.palettes)
}

// DeletePalette removes the saved palette with the given id.
func (s *Session) DeletePalette(id string) error {
	i := slices.IndexFunc(s.palettes, func(p models.SavedPalette) bool { return p.ID == id })
	if i < 0 {
		return ErrNoPalette
	}
	s.palettes = slices.Delete(s.palettes, i, i+1)
	s.dirty = true
	return nil
}

// Gradient returns a copy of the gradient being edited.
func (s *Session) Gradient() colors.Gradient {
	g := s.gradient
	g.Stops = slices.Clone(g.Stops)
	return g
}

// SetGradient changes the gradient type and angle.
func (s *Session) SetGradient(t colors.GradientType, angle float64) {
	s.gradient.Type = t
	s.gradient.Angle = angle
}

// AddGradientStop appends a stop in the current color, 50 points after the
// lowest existing position.
func (s *Session) AddGradientStop() error {
	if len(s.gradient.Stops) >= MaxGradientStops {
		return ErrStopCount
	}
	lowest := math.Inf(1)
	for _, st := range s.gradient.Stops {
		lowest = math.Min(lowest, st.Position)
	}
	s.gradient.Stops = append(s.gradient.Stops, colors.GradientStop{
		Color:    s.color.WithAlpha(1),
		Position: lowest + 50,
	})
	return nil
}

// RemoveGradientStop deletes stop i, keeping at least MinGradientStops.
func (s *Session) RemoveGradientStop(i int) error {
	if len(s.gradient.Stops) <= MinGradientStops {
		return ErrStopCount
	}
	if i < 0 || i >= len(s.gradient.Stops) {
		return ErrStopIndex
	}
	s.gradient.Stops = slices.Delete(s.gradient.Stops, i, i+1)
	return nil
}

// UpdateGradientStop replaces stop i.
func (s *Session) UpdateGradientStop(i int, stop colors.GradientStop) error {
	if i < 0 || i >= len(s.gradient.Stops) {
		return ErrStopIndex
	}
	s.gradient.Stops[i] = stop
	return nil
}

// Extracted is the last palette extracted from an image.
func (s *Session) Extracted() []colors.Swatch {
	return slices.Clone(s.extracted)
}

// SetExtracted records an extraction result.
func (s *Session) SetExtracted(sw []colors.Swatch) {
	s.extracted = slices.Clone(sw)
}

// Library is the persisted part of the session.
func (s *Session) Library() models.Library {
	return models.Library{
		Favorites:     s.Favorites(),
		SavedPalettes: s.SavedPalettes(),
	}
}

// Dirty reports whether the library changed since the last Save.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Save writes the library to store.
func (s *Session) Save(ctx context.Context, store Store) error {
	if err := store.SaveLibrary(ctx, s.UserID, s.Library()); err != nil {
		return fmt.Errorf("saving library for %s: %w", s.UserID, err)
	}
	s.dirty = false
	return nil
}

// State is a read-only view of a session for rendering.
type State struct {
	Color          string                `json:"color"`
	Alpha          float64               `json:"alpha"`
	History        []string              `json:"history"`
	CanUndo        bool                  `json:"canUndo"`
	CanRedo        bool                  `json:"canRedo"`
	Favorites      []string              `json:"favorites"`
	IsFavorite     bool                  `json:"isFavorite"`
	CurrentPalette []string              `json:"currentPalette"`
	SavedPalettes  []models.SavedPalette `json:"savedPalettes"`
	Gradient       GradientState         `json:"gradient"`
	Extracted      []string              `json:"extracted"`
}

type GradientState struct {
	Type  string                     `json:"type"`
	Angle float64                    `json:"angle"`
	Stops []models.GradientStopInput `json:"stops"`
	CSS   string                     `json:"css"`
}

// State snapshots the session.
func (s *Session) State() State {
	g := s.Gradient()
	stops := make([]models.GradientStopInput, len(g.Stops))
	for i, st := range g.Stops {
		stops[i] = models.GradientStopInput{Color: st.Color.Hex(), Position: st.Position}
	}
	extracted := make([]string, len(s.extracted))
	for i, sw := range s.extracted {
		extracted[i] = sw.Color.Hex()
	}
	return State{
		Color:          s.color.Hex(),
		Alpha:          s.color.A,
		History:        s.History(),
		CanUndo:        s.CanUndo(),
		CanRedo:        s.CanRedo(),
		Favorites:      nonNil(s.Favorites()),
		IsFavorite:     s.IsFavorite(),
		CurrentPalette: nonNil(s.CurrentPalette()),
		SavedPalettes:  nonNil(s.SavedPalettes()),
		Gradient: GradientState{
			Type:  string(g.Type),
			Angle: g.Angle,
			Stops: stops,
			CSS:   g.CSS(),
		},
		Extracted: extracted,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package studio

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/models"
)

type memoryStore struct {
	saved map[string]models.Library
	err   error
}

func (m *memoryStore) SaveLibrary(_ context.Context, userID string, lib models.Library) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = make(map[string]models.Library)
	}
	m.saved[userID] = lib
	return nil
}

func (m *memoryStore) LoadLibrary(_ context.Context, userID string) (models.Library, error) {
	if m.err != nil {
		return models.Library{}, m.err
	}
	return m.saved[userID], nil
}

type fixedPicker struct{ c colors.Color }

func (p fixedPicker) Pick(context.Context) (colors.Color, error) { return p.c, nil }

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("u", models.Library{})
	assert.Equal(t, "#805AD5", s.Color().Hex())
	assert.Equal(t, []string{"#805AD5"}, s.History())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, "linear-gradient(45deg, #805AD5 0%, #FF6B6B 100%)", s.Gradient().CSS())
}

func TestNewSessionStartColor(t *testing.T) {
	s := NewSession("u", models.Library{StartColor: "#0A141E"})
	assert.Equal(t, "#0A141E", s.Color().Hex())
	assert.Equal(t, []string{"#0A141E"}, s.History())
	assert.Equal(t, "linear-gradient(45deg, #0A141E 0%, #FF6B6B 100%)", s.Gradient().CSS())

	s = NewSession("u", models.Library{StartColor: "not a color"})
	assert.Equal(t, DefaultColor, s.Color())
}

func TestSetHexInvalidKeepsState(t *testing.T) {
	s := NewSession("u", models.Library{})
	before := s.State()

	err := s.SetHex("#12345G")
	assert.ErrorIs(t, err, colors.ErrInvalidFormat)
	assert.Equal(t, before, s.State())

	require.NoError(t, s.SetHex("ff0000"))
	assert.Equal(t, colors.RGB(255, 0, 0), s.Color())
}

func TestHistoryUndoRedo(t *testing.T) {
	s := NewSession("u", models.Library{})
	require.NoError(t, s.SetHex("#FF0000"))
	require.NoError(t, s.SetHex("#00FF00"))
	assert.Equal(t, []string{"#00FF00", "#FF0000", "#805AD5"}, s.History())

	require.True(t, s.Undo())
	assert.Equal(t, "#FF0000", s.Color().Hex())
	require.True(t, s.Undo())
	assert.Equal(t, "#805AD5", s.Color().Hex())
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Equal(t, "#FF0000", s.Color().Hex())

	// Revisiting a known color keeps the history as is.
	require.NoError(t, s.SetHex("#00FF00"))
	assert.Equal(t, []string{"#00FF00", "#FF0000", "#805AD5"}, s.History())

	// A new color resets the undo position.
	require.NoError(t, s.SetHex("#0000FF"))
	assert.False(t, s.CanRedo())
	assert.Equal(t, "#0000FF", s.History()[0])
}

func TestHistoryLimit(t *testing.T) {
	s := NewSession("u", models.Library{})
	for i := 0; i < 30; i++ {
		s.SetColor(colors.RGB(uint8(i), 0, 0))
	}
	h := s.History()
	assert.Len(t, h, HistoryLimit)
	assert.Equal(t, "#1D0000", h[0])
}

func TestFavorites(t *testing.T) {
	s := NewSession("u", models.Library{})
	assert.True(t, s.AddFavorite())
	assert.False(t, s.AddFavorite())
	assert.True(t, s.IsFavorite())
	assert.True(t, s.Dirty())

	for i := 0; i < 40; i++ {
		s.SetColor(colors.RGB(0, uint8(i), 0))
		s.AddFavorite()
	}
	favs := s.Favorites()
	assert.Len(t, favs, FavoritesLimit)
	assert.Equal(t, "#002700", favs[0])

	assert.True(t, s.RemoveFavorite("#002700"))
	assert.False(t, s.RemoveFavorite("#002700"))
}

func TestPaletteBuilding(t *testing.T) {
	s := NewSession("u", models.Library{})
	assert.True(t, s.AddToPalette())
	assert.False(t, s.AddToPalette())

	for i := 0; i < 20; i++ {
		s.SetColor(colors.RGB(0, 0, uint8(i)))
		s.AddToPalette()
	}
	assert.Len(t, s.CurrentPalette(), PaletteLimit)
	assert.True(t, s.RemoveFromPalette(0))
	assert.False(t, s.RemoveFromPalette(42))

	_, err := s.SavePalette("   ")
	assert.ErrorIs(t, err, ErrPaletteName)

	p, err := s.SavePalette("blues")
	require.NoError(t, err)
	assert.Equal(t, "blues", p.Name)
	assert.Equal(t, "u", p.UserID)
	assert.Len(t, p.Colors, PaletteLimit-1)
	assert.Empty(t, s.CurrentPalette())

	_, err = s.SavePalette("again")
	assert.ErrorIs(t, err, colors.ErrEmptyInput)

	require.NoError(t, s.DeletePalette(p.ID))
	assert.ErrorIs(t, s.DeletePalette(p.ID), ErrNoPalette)
}

func TestStorePalette(t *testing.T) {
	s := NewSession("u", models.Library{})
	p, err := s.StorePalette(" warm ", []string{"ff0000", "#FFA500"})
	require.NoError(t, err)
	assert.Equal(t, "warm", p.Name)
	assert.Equal(t, []string{"#FF0000", "#FFA500"}, p.Colors)
	assert.Equal(t, p.ID, s.SavedPalettes()[0].ID)

	_, err = s.StorePalette("bad", []string{"#XYZXYZ"})
	assert.ErrorIs(t, err, colors.ErrInvalidFormat)
	_, err = s.StorePalette("none", nil)
	assert.ErrorIs(t, err, colors.ErrEmptyInput)
	_, err = s.StorePalette("many", make([]string, PaletteLimit+1))
	assert.ErrorIs(t, err, ErrPaletteFull)
	assert.Len(t, s.SavedPalettes(), 1)
}

func TestAddFavoriteColor(t *testing.T) {
	s := NewSession("u", models.Library{})
	assert.True(t, s.AddFavoriteColor(colors.White))
	assert.False(t, s.AddFavoriteColor(colors.White))
	assert.Equal(t, DefaultColor, s.Color())
	assert.Equal(t, []string{"#FFFFFF"}, s.Favorites())
}

func TestGradientEditor(t *testing.T) {
	s := NewSession("u", models.Library{})
	require.NoError(t, s.SetHex("#000000"))
	assert.Equal(t, colors.Black, s.Gradient().Stops[0].Color)

	require.NoError(t, s.AddGradientStop())
	assert.Equal(t, 50.0, s.Gradient().Stops[2].Position)
	require.NoError(t, s.AddGradientStop())
	require.NoError(t, s.AddGradientStop())
	assert.ErrorIs(t, s.AddGradientStop(), ErrStopCount)

	assert.ErrorIs(t, s.RemoveGradientStop(9), ErrStopIndex)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.RemoveGradientStop(1))
	}
	assert.ErrorIs(t, s.RemoveGradientStop(0), ErrStopCount)

	require.NoError(t, s.UpdateGradientStop(1, colors.GradientStop{Color: colors.White, Position: 30}))
	assert.ErrorIs(t, s.UpdateGradientStop(5, colors.GradientStop{}), ErrStopIndex)

	s.SetGradient(colors.Radial, 10)
	assert.Equal(t, "radial-gradient(circle, #000000 0%, #FFFFFF 30%)", s.Gradient().CSS())

	g := s.Gradient()
	g.Stops[0].Position = 99
	assert.Equal(t, 0.0, s.Gradient().Stops[0].Position)
}

func TestPick(t *testing.T) {
	s := NewSession("u", models.Library{})
	err := s.Pick(context.Background(), nil)
	assert.ErrorIs(t, err, colors.ErrUnsupportedCapability)
	assert.Equal(t, DefaultColor, s.Color())

	require.NoError(t, s.Pick(context.Background(), fixedPicker{colors.White}))
	assert.Equal(t, colors.White, s.Color())
}

func TestRandom(t *testing.T) {
	s := NewSession("u", models.Library{})
	c := s.Random(rand.New(rand.NewSource(1)))
	assert.Equal(t, c, s.Color())
	assert.Equal(t, c.Hex(), s.History()[0])
}

func TestSaveIsExplicit(t *testing.T) {
	store := &memoryStore{}
	s := NewSession("u", models.Library{Favorites: []string{"#111111"}})
	s.AddFavorite()
	assert.Empty(t, store.saved, "edits must not persist on their own")

	require.NoError(t, s.Save(context.Background(), store))
	assert.False(t, s.Dirty())
	assert.Equal(t, []string{"#805AD5", "#111111"}, store.saved["u"].Favorites)

	store.err = errors.New("disk full")
	s.AddFavorite()
	err := s.Save(context.Background(), store)
	assert.ErrorContains(t, err, "disk full")
}

func TestState(t *testing.T) {
	s := NewSession("u", models.Library{})
	s.SetExtracted([]colors.Swatch{{Color: colors.White, Count: 3}})
	st := s.State()
	assert.Equal(t, "#805AD5", st.Color)
	assert.Equal(t, []string{}, st.Favorites)
	assert.Equal(t, []string{"#FFFFFF"}, st.Extracted)
	assert.Len(t, st.Gradient.Stops, 2)
}

func TestRegistry(t *testing.T) {
	store := &memoryStore{saved: map[string]models.Library{"u": {Favorites: []string{"#ABCDEF"}}}}
	reg := NewRegistry(store)

	ctx := context.Background()
	require.NoError(t, reg.With(ctx, "u", func(s *Session) error {
		assert.Equal(t, []string{"#ABCDEF"}, s.Favorites())
		return s.SetHex("#010101")
	}))
	require.NoError(t, reg.With(ctx, "u", func(s *Session) error {
		assert.Equal(t, "#010101", s.Color().Hex())
		return nil
	}))

	a, err := reg.Extraction(ctx, "u")
	require.NoError(t, err)
	b, err := reg.Extraction(ctx, "u")
	require.NoError(t, err)
	assert.Same(t, a, b)

	reg.Forget("u")
	require.NoError(t, reg.With(ctx, "u", func(s *Session) error {
		assert.Equal(t, DefaultColor, s.Color())
		return nil
	}))

	store.err = fmt.Errorf("db down")
	err = reg.With(ctx, "other", func(*Session) error { return nil })
	assert.ErrorContains(t, err, "db down")
}

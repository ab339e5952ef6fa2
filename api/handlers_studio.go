package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/studio"
)

type studioColorRequest struct {
	Hex string   `json:"hex"`
	R   *int     `json:"r"`
	G   *int     `json:"g"`
	B   *int     `json:"b"`
	A   *float64 `json:"a"`
}

type studioIndexRequest struct {
	Index int `json:"index"`
}

type studioPaletteRequest struct {
	Name string `json:"name"`
}

type studioGradientRequest struct {
	Type  string  `json:"type"`
	Angle float64 `json:"angle"`
}

type studioStopRequest struct {
	Index    int     `json:"index"`
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

func channel(v *int) (uint8, error) {
	if v == nil || *v < 0 || *v > 255 {
		return 0, fmt.Errorf("%w: r, g and b must be between 0 and 255", colors.ErrInvalidFormat)
	}
	return uint8(*v), nil
}

// studioAction decodes an optional JSON body into a T, runs fn on the
// session and answers with the resulting state
func studioAction[T any](app *Application, w http.ResponseWriter, r *http.Request, fn func(*studio.Session, T) error) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		app.badJSONRequest(w, r, err)
		return
	}

	var state studio.State
	if !app.withSession(w, r, func(s *studio.Session) error {
		if err := fn(s, req); err != nil {
			return err
		}
		state = s.State()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GET /v1/studio
func (app *Application) getStudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	var state studio.State
	if !app.withSession(w, r, func(s *studio.Session) error {
		state = s.State()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// POST /v1/studio/color - {hex} or {r, g, b, a}
func (app *Application) setStudioColor(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioColorRequest) error {
		if req.Hex != "" {
			return s.SetHex(req.Hex)
		}

		red, err := channel(req.R)
		if err != nil {
			return err
		}
		green, err := channel(req.G)
		if err != nil {
			return err
		}
		blue, err := channel(req.B)
		if err != nil {
			return err
		}
		alpha := s.Color().A
		if req.A != nil {
			alpha = *req.A
		}
		s.SetChannels(red, green, blue, alpha)
		return nil
	})
}

// POST /v1/studio/random
func (app *Application) randomStudioColor(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		app.random(s.Random)
		return nil
	})
}

// POST /v1/studio/undo
func (app *Application) undoStudio(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		s.Undo()
		return nil
	})
}

// POST /v1/studio/redo
func (app *Application) redoStudio(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		s.Redo()
		return nil
	})
}

// POST /v1/studio/favorite - Adds the current color to the favorites
func (app *Application) favoriteStudioColor(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		s.AddFavorite()
		return nil
	})
}

// POST /v1/studio/palette/add
func (app *Application) addToStudioPalette(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		if !s.AddToPalette() && len(s.CurrentPalette()) >= studio.PaletteLimit {
			return studio.ErrPaletteFull
		}
		return nil
	})
}

// POST /v1/studio/palette/remove - {index}
func (app *Application) removeFromStudioPalette(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioIndexRequest) error {
		if !s.RemoveFromPalette(req.Index) {
			return fmt.Errorf("%w: %d", studio.ErrPaletteIdx, req.Index)
		}
		return nil
	})
}

// POST /v1/studio/palette/save - {name}
func (app *Application) saveStudioPalette(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioPaletteRequest) error {
		_, err := s.SavePalette(req.Name)
		return err
	})
}

// POST /v1/studio/gradient - {type, angle}
func (app *Application) setStudioGradient(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioGradientRequest) error {
		t, err := colors.ParseGradientType(req.Type)
		if err != nil {
			return err
		}
		s.SetGradient(t, req.Angle)
		return nil
	})
}

// POST /v1/studio/gradient/stops/add
func (app *Application) addStudioGradientStop(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		return s.AddGradientStop()
	})
}

// POST /v1/studio/gradient/stops/remove - {index}
func (app *Application) removeStudioGradientStop(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioIndexRequest) error {
		return s.RemoveGradientStop(req.Index)
	})
}

// POST /v1/studio/gradient/stops/update - {index, color, position}
func (app *Application) updateStudioGradientStop(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, req studioStopRequest) error {
		c, err := colors.ParseHexLoose(req.Color)
		if err != nil {
			return err
		}
		return s.UpdateGradientStop(req.Index, colors.GradientStop{Color: c, Position: req.Position})
	})
}

// POST /v1/studio/pick - The server has no screen to sample
func (app *Application) pickStudioColor(w http.ResponseWriter, r *http.Request) {
	studioAction(app, w, r, func(s *studio.Session, _ struct{}) error {
		return s.Pick(r.Context(), nil)
	})
}

// POST /v1/studio/extract - multipart "image"; the swatches are kept in the
// session
func (app *Application) extractStudioPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	user := contextGetUser(r)
	extraction, err := app.Studio.Extraction(r.Context(), user.UserID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	swatches, ok := app.runExtraction(w, r, extraction.Run)
	if !ok {
		return
	}

	var state studio.State
	if !app.withSession(w, r, func(s *studio.Session) error {
		s.SetExtracted(swatches)
		state = s.State()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, state)
}

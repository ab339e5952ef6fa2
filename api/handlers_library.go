package api

import (
	"encoding/json"
	"net/http"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/export"
	"github.com/color-studio/api/models"
	"github.com/color-studio/api/studio"
)

// withSession runs fn on the caller's studio session. When fn changed the
// library the session is saved before returning. Errors are written to w
// and reported as false.
func (app *Application) withSession(w http.ResponseWriter, r *http.Request, fn func(*studio.Session) error) bool {
	user := contextGetUser(r)
	err := app.Studio.With(r.Context(), user.UserID, func(s *studio.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		if s.Dirty() {
			return s.Save(r.Context(), app.LibraryRepo)
		}
		return nil
	})
	if err != nil {
		app.colorError(w, r, err)
		return false
	}
	return true
}

// GET /v1/users/me/favorites
func (app *Application) getFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	var favorites []string
	if !app.withSession(w, r, func(s *studio.Session) error {
		favorites = s.Favorites()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": nonNilStrings(favorites),
	})
}

// POST /v1/users/me/favorites/add
func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	c, err := colors.ParseHexLoose(req.Hex)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	var response models.FavoriteResponse
	if !app.withSession(w, r, func(s *studio.Session) error {
		response.Added = s.AddFavoriteColor(c)
		response.Favorites = s.Favorites()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// POST /v1/users/me/favorites/remove
func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	c, err := colors.ParseHexLoose(req.Hex)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	var removed bool
	var favorites []string
	if !app.withSession(w, r, func(s *studio.Session) error {
		removed = s.RemoveFavorite(c.Hex())
		favorites = s.Favorites()
		return nil
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"removed":   removed,
		"favorites": nonNilStrings(favorites),
	})
}

// GET /v1/users/me/palettes
func (app *Application) getPalettes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	var palettes []models.SavedPalette
	if !app.withSession(w, r, func(s *studio.Session) error {
		palettes = s.SavedPalettes()
		return nil
	}) {
		return
	}
	if palettes == nil {
		palettes = []models.SavedPalette{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"palettes": palettes,
	})
}

// POST /v1/users/me/palettes/save
func (app *Application) savePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req models.SavePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	var saved models.SavedPalette
	if !app.withSession(w, r, func(s *studio.Session) error {
		var err error
		saved, err = s.StorePalette(req.Name, req.Colors)
		return err
	}) {
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

// POST /v1/users/me/palettes/delete
func (app *Application) deletePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req models.DeletePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if !app.withSession(w, r, func(s *studio.Session) error {
		return s.DeletePalette(req.ID)
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": req.ID,
	})
}

// GET /v1/users/me/export?format=txt|json|css|scss - Downloads the color
// history; the json format also carries the library
func (app *Application) exportColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.TXT)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var data export.Data
	if !app.withSession(w, r, func(s *studio.Session) error {
		data = export.Data{
			Colors:        s.History(),
			Favorites:     s.Favorites(),
			SavedPalettes: s.SavedPalettes(),
		}
		return nil
	}) {
		return
	}

	file, err := export.Render(format, data)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(file.Body)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

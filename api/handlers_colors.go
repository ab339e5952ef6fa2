package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/models"
)

// hexQuery reads a color from the query string. The leading '#' is optional
// so clients do not have to escape it.
func hexQuery(r *http.Request, key string) (colors.Color, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return colors.Color{}, fmt.Errorf("%w: %s is required", colors.ErrInvalidFormat, key)
	}
	return colors.ParseHexLoose(v)
}

// floatQuery reads an optional number from the query string
func floatQuery(r *http.Request, key string, fallback float64) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func (app *Application) details(c colors.Color) models.ColorDetails {
	self := app.Config.PublicURL + "/v1/colors/inspect?" + url.Values{"hex": {c.Clean()}}.Encode()
	share, err := colors.ShareURL(app.Config.PublicURL+"/v1/share", c)
	if err != nil {
		log.Printf("error building share link for %s: %v", c.Hex(), err)
	}
	return models.NewColorDetails(c, self, share)
}

// GET /v1/colors/inspect?hex=
func (app *Application) inspectColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := hexQuery(r, "hex")
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	alpha, err := floatQuery(r, "alpha", 1)
	if err != nil || alpha < 0 || alpha > 1 {
		app.badRequest(w, r, errors.New("alpha must be a number between 0 and 1"))
		return
	}

	writeJSON(w, http.StatusOK, app.details(c.WithAlpha(alpha)))
}

// GET /v1/colors/harmony?hex=
func (app *Application) getHarmonies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := hexQuery(r, "hex")
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	response := models.HarmonyResponse{Base: c.Hex()}
	for _, set := range colors.Harmonies(c) {
		response.Harmonies = append(response.Harmonies, models.HarmonySet{
			Kind:   string(set.Kind),
			Colors: models.HexList(set.Colors),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// GET /v1/colors/contrast?fg=&bg=
func (app *Application) checkContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	fg, err := hexQuery(r, "fg")
	if err != nil {
		app.colorError(w, r, err)
		return
	}
	bg, err := hexQuery(r, "bg")
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	ratio := colors.ContrastRatio(fg, bg)
	rating := colors.Rating(ratio)
	writeJSON(w, http.StatusOK, models.ContrastResponse{
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Ratio:      ratio,
		Rating:     string(rating.Level),
		Badge:      rating.Badge,
	})
}

// GET /v1/colors/simulate?hex=&type= - Without a type every vision type is
// simulated
func (app *Application) simulateVision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := hexQuery(r, "hex")
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	types := colors.VisionTypes()
	if name := r.URL.Query().Get("type"); name != "" {
		vt, err := colors.ParseVisionType(name)
		if err != nil {
			app.colorError(w, r, err)
			return
		}
		types = []colors.VisionType{vt}
	}

	responses := make([]models.SimulationResponse, len(types))
	for i, vt := range types {
		responses[i] = models.SimulationResponse{
			Input:  c.Hex(),
			Type:   string(vt),
			Result: colors.Simulate(c, vt).Hex(),
		}
	}

	writeJSON(w, http.StatusOK, responses)
}

// GET /v1/colors/mix?a=&b=&ratio= - ratio is the percentage of b
func (app *Application) mixColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	a, err := hexQuery(r, "a")
	if err != nil {
		app.colorError(w, r, err)
		return
	}
	b, err := hexQuery(r, "b")
	if err != nil {
		app.colorError(w, r, err)
		return
	}
	ratio, err := floatQuery(r, "ratio", 50)
	if err != nil || ratio < 0 || ratio > 100 {
		app.badRequest(w, r, errors.New("ratio must be a percentage between 0 and 100"))
		return
	}

	writeJSON(w, http.StatusOK, models.MixResponse{
		A:      a.Hex(),
		B:      b.Hex(),
		Ratio:  ratio,
		Result: colors.Mix(a, b, ratio).Hex(),
	})
}

// gradientFromRequest validates a gradient body. The type defaults to linear.
func gradientFromRequest(req models.GradientRequest) (colors.Gradient, error) {
	g := colors.Gradient{Type: colors.Linear, Angle: req.Angle}
	if req.Type != "" {
		t, err := colors.ParseGradientType(req.Type)
		if err != nil {
			return colors.Gradient{}, err
		}
		g.Type = t
	}

	for _, stop := range req.Stops {
		c, err := colors.ParseHexLoose(stop.Color)
		if err != nil {
			return colors.Gradient{}, err
		}
		g.Stops = append(g.Stops, colors.GradientStop{Color: c, Position: stop.Position})
	}
	return g, nil
}

// POST /v1/colors/gradient
func (app *Application) buildGradient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	var req models.GradientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	g, err := gradientFromRequest(req)
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GradientResponse{CSS: g.CSS()})
}

// GET /v1/colors/css?hex=&property=
func (app *Application) getCSSSnippet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := hexQuery(r, "hex")
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	property := r.URL.Query().Get("property")
	if property == "" {
		property = "background"
	}

	// The gradient starts at c; type and angle are optional
	var gradient *colors.Gradient
	gradientType := r.URL.Query().Get("type")
	if property == "gradient" || gradientType != "" {
		g := colors.DefaultGradient(c)
		if gradientType != "" {
			if g.Type, err = colors.ParseGradientType(gradientType); err != nil {
				app.colorError(w, r, err)
				return
			}
		}
		if g.Angle, err = floatQuery(r, "angle", g.Angle); err != nil {
			app.badRequest(w, r, err)
			return
		}
		gradient = &g
	}

	writeJSON(w, http.StatusOK, models.CSSSnippetResponse{
		Property: property,
		Code:     colors.CSSSnippet(property, c, gradient),
	})
}

// GET /v1/colors/random
func (app *Application) getRandomColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	writeJSON(w, http.StatusOK, app.details(app.random(colors.Random)))
}

// GET /v1/colors/names
func (app *Application) getColorNames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	writeJSON(w, http.StatusOK, colors.Names.Entries())
}

// GET /v1/palettes/presets?name=
func (app *Application) getPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusOK, colors.Presets())
		return
	}

	preset, ok := colors.LookupPreset(name)
	if !ok {
		app.notFound(w, r, fmt.Errorf("no preset palette named %q", name))
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

// GET /v1/share?color=RRGGBB - Resolves a shared link
func (app *Application) openShared(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := colors.ParseShareParam(r.URL.Query().Get(colors.ShareParam))
	if err != nil {
		app.colorError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, app.details(c))
}

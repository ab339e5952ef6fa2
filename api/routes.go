package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "wss://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string, devMode bool) bool {
	cleanedRequest := cleanOrigin(origin)

	if devMode && localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || isAllowedOrigin(origin, app.Config.AllowedOrigins, app.Config.DevMode) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/auth/signup", app.signup)
	mux.HandleFunc("/v1/auth/login", app.login)
	mux.HandleFunc("/v1/colors/inspect", app.inspectColor)
	mux.HandleFunc("/v1/colors/harmony", app.getHarmonies)
	mux.HandleFunc("/v1/colors/contrast", app.checkContrast)
	mux.HandleFunc("/v1/colors/simulate", app.simulateVision)
	mux.HandleFunc("/v1/colors/mix", app.mixColors)
	mux.HandleFunc("/v1/colors/gradient", app.buildGradient)
	mux.HandleFunc("/v1/colors/css", app.getCSSSnippet)
	mux.HandleFunc("/v1/colors/random", app.getRandomColor)
	mux.HandleFunc("/v1/colors/daily", app.getDailyColor)
	mux.HandleFunc("/v1/colors/daily/all", app.getAllDailyColors)
	mux.HandleFunc("/v1/colors/names", app.getColorNames)
	mux.HandleFunc("/v1/palettes/presets", app.getPresets)
	mux.HandleFunc("/v1/extract", app.extractPalette)
	mux.HandleFunc("/v1/share", app.openShared)

	// Authenticated endpoints
	mux.HandleFunc("/v1/auth/logout", app.authenticate(app.logout))
	mux.HandleFunc("/v1/users/me", app.authenticate(app.getCurrentUser))
	mux.HandleFunc("/v1/users/me/update", app.authenticate(app.updateCurrentUser))
	mux.HandleFunc("/v1/users/me/favorites", app.authenticate(app.getFavorites))
	mux.HandleFunc("/v1/users/me/favorites/add", app.authenticate(app.addFavorite))
	mux.HandleFunc("/v1/users/me/favorites/remove", app.authenticate(app.removeFavorite))
	mux.HandleFunc("/v1/users/me/palettes", app.authenticate(app.getPalettes))
	mux.HandleFunc("/v1/users/me/palettes/save", app.authenticate(app.savePalette))
	mux.HandleFunc("/v1/users/me/palettes/delete", app.authenticate(app.deletePalette))
	mux.HandleFunc("/v1/users/me/export", app.authenticate(app.exportColors))

	// Studio endpoints
	mux.HandleFunc("/v1/studio", app.authenticate(app.getStudio))
	mux.HandleFunc("/v1/studio/color", app.authenticate(app.setStudioColor))
	mux.HandleFunc("/v1/studio/random", app.authenticate(app.randomStudioColor))
	mux.HandleFunc("/v1/studio/undo", app.authenticate(app.undoStudio))
	mux.HandleFunc("/v1/studio/redo", app.authenticate(app.redoStudio))
	mux.HandleFunc("/v1/studio/favorite", app.authenticate(app.favoriteStudioColor))
	mux.HandleFunc("/v1/studio/palette/add", app.authenticate(app.addToStudioPalette))
	mux.HandleFunc("/v1/studio/palette/remove", app.authenticate(app.removeFromStudioPalette))
	mux.HandleFunc("/v1/studio/palette/save", app.authenticate(app.saveStudioPalette))
	mux.HandleFunc("/v1/studio/gradient", app.authenticate(app.setStudioGradient))
	mux.HandleFunc("/v1/studio/gradient/stops/add", app.authenticate(app.addStudioGradientStop))
	mux.HandleFunc("/v1/studio/gradient/stops/remove", app.authenticate(app.removeStudioGradientStop))
	mux.HandleFunc("/v1/studio/gradient/stops/update", app.authenticate(app.updateStudioGradientStop))
	mux.HandleFunc("/v1/studio/extract", app.authenticate(app.extractStudioPalette))
	mux.HandleFunc("/v1/studio/pick", app.authenticate(app.pickStudioColor))

	// Admin endpoints
	mux.HandleFunc("/v1/users", app.verifyPermissions(app.getAllUsers))
	mux.HandleFunc("/v1/admin/colors/generate", app.verifyPermissions(app.generateDailyColor))

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", wrapMuxWithCorsAndOrigins(mux, app))

	return finalMux
}

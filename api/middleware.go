package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/color-studio/api/models"
)

type contextKey string

const (
	userContextKey        = contextKey("user")
	fingerprintContextKey = contextKey("fingerprint")
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Client-Key, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// getUserFromJWT resolves the user behind the access token cookie and checks
// that the device it was issued to is still registered. The device
// fingerprint is returned alongside the user.
func (app *Application) getUserFromJWT(r *http.Request) (models.User, string, error) {
	cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME)
	if err != nil {
		return models.User{}, "", errors.New("no JWT cookie found")
	}

	claims, err := models.ValidateJWTToken(cookie.Value, app.Config.JwtSecret, models.JWT.ACCESS_SCOPE)
	if err != nil {
		return models.User{}, "", err
	}

	device, err := app.UserRepo.GetDeviceByFingerprint(claims.UserID, claims.DeviceFingerprint)
	if err != nil {
		return models.User{}, "", errors.New("device not found")
	}

	if time.Now().After(device.Expiry) {
		return models.User{}, "", errors.New("device expired")
	}

	user, err := app.UserRepo.Get(claims.UserID)
	return user, claims.DeviceFingerprint, err
}

func contextSetUser(r *http.Request, user models.User, fingerprint string) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(context.WithValue(ctx, fingerprintContextKey, fingerprint))
}

// contextGetFingerprint is the device fingerprint of the access token
func contextGetFingerprint(r *http.Request) string {
	fingerprint, _ := r.Context().Value(fingerprintContextKey).(string)
	return fingerprint
}

// contextGetUser returns the user stored by authenticate
func contextGetUser(r *http.Request) models.User {
	user, ok := r.Context().Value(userContextKey).(models.User)
	if !ok {
		panic("missing user value in request context")
	}
	return user
}

// authenticate that the user exists
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, fingerprint, err := app.getUserFromJWT(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		if !user.Approved {
			app.invalidAuthorization(w, r, errors.New("user not approved"))
			return
		}

		h.ServeHTTP(w, contextSetUser(r, user, fingerprint))
	}
}

// Verify user has Admin permissions
func (app *Application) verifyPermissions(h http.HandlerFunc) http.HandlerFunc {
	return app.authenticate(func(w http.ResponseWriter, r *http.Request) {
		if contextGetUser(r).Kind != models.Admin {
			app.forbidden(w, r, ErrInvalidPrivelege)
			return
		}

		h.ServeHTTP(w, r)
	})
}

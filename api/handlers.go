package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Color Studio API")
}

// POST /v1/auth/signup
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	userSignup := &models.UserSignupRequest{}
	if errParsingJson := json.NewDecoder(r.Body).Decode(userSignup); errParsingJson != nil {
		app.badJSONRequest(w, r, errParsingJson)
		return
	}

	if len(userSignup.Username) == 0 {
		app.badRequest(w, r, errors.New("username is required"))
		return
	}
	if strings.ContainsRune(userSignup.Username, ' ') {
		app.badRequest(w, r, errors.New("username cannot contain spaces"))
		return
	}
	if len(userSignup.Password) < 8 {
		app.badRequest(w, r, errors.New("password must be at least 8 characters"))
		return
	}

	newUser, newUserErr := models.NewUser(*userSignup)
	if newUserErr != nil {
		app.internalServerError(w, r, newUserErr)
		return
	}

	if _, getErr := app.UserRepo.GetUserByEmail(newUser.Email); getErr == nil {
		app.userAlreadyExists(w, r, getErr)
		return
	}

	if _, getUsernameErr := app.UserRepo.GetUserByUsername(newUser.Username); getUsernameErr == nil {
		app.badRequest(w, r, errors.New("username already taken"))
		return
	}

	storedUser, errStoringNewUser := app.UserRepo.Create(newUser)
	if errStoringNewUser != nil {
		app.internalServerError(w, r, errStoringNewUser)
		return
	}

	writeJSON(w, http.StatusOK, storedUser)
}

func (app *Application) setTokenCookie(w http.ResponseWriter, name, value string, expiry time.Time) {
	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  expiry,
	})
}

// POST /v1/auth/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.Credentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if creds.DeviceFingerprint == "" {
		app.badJSONRequest(w, r, errors.New("deviceFingerprint is required"))
		return
	}

	user, err := app.UserRepo.ValidateAndGetUser(*creds)
	if err != nil {
		app.invalidCredentials(w, r, err)
		return
	}

	if !user.Approved {
		app.invalidCredentials(w, r, errors.New("user not yet approved"))
		return
	}

	deviceExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtRefreshDuration))
	device := models.UserDevice{
		UserID:      user.UserID,
		Fingerprint: creds.DeviceFingerprint,
		DeviceData:  r.Header.Get("User-Agent"),
		Expiry:      deviceExpiry,
	}

	if err := app.UserRepo.CreateDevice(device); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	accessToken, err := models.SignToken(user, creds.DeviceFingerprint, models.JWT.ACCESS_SCOPE, accessExpiry, app.Config.JwtSecret)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	refreshToken, err := models.SignToken(user, creds.DeviceFingerprint, models.JWT.REFRESH_SCOPE, deviceExpiry, app.Config.JwtSecret)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setTokenCookie(w, models.JWT.ACCESS_COOKIE_NAME, accessToken, accessExpiry)
	app.setTokenCookie(w, models.JWT.REFRESH_COOKIE_NAME, refreshToken, deviceExpiry)

	writeJSON(w, http.StatusOK, user)
}

// POST /v1/auth/logout - Drops the device, the studio session and the cookies
func (app *Application) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	user := contextGetUser(r)
	if fingerprint := contextGetFingerprint(r); fingerprint != "" {
		device, err := app.UserRepo.GetDeviceByFingerprint(user.UserID, fingerprint)
		if err == nil {
			if err := app.UserRepo.DeleteDevice(device.ID); err != nil {
				app.internalServerError(w, r, err)
				return
			}
		}
	}

	app.Studio.Forget(user.UserID)

	app.setTokenCookie(w, models.JWT.ACCESS_COOKIE_NAME, "", time.Unix(0, 0))
	app.setTokenCookie(w, models.JWT.REFRESH_COOKIE_NAME, "", time.Unix(0, 0))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out",
	})
}

// GET /v1/users/me - Get current authenticated user
func (app *Application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contextGetUser(r))
}

// PUT /v1/users/me/update - Update current authenticated user
func (app *Application) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requirePutMethod(w, r, ErrPUT)
		return
	}

	currentUser := contextGetUser(r)

	updateReq := &models.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(updateReq); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if updateReq.Username != "" {
		currentUser.Username = updateReq.Username
	}
	if updateReq.Email != "" {
		currentUser.Email = updateReq.Email
	}
	if updateReq.StartColor != nil {
		if err := currentUser.SetStartColor(*updateReq.StartColor); err != nil {
			app.colorError(w, r, err)
			return
		}
	}

	updatedUser, updateErr := app.UserRepo.Update(currentUser)
	if updateErr != nil {
		app.internalServerError(w, r, updateErr)
		return
	}

	writeJSON(w, http.StatusOK, updatedUser)
}

// GET /v1/users - Get all users
func (app *Application) getAllUsers(w http.ResponseWriter, r *http.Request) {
	users, retrieveErr := app.UserRepo.GetAllUsers()
	if retrieveErr != nil {
		app.internalServerError(w, r, retrieveErr)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GET /v1/colors/daily - Get today's color
func (app *Application) getDailyColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	dailyColor, err := app.DailyColorRepo.GetToday()
	if err != nil {
		var noRows datastore.NoRowsError
		if errors.As(err, &noRows) {
			app.notFound(w, r, errors.New("no color has been picked for today yet"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dailyColor.Response())
}

// GET /v1/colors/daily/all - Get every color of the day, newest first
func (app *Application) getAllDailyColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	dailyColors, err := app.DailyColorRepo.GetAll()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	responses := make([]models.DailyColorResponse, 0, len(dailyColors))
	for _, dc := range dailyColors {
		responses = append(responses, dc.Response())
	}

	writeJSON(w, http.StatusOK, responses)
}

// POST /v1/admin/colors/generate - Pick today's color now (Admin only)
func (app *Application) generateDailyColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	today := models.NormalizeDay(time.Now())

	existingColor, err := app.DailyColorRepo.GetByDate(today)
	if err == nil && existingColor.ID != 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Daily color already exists for today",
			"color":   existingColor.Response(),
		})
		return
	}

	savedColor, err := app.Scheduler.Generate(today)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Successfully generated daily color",
		"color":   savedColor.Response(),
	})
}

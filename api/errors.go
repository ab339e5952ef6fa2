package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/studio"
)

// Helper function to get caller information
func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo"`
}

var ErrGET = fmt.Errorf("GET method required for this endpoint")
var ErrPOST = fmt.Errorf("POST method required for this endpoint")
var ErrPUT = fmt.Errorf("PUT method required for this endpoint")
var ErrInvalidPrivelege = fmt.Errorf("invalid authentication privileges")

func writeHandlerError(w http.ResponseWriter, status int, handlerErr HandlerError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handlerErr)
}

func (app *Application) invalidCredentials(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authorizing User",
		Description:      err.Error(),
		PossibleSolution: "Retry with proper credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) invalidAuthorization(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authenticating for Endpoint",
		Description:      "Invalid Authentication",
		PossibleSolution: "Check your headers and ensure you're submitting a valid token",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) forbidden(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusForbidden, HandlerError{
		ErrorName:        "Insufficient Privileges",
		Description:      err.Error(),
		PossibleSolution: "Sign in with an administrator account",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) requireGetMethod(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Allow", http.MethodGet)
	writeHandlerError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        "GET Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use GET method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) requirePostMethod(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Allow", http.MethodPost)
	writeHandlerError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        "Post Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use POST method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) requirePutMethod(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Allow", http.MethodPut)
	writeHandlerError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        "PUT Method Required",
		Description:      err.Error(),
		PossibleSolution: "Use PUT method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badJSONRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Error Parsing JSON",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusInternalServerError, HandlerError{
		ErrorName:        "Internal Server Error",
		Description:      err.Error(),
		PossibleSolution: "Internal Server Error requiring support",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) userAlreadyExists(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusConflict, HandlerError{
		ErrorName:        "User Exists",
		Description:      "There is already a user with this email address",
		PossibleSolution: "Advise user to login with their credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Bad Request",
		Description:      err.Error(),
		PossibleSolution: "Check your request parameters",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) notFound(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusNotFound, HandlerError{
		ErrorName:        "Not Found",
		Description:      err.Error(),
		PossibleSolution: "Check the identifier you requested",
		CallerInfo:       getCallerInfo(),
	})
}

// colorError maps the color and studio sentinel errors to a status code.
// Anything it does not recognize is a 500.
func (app *Application) colorError(w http.ResponseWriter, r *http.Request, err error) {
	handlerErr := HandlerError{Description: err.Error(), CallerInfo: getCallerInfo()}
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, colors.ErrInvalidFormat):
		handlerErr.ErrorName = "Invalid Color Format"
		handlerErr.PossibleSolution = "Send colors as #RRGGBB"
	case errors.Is(err, colors.ErrEmptyInput):
		handlerErr.ErrorName = "Empty Input"
		handlerErr.PossibleSolution = "Send at least one color or pixel"
	case errors.Is(err, colors.ErrUnsupportedCapability):
		status = http.StatusNotImplemented
		handlerErr.ErrorName = "Unsupported Capability"
		handlerErr.PossibleSolution = "Pick the color on the client and send it as hex"
	case errors.Is(err, studio.ErrSuperseded):
		status = http.StatusConflict
		handlerErr.ErrorName = "Extraction Superseded"
		handlerErr.PossibleSolution = "Use the result of the most recent upload"
	case errors.Is(err, studio.ErrStopCount), errors.Is(err, studio.ErrStopIndex):
		handlerErr.ErrorName = "Invalid Gradient Stop"
		handlerErr.PossibleSolution = "Keep between 2 and 5 stops and use an existing index"
	case errors.Is(err, studio.ErrPaletteName):
		handlerErr.ErrorName = "Missing Palette Name"
		handlerErr.PossibleSolution = "Name the palette"
	case errors.Is(err, studio.ErrPaletteIdx):
		handlerErr.ErrorName = "Invalid Palette Index"
		handlerErr.PossibleSolution = "Use the index of a color in the current palette"
	case errors.Is(err, studio.ErrPaletteFull):
		handlerErr.ErrorName = "Palette Full"
		handlerErr.PossibleSolution = "Keep palettes at 10 colors or fewer"
	case errors.Is(err, studio.ErrNoPalette):
		status = http.StatusNotFound
		handlerErr.ErrorName = "Palette Not Found"
		handlerErr.PossibleSolution = "Check the palette id"
	default:
		status = http.StatusInternalServerError
		handlerErr.ErrorName = "Internal Server Error"
		handlerErr.PossibleSolution = "Internal Server Error requiring support"
	}

	writeHandlerError(w, status, handlerErr)
}

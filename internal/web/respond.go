package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/preferences"
)

var (
	errNoSession       = errors.New("sign in with Spotify first")
	errSpotifyDisabled = errors.New("spotify integration is not configured")
	errBadRequest      = errors.New("bad request")
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// messageBody acknowledges an action.
type messageBody struct {
	Message string `json:"message"`
}

// JSONResponse writes data as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error with the status text and a detail message.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, errorBody{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// fail maps err to a status code. Unexpected errors are logged and hidden.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, mood.ErrInvalidMood), errors.Is(err, errBadRequest):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, preferences.ErrAnalysisTooRecent):
		ErrorResponse(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, errNoSession):
		ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errSpotifyDisabled):
		ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		ErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// intQuery parses a non-negative integer query parameter.
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, name)
	}
	return n, nil
}

// moodQuery reads and validates the happiness and calmness query parameters.
func moodQuery(r *http.Request, def int) (mood.Input, error) {
	var in mood.Input
	var err error
	if in.Happiness, err = intQuery(r, "happiness", def); err != nil {
		return in, err
	}
	if in.Calmness, err = intQuery(r, "calmness", def); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// parseID parses a UUID path or query value.
func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid id", errBadRequest, name)
	}
	return id, nil
}

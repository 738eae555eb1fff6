package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/justestif/go-moodtune/internal/auth"
	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/preferences"
	"github.com/justestif/go-moodtune/internal/recommend"
	"github.com/justestif/go-moodtune/internal/spotify"
)

// wallPreviewLimit is how many anonymous entries the home page shows.
const wallPreviewLimit = 6

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	store       db.Store
	recommender *recommend.Service
	engine      *recommend.Engine
	prefs       *preferences.Service
	auth        *auth.Authenticator // nil when Spotify is not configured
	sessions    SessionManager
	templates   *Templates
	logger      *slog.Logger
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home renders the mood preview page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	in, err := moodQuery(r, 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wall, err := h.store.MoodEntries().List(r.Context(), db.EntryFilter{
		AnonymousOnly: true,
		Limit:         wallPreviewLimit,
	})
	if err != nil {
		h.logger.Error("loading emotion wall", "error", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	session := h.sessions.GetFromRequest(r)
	data := HomePageData{
		PageData: PageData{
			Title:       "MoodTune",
			CurrentPath: r.URL.Path,
		},
		Preview:        mood.Summarize(in.Happiness, in.Calmness),
		Presets:        presetData(),
		Wall:           wall,
		SpotifyEnabled: h.auth != nil,
		Authenticated:  session != nil,
	}
	if session != nil {
		data.User = &UserData{
			ID:   session.ListenerID,
			Name: session.DisplayName,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.logger.Error("rendering home", "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// Preview renders the preview card fragment (GET /preview).
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	in, err := moodQuery(r, 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "preview", mood.Summarize(in.Happiness, in.Calmness)); err != nil {
		h.logger.Error("rendering preview", "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// MoodColor classifies a mood sample (GET /api/mood/color).
func (h *Handlers) MoodColor(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("happiness") == "" || query.Get("calmness") == "" {
		ErrorResponse(w, http.StatusBadRequest, "happiness and calmness are required")
		return
	}
	in, err := moodQuery(r, 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, mood.Summarize(in.Happiness, in.Calmness))
}

// requireSpotify returns the caller's session, or errSpotifyDisabled /
// errNoSession.
func (h *Handlers) requireSpotify(r *http.Request) (*Session, error) {
	if h.auth == nil {
		return nil, errSpotifyDisabled
	}
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		return nil, errNoSession
	}
	return session, nil
}

// spotifyClient builds an API client for session. The returned func
// persists a refreshed token and must be called once the client is done.
func (h *Handlers) spotifyClient(ctx context.Context, session *Session) (*spotify.Client, func()) {
	api := h.auth.Client(ctx, session.Token)
	done := func() {
		if token, ok := auth.RefreshedToken(api, session.Token); ok {
			h.sessions.UpdateToken(ctx, session.ID, token)
		}
	}
	return spotify.New(api), done
}

package web

import (
	"errors"
	"net/http"

	"github.com/justestif/go-moodtune/internal/auth"
	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/spotify"
)

const stateCookieName = "oauth_state"

// Login initiates the Spotify OAuth flow (GET /auth/spotify/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		h.fail(w, r, errSpotifyDisabled)
		return
	}

	state, err := auth.GenerateState()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// Checked on callback for CSRF protection.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback completes the OAuth flow (GET /auth/spotify/callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		h.fail(w, r, errSpotifyDisabled)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, "missing state cookie")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	token, err := h.auth.Exchange(r, stateCookie.Value)
	if errors.Is(err, auth.ErrStateMismatch) || errors.Is(err, auth.ErrDenied) {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx := r.Context()
	profile, err := spotify.New(h.auth.Client(ctx, token)).CurrentProfile(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	listener := &db.Listener{ID: profile.ID, DisplayName: profile.DisplayName}
	if err := h.store.Listeners().Upsert(ctx, listener); err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.sessions.Create(ctx, token, listener.ID, listener.DisplayName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sessions.SetCookie(w, session)

	h.logger.Info("listener signed in", "listener", listener.ID)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Package auth provides Spotify OAuth2 authentication for web sessions.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// DefaultRedirectURL uses explicit IPv4 loopback as required by Spotify for local development.
// See: https://developer.spotify.com/documentation/web-api/concepts/redirect-uri
const DefaultRedirectURL = "http://127.0.0.1:8080/auth/spotify/callback"

var (
	// ErrMissingCredentials is returned when the client ID or secret is empty.
	ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

	// ErrStateMismatch is returned when the OAuth state parameter doesn't match.
	ErrStateMismatch = errors.New("OAuth state mismatch")

	// ErrDenied is returned when Spotify reports an authorization error.
	ErrDenied = errors.New("spotify authorization denied")
)

// Config holds the Spotify application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // defaults to DefaultRedirectURL
}

// Authenticator handles the Spotify OAuth2 authorization code flow.
type Authenticator struct {
	auth *spotifyauth.Authenticator
}

// New creates an Authenticator that may read a listener's profile and top items.
// Returns ErrMissingCredentials if either credential is empty.
func New(cfg Config) (*Authenticator, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserTopRead,
			spotifyauth.ScopeUserReadPrivate,
		),
	)
	return &Authenticator{auth: auth}, nil
}

// AuthURL returns the Spotify consent page URL for state.
func (a *Authenticator) AuthURL(state string) string {
	return a.auth.AuthURL(state)
}

// Exchange validates the OAuth callback and trades its code for a token.
func (a *Authenticator) Exchange(r *http.Request, expectedState string) (*oauth2.Token, error) {
	query := r.URL.Query()
	if expectedState == "" || query.Get("state") != expectedState {
		return nil, ErrStateMismatch
	}
	if errMsg := query.Get("error"); errMsg != "" {
		return nil, fmt.Errorf("%w: %s", ErrDenied, errMsg)
	}

	token, err := a.auth.Token(r.Context(), expectedState, r)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}
	return token, nil
}

// Client returns an API client that refreshes token as needed.
func (a *Authenticator) Client(ctx context.Context, token *oauth2.Token) *spotify.Client {
	return spotify.New(a.auth.Client(ctx, token), spotify.WithRetry(true))
}

// RefreshedToken reports the client's current token when it differs
// from previous, so callers can persist refreshed credentials.
func RefreshedToken(client *spotify.Client, previous *oauth2.Token) (*oauth2.Token, bool) {
	current, err := client.Token()
	if err != nil || current == nil || current.AccessToken == previous.AccessToken {
		return nil, false
	}
	return current, true
}

// GenerateState creates a random state string for OAuth.
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

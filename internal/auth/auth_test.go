package auth

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	a, err := New(Config{ClientID: "test-client-id", ClientSecret: "test-client-secret"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{"both missing", "", ""},
		{"id missing", "", "secret"},
		{"secret missing", "id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{ClientID: tt.id, ClientSecret: tt.secret})
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("New() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestAuthURL(t *testing.T) {
	tests := []struct {
		name         string
		redirect     string
		wantRedirect string
	}{
		{"default redirect", "", DefaultRedirectURL},
		{"custom redirect", "https://moodtune.example/auth/spotify/callback", "https://moodtune.example/auth/spotify/callback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(Config{ClientID: "cid", ClientSecret: "secret", RedirectURL: tt.redirect})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			u, err := url.Parse(a.AuthURL("abc123"))
			if err != nil {
				t.Fatalf("parsing auth URL: %v", err)
			}
			q := u.Query()
			if q.Get("client_id") != "cid" {
				t.Errorf("client_id = %q", q.Get("client_id"))
			}
			if q.Get("state") != "abc123" {
				t.Errorf("state = %q", q.Get("state"))
			}
			if q.Get("redirect_uri") != tt.wantRedirect {
				t.Errorf("redirect_uri = %q, want %q", q.Get("redirect_uri"), tt.wantRedirect)
			}
			scope := q.Get("scope")
			for _, want := range []string{"user-top-read", "user-read-private"} {
				if !strings.Contains(scope, want) {
					t.Errorf("scope %q missing %q", scope, want)
				}
			}
		})
	}
}

func TestExchange_RejectsBadCallbacks(t *testing.T) {
	a := newTestAuthenticator(t)

	tests := []struct {
		name     string
		query    string
		expected string
		wantErr  error
	}{
		{"state mismatch", "?state=other&code=x", "expected", ErrStateMismatch},
		{"missing state", "?code=x", "expected", ErrStateMismatch},
		{"no expected state", "?state=&code=x", "", ErrStateMismatch},
		{"access denied", "?state=expected&error=access_denied", "expected", ErrDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/auth/spotify/callback"+tt.query, nil)
			_, err := a.Exchange(r, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Exchange() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateState(t *testing.T) {
	state1, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}

	if len(state1) != 32 { // 16 bytes = 32 hex chars
		t.Errorf("GenerateState() length = %d, want 32", len(state1))
	}

	state2, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}

	if state1 == state2 {
		t.Error("GenerateState() returned same value twice")
	}
}

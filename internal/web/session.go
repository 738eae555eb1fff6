package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/justestif/go-moodtune/internal/db"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
)

// Session is a Spotify-authenticated listener's web session.
type Session struct {
	ID          string
	Token       *oauth2.Token
	ListenerID  string
	DisplayName string
	CreatedAt   time.Time
}

// SessionManager defines the interface for session management.
type SessionManager interface {
	Create(ctx context.Context, token *oauth2.Token, listenerID, displayName string) (*Session, error)
	Get(ctx context.Context, id string) *Session
	Delete(ctx context.Context, id string)
	UpdateToken(ctx context.Context, id string, token *oauth2.Token)
	GetFromRequest(r *http.Request) *Session
	SetCookie(w http.ResponseWriter, session *Session)
	ClearCookie(w http.ResponseWriter)
}

// SessionStore manages sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

func (s *SessionStore) Create(_ context.Context, token *oauth2.Token, listenerID, displayName string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          id,
		Token:       token,
		ListenerID:  listenerID,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session, nil
}

func (s *SessionStore) Get(_ context.Context, id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || time.Since(session.CreatedAt) > sessionTTL {
		return nil
	}
	return session
}

func (s *SessionStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) UpdateToken(_ context.Context, id string, token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.Token = token
	}
}

func (s *SessionStore) GetFromRequest(r *http.Request) *Session {
	return sessionFromCookie(r, s)
}

func (s *SessionStore) SetCookie(w http.ResponseWriter, session *Session) {
	setCookie(w, session)
}

func (s *SessionStore) ClearCookie(w http.ResponseWriter) {
	clearCookie(w)
}

// DBSessionStore keeps sessions in the database so they survive restarts.
type DBSessionStore struct {
	store  db.Store
	logger *slog.Logger
}

// NewDBSessionStore creates a database-backed session store.
func NewDBSessionStore(store db.Store, logger *slog.Logger) *DBSessionStore {
	return &DBSessionStore{store: store, logger: logger}
}

func (s *DBSessionStore) Create(ctx context.Context, token *oauth2.Token, listenerID, displayName string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := &db.Session{
		ID:           id,
		ListenerID:   listenerID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		CreatedAt:    now,
		ExpiresAt:    now.Add(sessionTTL),
	}
	if err := s.store.Sessions().Create(ctx, row); err != nil {
		return nil, err
	}

	return &Session{
		ID:          id,
		Token:       token,
		ListenerID:  listenerID,
		DisplayName: displayName,
		CreatedAt:   now,
	}, nil
}

func (s *DBSessionStore) Get(ctx context.Context, id string) *Session {
	row, err := s.store.Sessions().Get(ctx, id)
	if err != nil {
		return nil
	}

	listener, err := s.store.Listeners().Get(ctx, row.ListenerID)
	if err != nil {
		return nil
	}

	return &Session{
		ID: row.ID,
		Token: &oauth2.Token{
			AccessToken:  row.AccessToken,
			RefreshToken: row.RefreshToken,
			Expiry:       row.TokenExpiry,
			TokenType:    "Bearer",
		},
		ListenerID:  row.ListenerID,
		DisplayName: listener.DisplayName,
		CreatedAt:   row.CreatedAt,
	}
}

func (s *DBSessionStore) Delete(ctx context.Context, id string) {
	if err := s.store.Sessions().Delete(ctx, id); err != nil {
		s.logger.Warn("deleting session", "error", err)
	}
}

func (s *DBSessionStore) UpdateToken(ctx context.Context, id string, token *oauth2.Token) {
	if err := s.store.Sessions().UpdateToken(ctx, id, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		s.logger.Warn("persisting refreshed token", "error", err)
	}
}

func (s *DBSessionStore) GetFromRequest(r *http.Request) *Session {
	return sessionFromCookie(r, s)
}

func (s *DBSessionStore) SetCookie(w http.ResponseWriter, session *Session) {
	setCookie(w, session)
}

func (s *DBSessionStore) ClearCookie(w http.ResponseWriter) {
	clearCookie(w)
}

func sessionFromCookie(r *http.Request, m SessionManager) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return m.Get(r.Context(), cookie.Value)
}

// generateSessionID creates a cryptographically random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func setCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

var (
	_ SessionManager = (*SessionStore)(nil)
	_ SessionManager = (*DBSessionStore)(nil)
)

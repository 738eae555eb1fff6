// Package db provides persistence for MoodTune on PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownBackend = errors.New("unknown database backend")
)

// Backend names accepted by Open.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Store groups the repositories. Both backends implement it.
type Store interface {
	MoodEntries() MoodEntryRepository
	Messages() MessageRepository
	Recommendations() RecommendationRepository
	Listeners() ListenerRepository
	Sessions() SessionRepository
	Preferences() PreferenceRepository
	Close() error
}

// MoodEntryRepository persists mood entries.
type MoodEntryRepository interface {
	Create(ctx context.Context, entry *MoodEntry) error
	Get(ctx context.Context, id uuid.UUID) (*MoodEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]MoodEntry, error)
	Update(ctx context.Context, entry *MoodEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindSimilar returns entries within window of both axes among the
	// scan most recent entries.
	FindSimilar(ctx context.Context, happiness, calmness, window, scan int) ([]MoodEntry, error)
}

// MessageRepository persists emotion wall messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *EmotionMessage) error
	// List returns newest messages first, optionally for one mood entry.
	List(ctx context.Context, moodEntryID *uuid.UUID, limit int) ([]EmotionMessage, error)
	AddSupport(ctx context.Context, id uuid.UUID) error
}

// RecommendationRepository persists the song catalog.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *MusicRecommendation) error
	// ListByMoodType returns active rows for an exact mood type.
	ListByMoodType(ctx context.Context, moodType string, limit int) ([]MusicRecommendation, error)
	Count(ctx context.Context) (int, error)
}

// ListenerRepository persists Spotify listeners.
type ListenerRepository interface {
	Get(ctx context.Context, id string) (*Listener, error)
	Upsert(ctx context.Context, listener *Listener) error
	UpdateLastAnalyzed(ctx context.Context, id string, at time.Time) error
}

// SessionRepository persists web sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expiry time.Time) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PreferenceRepository persists analysed preferences and personalised picks.
type PreferenceRepository interface {
	Get(ctx context.Context, listenerID string) (*MusicPreference, error)
	Upsert(ctx context.Context, pref *MusicPreference) error
	RecordPersonalized(ctx context.Context, recs []PersonalizedRecommendation) error
	ListPersonalized(ctx context.Context, listenerID string, limit int) ([]PersonalizedRecommendation, error)
}

// Open connects to the named backend and makes sure the schema exists.
// For postgres dsn is a connection URL; for sqlite it is a file path.
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	switch backend {
	case BackendPostgres:
		pg, err := New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := pg.CreateSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	case BackendSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB wraps a PostgreSQL connection pool.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL connection pool.
func New(ctx context.Context, databaseURL string) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}

// CreateSchema creates all tables. Safe to call multiple times.
func (db *PostgresDB) CreateSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// MoodEntries returns the mood entry repository.
func (db *PostgresDB) MoodEntries() MoodEntryRepository {
	return &pgMoodEntries{pool: db.pool}
}

// Messages returns the emotion message repository.
func (db *PostgresDB) Messages() MessageRepository {
	return &pgMessages{pool: db.pool}
}

// Recommendations returns the catalog repository.
func (db *PostgresDB) Recommendations() RecommendationRepository {
	return &pgRecommendations{pool: db.pool}
}

// Listeners returns the listener repository.
func (db *PostgresDB) Listeners() ListenerRepository {
	return &pgListeners{pool: db.pool}
}

// Sessions returns the session repository.
func (db *PostgresDB) Sessions() SessionRepository {
	return &pgSessions{pool: db.pool}
}

// Preferences returns the preference repository.
func (db *PostgresDB) Preferences() PreferenceRepository {
	return &pgPreferences{pool: db.pool}
}

var _ Store = (*PostgresDB)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS mood_entries (
    id UUID PRIMARY KEY,
    user_id TEXT,
    happiness INTEGER NOT NULL CHECK (happiness BETWEEN 0 AND 100),
    calmness INTEGER NOT NULL CHECK (calmness BETWEEN 0 AND 100),
    quick_mood TEXT,
    color_hex TEXT NOT NULL,
    color_hsl TEXT NOT NULL,
    hue INTEGER NOT NULL,
    saturation INTEGER NOT NULL,
    lightness INTEGER NOT NULL,
    notes TEXT,
    is_anonymous BOOLEAN NOT NULL DEFAULT TRUE,
    country TEXT,
    city TEXT,
    logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_mood_entries_logged_at ON mood_entries(logged_at DESC);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_id ON mood_entries(user_id, logged_at DESC);

CREATE TABLE IF NOT EXISTS emotion_messages (
    id UUID PRIMARY KEY,
    mood_entry_id UUID REFERENCES mood_entries(id) ON DELETE SET NULL,
    message TEXT NOT NULL,
    is_anonymous BOOLEAN NOT NULL DEFAULT TRUE,
    support_count INTEGER NOT NULL DEFAULT 0,
    city TEXT,
    logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_emotion_messages_entry ON emotion_messages(mood_entry_id, logged_at DESC);

CREATE TABLE IF NOT EXISTS music_recommendations (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    genre TEXT,
    mood_type TEXT NOT NULL,
    spotify_url TEXT,
    youtube_url TEXT,
    apple_music_url TEXT,
    youtube_music_url TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_music_recommendations_mood_type ON music_recommendations(mood_type);

CREATE TABLE IF NOT EXISTS listeners (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_analyzed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    listener_id TEXT NOT NULL REFERENCES listeners(id) ON DELETE CASCADE,
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    token_expiry TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

CREATE TABLE IF NOT EXISTS music_preferences (
    listener_id TEXT PRIMARY KEY REFERENCES listeners(id) ON DELETE CASCADE,
    top_genres TEXT[] NOT NULL DEFAULT '{}',
    top_artists TEXT[] NOT NULL DEFAULT '{}',
    preferred_mood_types TEXT[] NOT NULL DEFAULT '{}',
    energy_level DOUBLE PRECISION,
    valence DOUBLE PRECISION,
    last_analyzed TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS personalized_recommendations (
    id UUID PRIMARY KEY,
    listener_id TEXT NOT NULL REFERENCES listeners(id) ON DELETE CASCADE,
    recommendation_id UUID NOT NULL REFERENCES music_recommendations(id) ON DELETE CASCADE,
    mood_entry_id UUID REFERENCES mood_entries(id) ON DELETE SET NULL,
    confidence DOUBLE PRECISION NOT NULL,
    reason TEXT NOT NULL,
    is_played BOOLEAN NOT NULL DEFAULT FALSE,
    is_liked BOOLEAN,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_personalized_listener ON personalized_recommendations(listener_id, created_at DESC);
`

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSchemaVersion is the current schema version of the SQLite database.
const SQLiteSchemaVersion = 1

// sqliteTime is fixed width so that text comparison orders chronologically.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteDB is the single-file backend.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open sqlite: create db dir: %w", err)
	}

	dsn := "file:" + path + "?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open sqlite: ping: %w", err)
	}

	if err := Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &SQLiteDB{db: sqlDB}, nil
}

// Migrate brings the SQLite schema up to SQLiteSchemaVersion.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	if err := sqlDB.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SQLiteSchemaVersion {
		return nil
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrate: create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, SQLiteSchemaVersion); err != nil {
		return fmt.Errorf("migrate: record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// MoodEntries returns the mood entry repository.
func (s *SQLiteDB) MoodEntries() MoodEntryRepository {
	return &sqliteMoodEntries{db: s.db}
}

// Messages returns the emotion message repository.
func (s *SQLiteDB) Messages() MessageRepository {
	return &sqliteMessages{db: s.db}
}

// Recommendations returns the catalog repository.
func (s *SQLiteDB) Recommendations() RecommendationRepository {
	return &sqliteRecommendations{db: s.db}
}

// Listeners returns the listener repository.
func (s *SQLiteDB) Listeners() ListenerRepository {
	return &sqliteListeners{db: s.db}
}

// Sessions returns the session repository.
func (s *SQLiteDB) Sessions() SessionRepository {
	return &sqliteSessions{db: s.db}
}

// Preferences returns the preference repository.
func (s *SQLiteDB) Preferences() PreferenceRepository {
	return &sqlitePreferences{db: s.db}
}

var _ Store = (*SQLiteDB)(nil)

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeList(values []string) (string, error) {
	b, err := json.Marshal(nonNil(values))
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	values := []string{}
	if s == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}
	return values, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mood_entries (
    id TEXT PRIMARY KEY,
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
    is_anonymous INTEGER NOT NULL DEFAULT 1,
    country TEXT,
    city TEXT,
    logged_at TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mood_entries_logged_at ON mood_entries(logged_at);
CREATE INDEX IF NOT EXISTS idx_mood_entries_user_id ON mood_entries(user_id, logged_at);

CREATE TABLE IF NOT EXISTS emotion_messages (
    id TEXT PRIMARY KEY,
    mood_entry_id TEXT REFERENCES mood_entries(id) ON DELETE SET NULL,
    message TEXT NOT NULL,
    is_anonymous INTEGER NOT NULL DEFAULT 1,
    support_count INTEGER NOT NULL DEFAULT 0,
    city TEXT,
    logged_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_emotion_messages_entry ON emotion_messages(mood_entry_id, logged_at);

CREATE TABLE IF NOT EXISTS music_recommendations (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    genre TEXT,
    mood_type TEXT NOT NULL,
    spotify_url TEXT,
    youtube_url TEXT,
    apple_music_url TEXT,
    youtube_music_url TEXT,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_music_recommendations_mood_type ON music_recommendations(mood_type);

CREATE TABLE IF NOT EXISTS listeners (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    last_analyzed_at TEXT
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    listener_id TEXT NOT NULL REFERENCES listeners(id) ON DELETE CASCADE,
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    token_expiry TEXT NOT NULL,
    created_at TEXT NOT NULL,
    expires_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

CREATE TABLE IF NOT EXISTS music_preferences (
    listener_id TEXT PRIMARY KEY REFERENCES listeners(id) ON DELETE CASCADE,
    top_genres TEXT NOT NULL DEFAULT '[]',
    top_artists TEXT NOT NULL DEFAULT '[]',
    preferred_mood_types TEXT NOT NULL DEFAULT '[]',
    energy_level REAL,
    valence REAL,
    last_analyzed TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS personalized_recommendations (
    id TEXT PRIMARY KEY,
    listener_id TEXT NOT NULL REFERENCES listeners(id) ON DELETE CASCADE,
    recommendation_id TEXT NOT NULL REFERENCES music_recommendations(id) ON DELETE CASCADE,
    mood_entry_id TEXT REFERENCES mood_entries(id) ON DELETE SET NULL,
    confidence REAL NOT NULL,
    reason TEXT NOT NULL,
    is_played INTEGER NOT NULL DEFAULT 0,
    is_liked INTEGER,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_personalized_listener ON personalized_recommendations(listener_id, created_at);
`

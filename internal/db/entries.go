package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultEntryLimit = 50
	entryColumns      = `id, user_id, happiness, calmness, quick_mood, color_hex, color_hsl,
		hue, saturation, lightness, notes, is_anonymous, country, city, logged_at, created_at`
)

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// pgMoodEntries handles mood entry operations on PostgreSQL.
type pgMoodEntries struct {
	pool *pgxpool.Pool
}

func scanPgEntry(row rowScanner) (MoodEntry, error) {
	var e MoodEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Happiness,
		&e.Calmness,
		&e.QuickMood,
		&e.ColorHex,
		&e.ColorHSL,
		&e.Hue,
		&e.Saturation,
		&e.Lightness,
		&e.Notes,
		&e.IsAnonymous,
		&e.Country,
		&e.City,
		&e.Timestamp,
		&e.CreatedAt,
	)
	return e, err
}

// Create inserts a new mood entry. ID and timestamps are filled in when zero.
func (r *pgMoodEntries) Create(ctx context.Context, entry *MoodEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := time.Now().UTC()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	entry.CreatedAt = now

	query := `
		INSERT INTO mood_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Happiness,
		entry.Calmness,
		entry.QuickMood,
		entry.ColorHex,
		entry.ColorHSL,
		entry.Hue,
		entry.Saturation,
		entry.Lightness,
		entry.Notes,
		entry.IsAnonymous,
		entry.Country,
		entry.City,
		entry.Timestamp,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}
	return nil
}

// Get retrieves a mood entry by ID.
func (r *pgMoodEntries) Get(ctx context.Context, id uuid.UUID) (*MoodEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM mood_entries WHERE id = $1`
	e, err := scanPgEntry(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying mood entry: %w", err)
	}
	return &e, nil
}

// List returns entries matching the filter, newest first.
func (r *pgMoodEntries) List(ctx context.Context, filter EntryFilter) ([]MoodEntry, error) {
	var where []string
	var args []any
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.AnonymousOnly {
		where = append(where, "is_anonymous")
	}

	query := `SELECT ` + entryColumns + ` FROM mood_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	args = append(args, limit, max(0, filter.Skip))
	query += fmt.Sprintf(" ORDER BY logged_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mood entries: %w", err)
	}
	return collectPgEntries(rows)
}

// Update writes every mutable column of an existing entry.
func (r *pgMoodEntries) Update(ctx context.Context, entry *MoodEntry) error {
	query := `
		UPDATE mood_entries
		SET user_id = $2, happiness = $3, calmness = $4, quick_mood = $5,
			color_hex = $6, color_hsl = $7, hue = $8, saturation = $9, lightness = $10,
			notes = $11, is_anonymous = $12, country = $13, city = $14, logged_at = $15
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Happiness,
		entry.Calmness,
		entry.QuickMood,
		entry.ColorHex,
		entry.ColorHSL,
		entry.Hue,
		entry.Saturation,
		entry.Lightness,
		entry.Notes,
		entry.IsAnonymous,
		entry.Country,
		entry.City,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("updating mood entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a mood entry by ID.
func (r *pgMoodEntries) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM mood_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting mood entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindSimilar returns recent entries close to the given mood.
func (r *pgMoodEntries) FindSimilar(ctx context.Context, happiness, calmness, window, scan int) ([]MoodEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM (
			SELECT * FROM mood_entries ORDER BY logged_at DESC LIMIT $1
		) recent
		WHERE happiness BETWEEN $2 AND $3 AND calmness BETWEEN $4 AND $5
		ORDER BY logged_at DESC
	`
	rows, err := r.pool.Query(ctx, query, scan,
		happiness-window, happiness+window,
		calmness-window, calmness+window,
	)
	if err != nil {
		return nil, fmt.Errorf("querying similar entries: %w", err)
	}
	return collectPgEntries(rows)
}

func collectPgEntries(rows pgx.Rows) ([]MoodEntry, error) {
	defer rows.Close()

	entries := []MoodEntry{}
	for rows.Next() {
		e, err := scanPgEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mood entries: %w", err)
	}
	return entries, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sqliteMoodEntries handles mood entry operations on SQLite.
type sqliteMoodEntries struct {
	db *sql.DB
}

func scanSQLiteEntry(row rowScanner) (MoodEntry, error) {
	var e MoodEntry
	var loggedAt, createdAt string
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
		&loggedAt,
		&createdAt,
	)
	if err != nil {
		return e, err
	}
	if e.Timestamp, err = parseTime(loggedAt); err != nil {
		return e, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return e, err
	}
	return e, nil
}

func (r *sqliteMoodEntries) Create(ctx context.Context, entry *MoodEntry) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
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
		formatTime(entry.Timestamp),
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}
	return nil
}

func (r *sqliteMoodEntries) Get(ctx context.Context, id uuid.UUID) (*MoodEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM mood_entries WHERE id = ?`
	e, err := scanSQLiteEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying mood entry: %w", err)
	}
	return &e, nil
}

func (r *sqliteMoodEntries) List(ctx context.Context, filter EntryFilter) ([]MoodEntry, error) {
	var where []string
	var args []any
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.AnonymousOnly {
		where = append(where, "is_anonymous = 1")
	}

	query := `SELECT ` + entryColumns + ` FROM mood_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	query += " ORDER BY logged_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, max(0, filter.Skip))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mood entries: %w", err)
	}
	return collectSQLiteEntries(rows)
}

func (r *sqliteMoodEntries) Update(ctx context.Context, entry *MoodEntry) error {
	query := `
		UPDATE mood_entries
		SET user_id = ?, happiness = ?, calmness = ?, quick_mood = ?,
			color_hex = ?, color_hsl = ?, hue = ?, saturation = ?, lightness = ?,
			notes = ?, is_anonymous = ?, country = ?, city = ?, logged_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
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
		formatTime(entry.Timestamp),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mood entry: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteMoodEntries) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mood_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting mood entry: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteMoodEntries) FindSimilar(ctx context.Context, happiness, calmness, window, scan int) ([]MoodEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM (
			SELECT * FROM mood_entries ORDER BY logged_at DESC LIMIT ?
		) recent
		WHERE happiness BETWEEN ? AND ? AND calmness BETWEEN ? AND ?
		ORDER BY logged_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, scan,
		happiness-window, happiness+window,
		calmness-window, calmness+window,
	)
	if err != nil {
		return nil, fmt.Errorf("querying similar entries: %w", err)
	}
	return collectSQLiteEntries(rows)
}

func collectSQLiteEntries(rows *sql.Rows) ([]MoodEntry, error) {
	defer rows.Close()

	entries := []MoodEntry{}
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
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

// requireAffected maps an update or delete that touched no rows to ErrNotFound.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

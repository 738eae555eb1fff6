package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// sqliteMessages handles emotion message operations on SQLite.
type sqliteMessages struct {
	db *sql.DB
}

func (r *sqliteMessages) Create(ctx context.Context, msg *EmotionMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO emotion_messages (` + messageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.MoodEntryID,
		msg.Message,
		msg.IsAnonymous,
		msg.SupportCount,
		msg.City,
		formatTime(msg.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting emotion message: %w", err)
	}
	return nil
}

func (r *sqliteMessages) List(ctx context.Context, moodEntryID *uuid.UUID, limit int) ([]EmotionMessage, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	query := `SELECT ` + messageColumns + ` FROM emotion_messages`
	var args []any
	if moodEntryID != nil {
		query += ` WHERE mood_entry_id = ?`
		args = append(args, *moodEntryID)
	}
	query += ` ORDER BY logged_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying emotion messages: %w", err)
	}
	defer rows.Close()

	messages := []EmotionMessage{}
	for rows.Next() {
		var m EmotionMessage
		var loggedAt string
		if err := rows.Scan(
			&m.ID,
			&m.MoodEntryID,
			&m.Message,
			&m.IsAnonymous,
			&m.SupportCount,
			&m.City,
			&loggedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning emotion message: %w", err)
		}
		if m.Timestamp, err = parseTime(loggedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emotion messages: %w", err)
	}
	return messages, nil
}

func (r *sqliteMessages) AddSupport(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE emotion_messages SET support_count = support_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("adding support: %w", err)
	}
	return requireAffected(result)
}

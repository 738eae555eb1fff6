package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMessageLimit = 20
	messageColumns      = `id, mood_entry_id, message, is_anonymous, support_count, city, logged_at`
)

// pgMessages handles emotion message operations on PostgreSQL.
type pgMessages struct {
	pool *pgxpool.Pool
}

// Create inserts a new message.
func (r *pgMessages) Create(ctx context.Context, msg *EmotionMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO emotion_messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.MoodEntryID,
		msg.Message,
		msg.IsAnonymous,
		msg.SupportCount,
		msg.City,
		msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting emotion message: %w", err)
	}
	return nil
}

// List returns the newest messages, optionally for one mood entry.
func (r *pgMessages) List(ctx context.Context, moodEntryID *uuid.UUID, limit int) ([]EmotionMessage, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	query := `SELECT ` + messageColumns + ` FROM emotion_messages
		WHERE ($1::uuid IS NULL OR mood_entry_id = $1)
		ORDER BY logged_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, moodEntryID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying emotion messages: %w", err)
	}
	defer rows.Close()

	messages := []EmotionMessage{}
	for rows.Next() {
		var m EmotionMessage
		if err := rows.Scan(
			&m.ID,
			&m.MoodEntryID,
			&m.Message,
			&m.IsAnonymous,
			&m.SupportCount,
			&m.City,
			&m.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scanning emotion message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emotion messages: %w", err)
	}
	return messages, nil
}

// AddSupport increments a message's support count.
func (r *pgMessages) AddSupport(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE emotion_messages SET support_count = support_count + 1 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("adding support: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

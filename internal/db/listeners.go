package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgListeners handles listener operations on PostgreSQL.
type pgListeners struct {
	pool *pgxpool.Pool
}

// Get retrieves a listener by Spotify user ID.
func (r *pgListeners) Get(ctx context.Context, id string) (*Listener, error) {
	query := `
		SELECT id, display_name, created_at, updated_at, last_analyzed_at
		FROM listeners
		WHERE id = $1
	`
	var l Listener
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID,
		&l.DisplayName,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.LastAnalyzedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying listener: %w", err)
	}
	return &l, nil
}

// Upsert creates or updates a listener.
func (r *pgListeners) Upsert(ctx context.Context, listener *Listener) error {
	query := `
		INSERT INTO listeners (id, display_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
		RETURNING created_at, updated_at, last_analyzed_at
	`
	err := r.pool.QueryRow(ctx, query,
		listener.ID,
		listener.DisplayName,
	).Scan(&listener.CreatedAt, &listener.UpdatedAt, &listener.LastAnalyzedAt)
	if err != nil {
		return fmt.Errorf("upserting listener: %w", err)
	}
	return nil
}

// UpdateLastAnalyzed records when a listener's preferences were analysed.
func (r *pgListeners) UpdateLastAnalyzed(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE listeners
		SET last_analyzed_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("updating last analyzed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// sqliteListeners handles listener operations on SQLite.
type sqliteListeners struct {
	db *sql.DB
}

func (r *sqliteListeners) Get(ctx context.Context, id string) (*Listener, error) {
	query := `
		SELECT id, display_name, created_at, updated_at, last_analyzed_at
		FROM listeners
		WHERE id = ?
	`
	var l Listener
	var createdAt, updatedAt string
	var lastAnalyzed sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID,
		&l.DisplayName,
		&createdAt,
		&updatedAt,
		&lastAnalyzed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying listener: %w", err)
	}

	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if l.LastAnalyzedAt, err = parseNullTime(lastAnalyzed); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *sqliteListeners) Upsert(ctx context.Context, listener *Listener) error {
	now := formatTime(time.Now())
	query := `
		INSERT INTO listeners (id, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, listener.ID, listener.DisplayName, now, now); err != nil {
		return fmt.Errorf("upserting listener: %w", err)
	}

	stored, err := r.Get(ctx, listener.ID)
	if err != nil {
		return fmt.Errorf("reloading listener: %w", err)
	}
	*listener = *stored
	return nil
}

func (r *sqliteListeners) UpdateLastAnalyzed(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE listeners SET last_analyzed_at = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, formatTime(at), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating last analyzed: %w", err)
	}
	return requireAffected(result)
}

// sqliteSessions handles session operations on SQLite.
type sqliteSessions struct {
	db *sql.DB
}

func (r *sqliteSessions) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (id, listener_id, access_token, refresh_token, token_expiry, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.ListenerID,
		session.AccessToken,
		session.RefreshToken,
		formatTime(session.TokenExpiry),
		formatTime(session.CreatedAt),
		formatTime(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *sqliteSessions) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, listener_id, access_token, refresh_token, token_expiry, created_at, expires_at
		FROM sessions
		WHERE id = ? AND expires_at > ?
	`
	var s Session
	var tokenExpiry, createdAt, expiresAt string
	err := r.db.QueryRowContext(ctx, query, id, formatTime(time.Now())).Scan(
		&s.ID,
		&s.ListenerID,
		&s.AccessToken,
		&s.RefreshToken,
		&tokenExpiry,
		&createdAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if s.TokenExpiry, err = parseTime(tokenExpiry); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteSessions) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *sqliteSessions) UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expiry time.Time) error {
	query := `UPDATE sessions SET access_token = ?, refresh_token = ?, token_expiry = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, accessToken, refreshToken, formatTime(expiry), id)
	if err != nil {
		return fmt.Errorf("updating session token: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteSessions) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, formatTime(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return result.RowsAffected()
}

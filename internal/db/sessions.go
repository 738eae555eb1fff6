package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, listener_id, access_token, refresh_token, token_expiry, created_at, expires_at`

// pgSessions keeps signed-in listeners' Spotify tokens on PostgreSQL.
type pgSessions struct {
	pool *pgxpool.Pool
}

// Create records a listener's sign-in.
func (r *pgSessions) Create(ctx context.Context, s *Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ListenerID, s.AccessToken, s.RefreshToken, s.TokenExpiry, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session for listener %s: %w", s.ListenerID, err)
	}
	return nil
}

// Get returns a live session. Expired sessions read as ErrNotFound so a
// stale cookie behaves like no cookie at all.
func (r *pgSessions) Get(ctx context.Context, id string) (*Session, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1 AND expires_at > NOW()`, id)

	var s Session
	err := row.Scan(&s.ID, &s.ListenerID, &s.AccessToken, &s.RefreshToken, &s.TokenExpiry, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// Delete signs a session out. Unknown ids are not an error.
func (r *pgSessions) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// UpdateToken stores the token Spotify handed back after a refresh.
func (r *pgSessions) UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expiry time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE sessions SET access_token = $2, refresh_token = $3, token_expiry = $4 WHERE id = $1`,
		id, accessToken, refreshToken, expiry,
	)
	if err != nil {
		return fmt.Errorf("updating session token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired prunes sessions past their expiry; run at startup.
func (r *pgSessions) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

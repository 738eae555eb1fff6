package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recommendationColumns = `id, title, artist, genre, mood_type,
	spotify_url, youtube_url, apple_music_url, youtube_music_url, is_active`

// pgRecommendations handles catalog operations on PostgreSQL.
type pgRecommendations struct {
	pool *pgxpool.Pool
}

// Create inserts a catalog row.
func (r *pgRecommendations) Create(ctx context.Context, rec *MusicRecommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO music_recommendations (` + recommendationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Title,
		rec.Artist,
		rec.Genre,
		rec.MoodType,
		rec.SpotifyURL,
		rec.YouTubeURL,
		rec.AppleMusicURL,
		rec.YouTubeMusicURL,
		rec.IsActive,
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation: %w", err)
	}
	return nil
}

// ListByMoodType returns active rows for a mood type in insertion order.
func (r *pgRecommendations) ListByMoodType(ctx context.Context, moodType string, limit int) ([]MusicRecommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM music_recommendations
		WHERE mood_type = $1 AND is_active
		ORDER BY created_at, id
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, moodType, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	defer rows.Close()

	recs := []MusicRecommendation{}
	for rows.Next() {
		var rec MusicRecommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Artist,
			&rec.Genre,
			&rec.MoodType,
			&rec.SpotifyURL,
			&rec.YouTubeURL,
			&rec.AppleMusicURL,
			&rec.YouTubeMusicURL,
			&rec.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scanning recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recommendations: %w", err)
	}
	return recs, nil
}

// Count returns the number of catalog rows.
func (r *pgRecommendations) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM music_recommendations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting recommendations: %w", err)
	}
	return n, nil
}

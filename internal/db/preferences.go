package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPersonalizedLimit = 20

// pgPreferences handles preference operations on PostgreSQL.
type pgPreferences struct {
	pool *pgxpool.Pool
}

// Get retrieves the stored preferences of a listener.
func (r *pgPreferences) Get(ctx context.Context, listenerID string) (*MusicPreference, error) {
	query := `
		SELECT listener_id, top_genres, top_artists, preferred_mood_types,
			energy_level, valence, last_analyzed, updated_at
		FROM music_preferences
		WHERE listener_id = $1
	`
	var p MusicPreference
	err := r.pool.QueryRow(ctx, query, listenerID).Scan(
		&p.ListenerID,
		&p.TopGenres,
		&p.TopArtists,
		&p.PreferredMoodTypes,
		&p.EnergyLevel,
		&p.Valence,
		&p.LastAnalyzed,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	return &p, nil
}

// Upsert creates or replaces a listener's preferences.
func (r *pgPreferences) Upsert(ctx context.Context, pref *MusicPreference) error {
	query := `
		INSERT INTO music_preferences (
			listener_id, top_genres, top_artists, preferred_mood_types,
			energy_level, valence, last_analyzed, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (listener_id) DO UPDATE SET
			top_genres = EXCLUDED.top_genres,
			top_artists = EXCLUDED.top_artists,
			preferred_mood_types = EXCLUDED.preferred_mood_types,
			energy_level = EXCLUDED.energy_level,
			valence = EXCLUDED.valence,
			last_analyzed = EXCLUDED.last_analyzed,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		pref.ListenerID,
		nonNil(pref.TopGenres),
		nonNil(pref.TopArtists),
		nonNil(pref.PreferredMoodTypes),
		pref.EnergyLevel,
		pref.Valence,
		pref.LastAnalyzed,
	).Scan(&pref.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	return nil
}

// RecordPersonalized inserts scored recommendations in one transaction.
func (r *pgPreferences) RecordPersonalized(ctx context.Context, recs []PersonalizedRecommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO personalized_recommendations (
			id, listener_id, recommendation_id, mood_entry_id,
			confidence, reason, is_played, is_liked, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now().UTC()
	for i := range recs {
		rec := &recs[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CreatedAt = now
		if _, err := tx.Exec(ctx, query,
			rec.ID,
			rec.ListenerID,
			rec.RecommendationID,
			rec.MoodEntryID,
			rec.Confidence,
			rec.Reason,
			rec.IsPlayed,
			rec.IsLiked,
			rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("inserting personalized recommendation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListPersonalized returns a listener's most recent personalised picks.
func (r *pgPreferences) ListPersonalized(ctx context.Context, listenerID string, limit int) ([]PersonalizedRecommendation, error) {
	if limit <= 0 {
		limit = defaultPersonalizedLimit
	}

	query := `
		SELECT id, listener_id, recommendation_id, mood_entry_id,
			confidence, reason, is_played, is_liked, created_at
		FROM personalized_recommendations
		WHERE listener_id = $1
		ORDER BY created_at DESC, confidence DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, listenerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying personalized recommendations: %w", err)
	}
	defer rows.Close()

	recs := []PersonalizedRecommendation{}
	for rows.Next() {
		var rec PersonalizedRecommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.ListenerID,
			&rec.RecommendationID,
			&rec.MoodEntryID,
			&rec.Confidence,
			&rec.Reason,
			&rec.IsPlayed,
			&rec.IsLiked,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning personalized recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating personalized recommendations: %w", err)
	}
	return recs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

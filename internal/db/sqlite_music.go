package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// sqliteRecommendations handles catalog operations on SQLite.
type sqliteRecommendations struct {
	db *sql.DB
}

func (r *sqliteRecommendations) Create(ctx context.Context, rec *MusicRecommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO music_recommendations (` + recommendationColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
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
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation: %w", err)
	}
	return nil
}

func (r *sqliteRecommendations) ListByMoodType(ctx context.Context, moodType string, limit int) ([]MusicRecommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM music_recommendations
		WHERE mood_type = ? AND is_active = 1
		ORDER BY created_at, rowid
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, moodType, limit)
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

func (r *sqliteRecommendations) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM music_recommendations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting recommendations: %w", err)
	}
	return n, nil
}

// sqlitePreferences handles preference operations on SQLite.
type sqlitePreferences struct {
	db *sql.DB
}

func (r *sqlitePreferences) Get(ctx context.Context, listenerID string) (*MusicPreference, error) {
	query := `
		SELECT listener_id, top_genres, top_artists, preferred_mood_types,
			energy_level, valence, last_analyzed, updated_at
		FROM music_preferences
		WHERE listener_id = ?
	`
	var p MusicPreference
	var genres, artists, moodTypes, lastAnalyzed, updatedAt string
	err := r.db.QueryRowContext(ctx, query, listenerID).Scan(
		&p.ListenerID,
		&genres,
		&artists,
		&moodTypes,
		&p.EnergyLevel,
		&p.Valence,
		&lastAnalyzed,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}

	if p.TopGenres, err = decodeList(genres); err != nil {
		return nil, err
	}
	if p.TopArtists, err = decodeList(artists); err != nil {
		return nil, err
	}
	if p.PreferredMoodTypes, err = decodeList(moodTypes); err != nil {
		return nil, err
	}
	if p.LastAnalyzed, err = parseTime(lastAnalyzed); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqlitePreferences) Upsert(ctx context.Context, pref *MusicPreference) error {
	genres, err := encodeList(pref.TopGenres)
	if err != nil {
		return err
	}
	artists, err := encodeList(pref.TopArtists)
	if err != nil {
		return err
	}
	moodTypes, err := encodeList(pref.PreferredMoodTypes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO music_preferences (
			listener_id, top_genres, top_artists, preferred_mood_types,
			energy_level, valence, last_analyzed, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (listener_id) DO UPDATE SET
			top_genres = excluded.top_genres,
			top_artists = excluded.top_artists,
			preferred_mood_types = excluded.preferred_mood_types,
			energy_level = excluded.energy_level,
			valence = excluded.valence,
			last_analyzed = excluded.last_analyzed,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query,
		pref.ListenerID,
		genres,
		artists,
		moodTypes,
		pref.EnergyLevel,
		pref.Valence,
		formatTime(pref.LastAnalyzed),
		formatTime(now),
	); err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	pref.UpdatedAt = now
	return nil
}

func (r *sqlitePreferences) RecordPersonalized(ctx context.Context, recs []PersonalizedRecommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO personalized_recommendations (
			id, listener_id, recommendation_id, mood_entry_id,
			confidence, reason, is_played, is_liked, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	for i := range recs {
		rec := &recs[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CreatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			rec.ID,
			rec.ListenerID,
			rec.RecommendationID,
			rec.MoodEntryID,
			rec.Confidence,
			rec.Reason,
			rec.IsPlayed,
			rec.IsLiked,
			formatTime(rec.CreatedAt),
		); err != nil {
			return fmt.Errorf("inserting personalized recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *sqlitePreferences) ListPersonalized(ctx context.Context, listenerID string, limit int) ([]PersonalizedRecommendation, error) {
	if limit <= 0 {
		limit = defaultPersonalizedLimit
	}

	query := `
		SELECT id, listener_id, recommendation_id, mood_entry_id,
			confidence, reason, is_played, is_liked, created_at
		FROM personalized_recommendations
		WHERE listener_id = ?
		ORDER BY created_at DESC, confidence DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, listenerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying personalized recommendations: %w", err)
	}
	defer rows.Close()

	recs := []PersonalizedRecommendation{}
	for rows.Next() {
		var rec PersonalizedRecommendation
		var createdAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.ListenerID,
			&rec.RecommendationID,
			&rec.MoodEntryID,
			&rec.Confidence,
			&rec.Reason,
			&rec.IsPlayed,
			&rec.IsLiked,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning personalized recommendation: %w", err)
		}
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating personalized recommendations: %w", err)
	}
	return recs, nil
}

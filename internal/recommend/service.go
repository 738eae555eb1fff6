// Package recommend picks catalog songs for a mood, with an optional
// personalised ranking for Spotify listeners.
package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

const (
	// lookupLimit caps rows read for one mood type.
	lookupLimit = 10
	// ResultLimit caps the songs returned to a client.
	ResultLimit = 6
)

// FallbackMoodTypes are merged, in order, when a mood type has no songs.
var FallbackMoodTypes = []mood.MusicMoodType{
	mood.MusicHappy,
	mood.MusicCalm,
	mood.MusicPeaceful,
	mood.MusicEnergetic,
}

// Service looks up recommendations in the song catalog.
type Service struct {
	catalog db.RecommendationRepository
	shuffle func(n int, swap func(i, j int))
}

// Option configures a Service.
type Option func(*Service)

// WithShuffle replaces the shuffle used to vary results.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(s *Service) {
		s.shuffle = fn
	}
}

// New creates a new recommendation service.
func New(catalog db.RecommendationRepository, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns up to ResultLimit songs for moodType.
// Matches are shuffled. With no match the fallback categories are
// merged in order and returned unshuffled.
func (s *Service) Recommend(ctx context.Context, moodType mood.MusicMoodType) ([]db.MusicRecommendation, error) {
	recs, fellBack, err := s.lookup(ctx, moodType)
	if err != nil {
		return nil, err
	}
	if !fellBack {
		s.shuffle(len(recs), func(i, j int) {
			recs[i], recs[j] = recs[j], recs[i]
		})
	}
	return truncate(recs, ResultLimit), nil
}

// lookup reads the exact mood type, falling back to FallbackMoodTypes
// when nothing matches. The fallback result is already truncated.
func (s *Service) lookup(ctx context.Context, moodType mood.MusicMoodType) ([]db.MusicRecommendation, bool, error) {
	recs, err := s.catalog.ListByMoodType(ctx, string(moodType), lookupLimit)
	if err != nil {
		return nil, false, fmt.Errorf("listing %s recommendations: %w", moodType, err)
	}
	if len(recs) > 0 {
		return recs, false, nil
	}

	mixed := make([]db.MusicRecommendation, 0, ResultLimit)
	for _, fallback := range FallbackMoodTypes {
		more, err := s.catalog.ListByMoodType(ctx, string(fallback), lookupLimit)
		if err != nil {
			return nil, true, fmt.Errorf("listing %s recommendations: %w", fallback, err)
		}
		mixed = append(mixed, more...)
	}
	return truncate(mixed, ResultLimit), true, nil
}

func truncate(recs []db.MusicRecommendation, n int) []db.MusicRecommendation {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

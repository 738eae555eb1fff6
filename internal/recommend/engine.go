package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

const (
	baseConfidence = 0.5
	genreBoost     = 0.2
	artistBoost    = 0.3
	energyWeight   = 0.2
	valenceWeight  = 0.2
	strongMatch    = 0.8

	// recordedTop is how many ranked songs are kept as history.
	recordedTop = 5
)

// Reasons attached to a personalised score.
const (
	ReasonGenre   = "matches your favourite genres"
	ReasonArtist  = "one of your favourite artists"
	ReasonEnergy  = "energy level matches your taste"
	ReasonValence = "mood matches your preferred vibe"
	ReasonMood    = "matched your current mood"
)

var (
	calmGenres      = []string{"classical", "ambient", "jazz", "古典", "爵士"}
	energeticGenres = []string{"pop", "rock", "electronic", "hip-hop", "流行", "搖滾"}
)

// Scored is a catalog song ranked for one listener.
type Scored struct {
	Recommendation db.MusicRecommendation `json:"recommendation"`
	Confidence     float64                `json:"confidence"`
	Reason         string                 `json:"reason"`
}

// Engine ranks catalog songs against a listener's analysed preferences.
type Engine struct {
	service *Service
	prefs   db.PreferenceRepository
}

// NewEngine creates a personalised ranking engine.
func NewEngine(service *Service, prefs db.PreferenceRepository) *Engine {
	return &Engine{service: service, prefs: prefs}
}

// Personalize ranks songs for the listener's mood, highest confidence first,
// and records the top results. Listeners without stored preferences get
// every song at base confidence.
func (e *Engine) Personalize(ctx context.Context, listenerID string, in mood.Input, entryID *uuid.UUID) ([]Scored, error) {
	pref, err := e.prefs.Get(ctx, listenerID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	moodType := MoodTypeOf(in.Happiness, in.Calmness)
	recs, _, err := e.service.lookup(ctx, moodType)
	if err != nil {
		return nil, err
	}

	scored := Score(recs, in, moodType, pref)

	top := scored[:min(recordedTop, len(scored))]
	history := make([]db.PersonalizedRecommendation, len(top))
	for i, s := range top {
		history[i] = db.PersonalizedRecommendation{
			ListenerID:       listenerID,
			RecommendationID: s.Recommendation.ID,
			MoodEntryID:      entryID,
			Confidence:       s.Confidence,
			Reason:           s.Reason,
		}
	}
	if err := e.prefs.RecordPersonalized(ctx, history); err != nil {
		return nil, fmt.Errorf("recording recommendations: %w", err)
	}

	return scored, nil
}

// Score ranks recs for a mood. A nil pref gives every song base confidence.
func Score(recs []db.MusicRecommendation, in mood.Input, moodType mood.MusicMoodType, pref *db.MusicPreference) []Scored {
	scored := make([]Scored, len(recs))
	if pref == nil {
		for i, rec := range recs {
			scored[i] = Scored{
				Recommendation: rec,
				Confidence:     baseConfidence,
				Reason:         fmt.Sprintf("%s (%s)", ReasonMood, moodType),
			}
		}
		return scored
	}

	moodEnergy := MoodEnergy(in.Happiness, in.Calmness)
	moodValence := float64(in.Happiness) / 100

	for i, rec := range recs {
		confidence := baseConfidence
		var reasons []string

		if rec.Genre != nil && slices.Contains(pref.TopGenres, *rec.Genre) {
			confidence += genreBoost
			reasons = append(reasons, ReasonGenre)
		}
		if slices.Contains(pref.TopArtists, rec.Artist) {
			confidence += artistBoost
			reasons = append(reasons, ReasonArtist)
		}
		if pref.EnergyLevel != nil {
			match := 1 - math.Abs(moodEnergy-*pref.EnergyLevel)
			confidence += match * energyWeight
			if match > strongMatch {
				reasons = append(reasons, ReasonEnergy)
			}
		}
		if pref.Valence != nil {
			match := 1 - math.Abs(moodValence-*pref.Valence)
			confidence += match * valenceWeight
			if match > strongMatch {
				reasons = append(reasons, ReasonValence)
			}
		}

		reason := ReasonMood
		if len(reasons) > 0 {
			reason = strings.Join(reasons, ", ")
		}
		scored[i] = Scored{
			Recommendation: rec,
			Confidence:     math.Min(confidence, 1),
			Reason:         reason,
		}
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})
	return scored
}

// MoodTypeOf is the eight-way mood mapping used for personalised ranking.
func MoodTypeOf(happiness, calmness int) mood.MusicMoodType {
	switch {
	case happiness >= 70 && calmness >= 70:
		return mood.MusicPeaceful
	case happiness >= 70 && calmness < 50:
		return mood.MusicEnergetic
	case happiness >= 70:
		return mood.MusicHappy
	case happiness < 30 && calmness < 30:
		return mood.MusicAnxious
	case happiness < 30:
		return mood.MusicSad
	case calmness >= 70:
		return mood.MusicCalm
	case calmness < 30:
		return mood.MusicEnergetic
	default:
		return mood.MusicContemplative
	}
}

// MoodEnergy maps a mood to [0,1]: happy and restless is high energy.
func MoodEnergy(happiness, calmness int) float64 {
	energy := float64(happiness+(100-calmness)) / 200
	return math.Max(0, math.Min(1, energy))
}

// PreferredMoodTypes infers the mood types a listener gravitates to.
func PreferredMoodTypes(pref *db.MusicPreference) []string {
	var types []string
	if v := pref.Valence; v != nil {
		if *v > 0.6 {
			types = append(types, string(mood.MusicHappy), string(mood.MusicEnergetic))
		}
		if *v < 0.4 {
			types = append(types, string(mood.MusicSad), string(mood.MusicMelancholic))
		}
	}
	if e := pref.EnergyLevel; e != nil {
		if *e > 0.7 {
			types = append(types, string(mood.MusicEnergetic), string(mood.MusicExcited))
		}
		if *e < 0.3 {
			types = append(types, string(mood.MusicCalm), string(mood.MusicPeaceful))
		}
	}
	if anyGenreLike(pref.TopGenres, calmGenres) {
		types = append(types, string(mood.MusicCalm), string(mood.MusicPeaceful), string(mood.MusicContemplative))
	}
	if anyGenreLike(pref.TopGenres, energeticGenres) {
		types = append(types, string(mood.MusicEnergetic), string(mood.MusicHappy), string(mood.MusicExcited))
	}
	return dedupe(types)
}

func anyGenreLike(genres, keywords []string) bool {
	for _, g := range genres {
		g = strings.ToLower(g)
		for _, k := range keywords {
			if strings.Contains(g, k) {
				return true
			}
		}
	}
	return false
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

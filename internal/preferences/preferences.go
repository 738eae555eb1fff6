// Package preferences analyses a listener's Spotify history into the
// music preferences used for personalised recommendations.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/genres"
	"github.com/justestif/go-moodtune/internal/recommend"
	"github.com/justestif/go-moodtune/internal/spotify"
)

// Common errors.
var (
	// ErrAnalysisTooRecent is returned when analysis is attempted within the cooldown period.
	ErrAnalysisTooRecent = errors.New("analysis attempted too recently")
)

// DefaultCooldown is the default time between allowed analyses (1 hour).
const DefaultCooldown = 1 * time.Hour

// topGenresLimit caps the genres kept in a preference.
const topGenresLimit = 10

// SpotifyReader is the subset of the Spotify client used for analysis.
type SpotifyReader interface {
	TopArtists(ctx context.Context, limit int) ([]spotify.Artist, error)
	TopTracks(ctx context.Context, limit int) ([]spotify.Track, error)
	AudioFeatures(ctx context.Context, trackIDs []string) ([]spotify.AudioFeatures, error)
}

// GenreResolver fills in genres for artists Spotify has none for.
type GenreResolver interface {
	Resolve(ctx context.Context, artists []spotify.Artist) ([]genres.ArtistGenres, error)
}

// Service analyses and stores listener preferences.
type Service struct {
	listeners db.ListenerRepository
	prefs     db.PreferenceRepository
	genres    GenreResolver
	cooldown  time.Duration
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCooldown sets the minimum time between analyses.
func WithCooldown(d time.Duration) Option {
	return func(s *Service) {
		s.cooldown = d
	}
}

// WithGenreResolver enables genre lookup for artists without Spotify genres.
func WithGenreResolver(r GenreResolver) Option {
	return func(s *Service) {
		s.genres = r
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new preference service.
func New(listeners db.ListenerRepository, prefs db.PreferenceRepository, opts ...Option) *Service {
	s := &Service{
		listeners: listeners,
		prefs:     prefs,
		cooldown:  DefaultCooldown,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanAnalyze checks if enough time has passed since the last analysis.
// It also returns the time when the next analysis will be available.
func (s *Service) CanAnalyze(ctx context.Context, listenerID string) (bool, time.Time, error) {
	listener, err := s.listeners.Get(ctx, listenerID)
	if errors.Is(err, db.ErrNotFound) {
		return true, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, fmt.Errorf("getting listener: %w", err)
	}

	if listener.LastAnalyzedAt == nil {
		return true, time.Time{}, nil
	}

	next := listener.LastAnalyzedAt.Add(s.cooldown)
	if s.now().Before(next) {
		return false, next, nil
	}
	return true, time.Time{}, nil
}

// Analyze fetches the listener's top artists, top tracks and audio features,
// derives their preferences and stores them.
// Returns ErrAnalysisTooRecent if called within the cooldown period.
// Set force=true to bypass the cooldown check.
func (s *Service) Analyze(ctx context.Context, client SpotifyReader, listenerID string, force bool) (*db.MusicPreference, error) {
	if !force {
		ok, next, err := s.CanAnalyze(ctx, listenerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: next analysis available at %s", ErrAnalysisTooRecent, next.Format(time.RFC3339))
		}
	}

	artists, err := client.TopArtists(ctx, spotify.TopArtistsLimit)
	if err != nil {
		return nil, err
	}
	tracks, err := client.TopTracks(ctx, spotify.TopTracksLimit)
	if err != nil {
		return nil, err
	}

	trackIDs := make([]string, len(tracks))
	for i, t := range tracks {
		trackIDs[i] = t.ID
	}
	features, err := client.AudioFeatures(ctx, trackIDs)
	if err != nil {
		return nil, err
	}

	artistGenres, err := s.resolveGenres(ctx, artists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pref := &db.MusicPreference{
		ListenerID:   listenerID,
		TopGenres:    TopGenres(artistGenres, topGenresLimit),
		TopArtists:   artistNames(artists),
		LastAnalyzed: now,
	}
	pref.EnergyLevel, pref.Valence = averageFeatures(features)
	pref.PreferredMoodTypes = recommend.PreferredMoodTypes(pref)

	if err := s.prefs.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("saving preferences: %w", err)
	}
	if err := s.listeners.UpdateLastAnalyzed(ctx, listenerID, now); err != nil {
		return nil, fmt.Errorf("updating last analyzed: %w", err)
	}
	return pref, nil
}

// Get returns the stored preferences, or db.ErrNotFound.
func (s *Service) Get(ctx context.Context, listenerID string) (*db.MusicPreference, error) {
	return s.prefs.Get(ctx, listenerID)
}

// resolveGenres returns each artist's genre list. Last.fm failures leave
// an artist without genres rather than failing the analysis.
func (s *Service) resolveGenres(ctx context.Context, artists []spotify.Artist) ([][]string, error) {
	out := make([][]string, len(artists))
	if s.genres == nil {
		for i, a := range artists {
			out[i] = a.Genres
		}
		return out, nil
	}

	resolved, err := s.genres.Resolve(ctx, artists)
	if err != nil {
		return nil, fmt.Errorf("resolving genres: %w", err)
	}
	for i, r := range resolved {
		out[i] = r.Genres
	}
	return out, nil
}

// TopGenres counts genres across artists and returns the n most common.
// Ties keep first-seen order.
func TopGenres(artistGenres [][]string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, list := range artistGenres {
		for _, g := range list {
			if counts[g] == 0 {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		return []string{}
	}
	return order
}

func artistNames(artists []spotify.Artist) []string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}

// averageFeatures returns mean energy and valence, or nils when there are
// no features to average.
func averageFeatures(features []spotify.AudioFeatures) (*float64, *float64) {
	if len(features) == 0 {
		return nil, nil
	}
	var energy, valence float64
	for _, f := range features {
		energy += f.Energy
		valence += f.Valence
	}
	n := float64(len(features))
	energy /= n
	valence /= n
	return &energy, &valence
}

// Package genres resolves genres for a listener's top artists, filling in
// from Last.fm tags where Spotify has none.
package genres

import (
	"context"
	"sync"

	"github.com/justestif/go-moodtune/internal/lastfm"
	"github.com/justestif/go-moodtune/internal/spotify"
)

// Source indicates where an artist's genres came from.
type Source string

const (
	SourceSpotify Source = "spotify"
	SourceLastFM  Source = "lastfm"
	SourceNone    Source = "none"
)

// DefaultConcurrency is the number of concurrent Last.fm lookups.
const DefaultConcurrency = 5

// tagsPerArtist caps the Last.fm tags used as genres for one artist.
const tagsPerArtist = 3

// ArtistGenres holds the genres resolved for one artist.
type ArtistGenres struct {
	Artist string
	Genres []string
	Source Source
	Error  error // Non-nil if the Last.fm lookup failed
}

// TagFetcher abstracts the Last.fm client for testing.
type TagFetcher interface {
	ArtistTags(ctx context.Context, artist string) ([]lastfm.Tag, error)
}

// Service resolves artist genres with a bounded worker pool.
type Service struct {
	fetcher     TagFetcher
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent tag fetch operations.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a genre service. A nil fetcher disables the
// Last.fm fallback.
func NewService(fetcher TagFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns genres for each artist, in input order.
// Artists with Spotify genres keep them. The rest are looked up on Last.fm
// concurrently. Individual lookup errors are captured in ArtistGenres.Error
// rather than failing the batch.
func (s *Service) Resolve(ctx context.Context, artists []spotify.Artist) ([]ArtistGenres, error) {
	results := make([]ArtistGenres, len(artists))

	type workItem struct {
		index  int
		artist string
	}
	var pending []workItem

	for i, a := range artists {
		results[i] = ArtistGenres{Artist: a.Name, Genres: []string{}, Source: SourceNone}
		if len(a.Genres) > 0 {
			results[i].Genres = a.Genres
			results[i].Source = SourceSpotify
			continue
		}
		if s.fetcher != nil {
			pending = append(pending, workItem{index: i, artist: a.Name})
		}
	}
	if len(pending) == 0 {
		return results, nil
	}

	workCh := make(chan workItem, len(pending))
	for _, w := range pending {
		workCh <- w
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < min(s.concurrency, len(pending)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				if err := ctx.Err(); err != nil {
					results[work.index].Error = err
					continue
				}

				tags, err := s.fetcher.ArtistTags(ctx, work.artist)
				if err != nil {
					results[work.index].Error = err
					continue
				}
				if names := lastfm.TagNames(tags, tagsPerArtist); len(names) > 0 {
					results[work.index].Genres = names
					results[work.index].Source = SourceLastFM
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return results, ctx.Err()
	}
	return results, nil
}

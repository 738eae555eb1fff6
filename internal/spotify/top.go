package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Request sizes for taste analysis.
const (
	TopArtistsLimit = 20
	TopTracksLimit  = 50
)

// TopArtists returns the listener's medium-term top artists.
func (c *Client) TopArtists(ctx context.Context, limit int) ([]Artist, error) {
	page, err := c.api.CurrentUsersTopArtists(ctx,
		spotify.Timerange(spotify.MediumTermRange),
		spotify.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top artists: %w", err)
	}

	artists := make([]Artist, len(page.Artists))
	for i, a := range page.Artists {
		artists[i] = convertArtist(a)
	}
	return artists, nil
}

// TopTracks returns the listener's medium-term top tracks.
func (c *Client) TopTracks(ctx context.Context, limit int) ([]Track, error) {
	page, err := c.api.CurrentUsersTopTracks(ctx,
		spotify.Timerange(spotify.MediumTermRange),
		spotify.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", err)
	}

	tracks := make([]Track, len(page.Tracks))
	for i, t := range page.Tracks {
		tracks[i] = convertTrack(t)
	}
	return tracks, nil
}

func convertArtist(a spotify.FullArtist) Artist {
	return Artist{
		ID:     a.ID.String(),
		Name:   a.Name,
		Genres: a.Genres,
	}
}

// convertTrack converts a Spotify FullTrack, joining artists with ", ".
func convertTrack(t spotify.FullTrack) Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}
	return Track{
		ID:     t.ID.String(),
		Name:   t.Name,
		Artist: strings.Join(artists, ", "),
	}
}

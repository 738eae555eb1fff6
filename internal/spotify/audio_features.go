package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

const maxTracksPerRequest = 100

// AudioFeatures retrieves audio features for the given track IDs.
// Batches requests to max 100 tracks per request per Spotify API limits.
// Tracks without available audio features are omitted.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) ([]AudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}

	var out []AudioFeatures
	for i := 0; i < len(ids); i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, len(ids))
		batch := ids[i:end]

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return nil, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // Track has no audio features
			}
			out = append(out, convertAudioFeatures(f))
		}
	}
	return out, nil
}

func convertAudioFeatures(f *spotify.AudioFeatures) AudioFeatures {
	return AudioFeatures{
		TrackID: f.ID.String(),
		Energy:  float64(f.Energy),
		Valence: float64(f.Valence),
	}
}

package spotify

// Profile identifies a Spotify listener.
type Profile struct {
	ID          string
	DisplayName string
}

// Artist is one of a listener's top artists.
type Artist struct {
	ID     string
	Name   string
	Genres []string
}

// Track is one of a listener's top tracks.
type Track struct {
	ID     string
	Name   string
	Artist string // Comma-separated artist names
}

// AudioFeatures holds the features MoodTune compares against moods.
// Both values are in [0,1].
type AudioFeatures struct {
	TrackID string
	Energy  float64
	Valence float64
}

package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/mood"
)

// MoodEntry is a saved happiness/calmness sample with its derived color.
type MoodEntry struct {
	ID          uuid.UUID `json:"id"`
	UserID      *string   `json:"userId"`    // nullable
	Happiness   int       `json:"happiness"`
	Calmness    int       `json:"calmness"`
	QuickMood   *string   `json:"quickMood"` // nullable - preset tag
	ColorHex    string    `json:"colorHex"`
	ColorHSL    string    `json:"colorHsl"`
	Hue         int       `json:"hue"`
	Saturation  int       `json:"saturation"`
	Lightness   int       `json:"lightness"`
	Notes       *string   `json:"notes"` // nullable
	IsAnonymous bool      `json:"isAnonymous"`
	Country     *string   `json:"country"` // nullable
	City        *string   `json:"city"`    // nullable
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplyColor derives the color columns from happiness and calmness.
func (e *MoodEntry) ApplyColor() {
	c := mood.ColorOf(e.Happiness, e.Calmness)
	e.ColorHex = c.Hex
	e.ColorHSL = c.HSL
	e.Hue = c.Hue
	e.Saturation = c.Saturation
	e.Lightness = c.Lightness
}

// Input returns the entry's mood sample.
func (e *MoodEntry) Input() mood.Input {
	return mood.Input{Happiness: e.Happiness, Calmness: e.Calmness}
}

// EntryFilter narrows a mood entry listing. Results are newest first.
type EntryFilter struct {
	UserID        string // empty means every user
	AnonymousOnly bool
	Limit         int
	Skip          int
}

// EmotionMessage is a note left on the emotion wall.
type EmotionMessage struct {
	ID           uuid.UUID  `json:"id"`
	MoodEntryID  *uuid.UUID `json:"moodEntryId"` // nullable
	Message      string     `json:"message"`
	IsAnonymous  bool       `json:"isAnonymous"`
	SupportCount int        `json:"supportCount"`
	City         *string    `json:"city"` // nullable
	Timestamp    time.Time  `json:"timestamp"`
}

// MusicRecommendation is a catalog song keyed by music mood type.
type MusicRecommendation struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Artist          string    `json:"artist"`
	Genre           *string   `json:"genre"` // nullable
	MoodType        string    `json:"moodType"`
	SpotifyURL      *string   `json:"spotifyUrl"`
	YouTubeURL      *string   `json:"youtubeUrl"`
	AppleMusicURL   *string   `json:"appleMusicUrl"`
	YouTubeMusicURL *string   `json:"youtubeMusicUrl"`
	IsActive        bool      `json:"isActive"`
}

// Listener is a Spotify-authenticated user.
type Listener struct {
	ID             string     `json:"id"` // Spotify user ID
	DisplayName    string     `json:"displayName"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastAnalyzedAt *time.Time `json:"lastAnalyzedAt"` // nullable
}

// Session represents an authenticated web session.
type Session struct {
	ID           string
	ListenerID   string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// MusicPreference is the result of analysing a listener's Spotify history.
type MusicPreference struct {
	ListenerID         string    `json:"listenerId"`
	TopGenres          []string  `json:"topGenres"`
	TopArtists         []string  `json:"topArtists"`
	PreferredMoodTypes []string  `json:"preferredMoodTypes"`
	EnergyLevel        *float64  `json:"energyLevel"` // nullable, [0,1]
	Valence            *float64  `json:"valence"`     // nullable, [0,1]
	LastAnalyzed       time.Time `json:"lastAnalyzed"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PersonalizedRecommendation records a scored recommendation shown to a listener.
type PersonalizedRecommendation struct {
	ID               uuid.UUID  `json:"id"`
	ListenerID       string     `json:"listenerId"`
	RecommendationID uuid.UUID  `json:"recommendationId"`
	MoodEntryID      *uuid.UUID `json:"moodEntryId"` // nullable
	Confidence       float64    `json:"confidence"`
	Reason           string     `json:"reason"`
	IsPlayed         bool       `json:"isPlayed"`
	IsLiked          *bool      `json:"isLiked"` // nullable
	CreatedAt        time.Time  `json:"createdAt"`
}

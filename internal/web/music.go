package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/recommend"
)

type recommendationsResponse struct {
	MoodType        mood.MusicMoodType       `json:"moodType"`
	Recommendations []db.MusicRecommendation `json:"recommendations"`
}

type personalizedResponse struct {
	MoodType        mood.MusicMoodType `json:"moodType"`
	Recommendations []recommend.Scored `json:"recommendations"`
}

// Recommendations suggests songs for a mood (GET /api/music/recommendations).
// An explicit moodType wins over happiness and calmness.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	in, err := moodQuery(r, 50)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	moodType := mood.MusicMoodType(strings.TrimSpace(r.URL.Query().Get("moodType")))
	if moodType == "" {
		moodType = mood.RequestMusicMoodTypeOf(in.Happiness, in.Calmness)
	}

	recs, err := h.recommender.Recommend(r.Context(), moodType)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, recommendationsResponse{MoodType: moodType, Recommendations: recs})
}

type recommendationRequest struct {
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Genre           *string `json:"genre"`
	MoodType        string  `json:"moodType"`
	SpotifyURL      *string `json:"spotifyUrl"`
	YouTubeURL      *string `json:"youtubeUrl"`
	AppleMusicURL   *string `json:"appleMusicUrl"`
	YouTubeMusicURL *string `json:"youtubeMusicUrl"`
}

// CreateRecommendation adds a catalog song (POST /api/music/recommendations).
func (h *Handlers) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Title == "" || req.Artist == "" || req.MoodType == "" {
		ErrorResponse(w, http.StatusBadRequest, "title, artist and moodType are required")
		return
	}

	rec := &db.MusicRecommendation{
		Title:           req.Title,
		Artist:          req.Artist,
		Genre:           req.Genre,
		MoodType:        req.MoodType,
		SpotifyURL:      req.SpotifyURL,
		YouTubeURL:      req.YouTubeURL,
		AppleMusicURL:   req.AppleMusicURL,
		YouTubeMusicURL: req.YouTubeMusicURL,
		IsActive:        true,
	}
	if err := h.store.Recommendations().Create(r.Context(), rec); err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusCreated, rec)
}

// Personalized scores recommendations against the listener's analysed
// taste (GET /api/music/recommendations/personalized). A moodEntryId
// query takes the mood from that entry.
func (h *Handlers) Personalized(w http.ResponseWriter, r *http.Request) {
	session, err := h.requireSpotify(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var entryID *uuid.UUID
	var in mood.Input
	if raw := r.URL.Query().Get("moodEntryId"); raw != "" {
		id, err := parseID(raw, "moodEntryId")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		entry, err := h.store.MoodEntries().Get(r.Context(), id)
		if err != nil {
			h.entryFail(w, r, err)
			return
		}
		entryID, in = &entry.ID, entry.Input()
	} else if in, err = moodQuery(r, 50); err != nil {
		h.fail(w, r, err)
		return
	}

	scored, err := h.engine.Personalize(r.Context(), session.ListenerID, in, entryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, personalizedResponse{
		MoodType:        recommend.MoodTypeOf(in.Happiness, in.Calmness),
		Recommendations: scored,
	})
}

const defaultHistoryLimit = 20

// PersonalizedHistory lists the listener's recorded picks, newest first
// (GET /api/music/recommendations/personalized/history).
func (h *Handlers) PersonalizedHistory(w http.ResponseWriter, r *http.Request) {
	session, err := h.requireSpotify(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := intQuery(r, "limit", defaultHistoryLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	history, err := h.store.Preferences().ListPersonalized(r.Context(), session.ListenerID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if history == nil {
		history = []db.PersonalizedRecommendation{}
	}
	JSONResponse(w, http.StatusOK, history)
}

// AnalyzePreferences learns the listener's taste from Spotify
// (POST /api/music/preferences/analyze). force=true skips the cooldown.
func (h *Handlers) AnalyzePreferences(w http.ResponseWriter, r *http.Request) {
	session, err := h.requireSpotify(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	client, done := h.spotifyClient(r.Context(), session)
	pref, err := h.prefs.Analyze(r.Context(), client, session.ListenerID, force)
	done()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("preferences analysed",
		"listener", session.ListenerID,
		"genres", len(pref.TopGenres),
		"artists", len(pref.TopArtists),
	)
	JSONResponse(w, http.StatusOK, pref)
}

// Preferences returns the stored analysis (GET /api/music/preferences).
func (h *Handlers) Preferences(w http.ResponseWriter, r *http.Request) {
	session, err := h.requireSpotify(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	pref, err := h.prefs.Get(r.Context(), session.ListenerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, pref)
}

package web

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-moodtune/internal/clustering"
	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

const (
	trendSampleSize = 100
	trendPointLimit = 30
	phaseSampleSize = 500

	twinWindow = 10
	twinScan   = 500
)

type trendPoint struct {
	Date      time.Time `json:"date"`
	Happiness int       `json:"happiness"`
	Calmness  int       `json:"calmness"`
}

type trendsResponse struct {
	AverageHappiness int          `json:"averageHappiness"`
	AverageCalmness  int          `json:"averageCalmness"`
	TotalEntries     int          `json:"totalEntries"`
	Trends           []trendPoint `json:"trends"`
	Palette          []mood.Color `json:"palette"` // newest entries first
	mood.Trend
}

// Trends summarises the latest entries (GET /api/mood/analytics/trends).
func (h *Handlers) Trends(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.MoodEntries().List(r.Context(), db.EntryFilter{
		UserID: r.URL.Query().Get("userId"),
		Limit:  trendSampleSize,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	samples := make([]mood.Input, len(entries))
	for i := range entries {
		samples[i] = entries[i].Input()
	}
	avgH, avgC := mood.Averages(samples)

	resp := trendsResponse{
		AverageHappiness: int(math.Round(avgH)),
		AverageCalmness:  int(math.Round(avgC)),
		TotalEntries:     len(entries),
		Trends:           []trendPoint{},
		Palette:          mood.Palette(samples),
		Trend:            mood.TrendOf(samples),
	}
	for _, e := range entries[:min(trendPointLimit, len(entries))] {
		resp.Trends = append(resp.Trends, trendPoint{
			Date:      e.Timestamp,
			Happiness: e.Happiness,
			Calmness:  e.Calmness,
		})
	}
	JSONResponse(w, http.StatusOK, resp)
}

type phasesResponse struct {
	Phases   []clustering.Phase `json:"phases"`
	Outliers []clustering.Entry `json:"outliers"`
	Summary  string             `json:"summary"`
}

// Phases clusters entries into mood phases (GET /api/mood/analytics/phases).
func (h *Handlers) Phases(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.MoodEntries().List(r.Context(), db.EntryFilter{
		UserID: r.URL.Query().Get("userId"),
		Limit:  phaseSampleSize,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	phases, outliers, err := clustering.DetectPhases(ClusterEntries(entries), clustering.DefaultConfig())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if phases == nil {
		phases = []clustering.Phase{}
	}
	if outliers == nil {
		outliers = []clustering.Entry{}
	}
	JSONResponse(w, http.StatusOK, phasesResponse{
		Phases:   phases,
		Outliers: outliers,
		Summary:  clustering.FormatPhaseSummary(phases, outliers),
	})
}

// ClusterEntries converts stored entries to clustering input.
func ClusterEntries(entries []db.MoodEntry) []clustering.Entry {
	out := make([]clustering.Entry, len(entries))
	for i, e := range entries {
		out[i] = clustering.Entry{
			ID:        e.ID.String(),
			Happiness: e.Happiness,
			Calmness:  e.Calmness,
			Timestamp: e.Timestamp,
		}
	}
	return out
}

// MoodTwin is a group of listeners feeling alike, by the music they share.
type MoodTwin struct {
	ID          string  `json:"id"`
	MoodEntryID *string `json:"moodEntryId"`
	MusicType   string  `json:"musicType"`
	TwinCount   int     `json:"twinCount"`
	City        string  `json:"city"`
}

// TwinGroups splits n similar listeners into three music-type groups.
func TwinGroups(happiness, calmness, n int) []MoodTwin {
	first := "ballads"
	switch {
	case happiness >= 70:
		first = "upbeat pop"
	case calmness >= 70:
		first = "healing"
	}

	second := "classical piano"
	switch {
	case calmness >= 60:
		second = "meditation"
	case happiness < 40:
		second = "warm ballads"
	}

	third := "lo-fi"
	if happiness < 40 && calmness < 40 {
		third = "rain sounds"
	}

	return []MoodTwin{
		{ID: "1", MusicType: first, TwinCount: n, City: "Taipei"},
		{ID: "2", MusicType: second, TwinCount: n * 7 / 10, City: "Kaohsiung"},
		{ID: "3", MusicType: third, TwinCount: n / 2, City: "Taichung"},
	}
}

// Twins finds entries close to a mood (GET /api/mood/twins/{happiness}/{calmness}).
func (h *Handlers) Twins(w http.ResponseWriter, r *http.Request) {
	happiness, errH := strconv.Atoi(chi.URLParam(r, "happiness"))
	calmness, errC := strconv.Atoi(chi.URLParam(r, "calmness"))
	if errH != nil || errC != nil {
		ErrorResponse(w, http.StatusBadRequest, "happiness and calmness must be integers")
		return
	}
	if err := mood.Validate(happiness, calmness); err != nil {
		h.fail(w, r, err)
		return
	}

	similar, err := h.store.MoodEntries().FindSimilar(r.Context(), happiness, calmness, twinWindow, twinScan)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, TwinGroups(happiness, calmness, len(similar)))
}

type warmthRequest struct {
	MusicType string `json:"musicType"`
	Message   string `json:"message"`
}

type warmthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendWarmth leaves an anonymous note for a twin group (POST /api/mood/twins/send-warmth).
func (h *Handlers) SendWarmth(w http.ResponseWriter, r *http.Request) {
	var req warmthRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.MusicType == "" {
		ErrorResponse(w, http.StatusBadRequest, "musicType is required")
		return
	}

	text := req.Message
	if text == "" {
		text = "Sending warmth to everyone listening to " + req.MusicType
	}
	msg := &db.EmotionMessage{Message: text, IsAnonymous: true}
	if err := h.store.Messages().Create(r.Context(), msg); err != nil {
		h.fail(w, r, err)
		return
	}

	JSONResponse(w, http.StatusOK, warmthResponse{
		Success: true,
		Message: "Warmth delivered. Someone will receive your music recommendation.",
	})
}

package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

const (
	defaultEntryListLimit = 50
	defaultRecentLimit    = 10
)

// entryRequest is the body of entry create and update calls. Nil fields are
// left unchanged on update.
type entryRequest struct {
	UserID      *string    `json:"userId"`
	Happiness   *int       `json:"happiness"`
	Calmness    *int       `json:"calmness"`
	QuickMood   *string    `json:"quickMood"`
	Notes       *string    `json:"notes"`
	IsAnonymous *bool      `json:"isAnonymous"`
	Country     *string    `json:"country"`
	City        *string    `json:"city"`
	Timestamp   *time.Time `json:"timestamp"`
}

// apply copies the set fields onto entry and re-derives its color.
// A known quick-mood tag fills whichever axes the request leaves out.
func (req entryRequest) apply(entry *db.MoodEntry) error {
	if req.QuickMood != nil {
		if preset, ok := mood.PresetFor(*req.QuickMood); ok {
			if req.Happiness == nil {
				entry.Happiness = preset.Happiness
			}
			if req.Calmness == nil {
				entry.Calmness = preset.Calmness
			}
		}
	}
	if req.Happiness != nil {
		entry.Happiness = *req.Happiness
	}
	if req.Calmness != nil {
		entry.Calmness = *req.Calmness
	}
	if err := mood.Validate(entry.Happiness, entry.Calmness); err != nil {
		return err
	}

	if req.UserID != nil {
		entry.UserID = req.UserID
	}
	if req.QuickMood != nil {
		entry.QuickMood = req.QuickMood
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}
	if req.IsAnonymous != nil {
		entry.IsAnonymous = *req.IsAnonymous
	}
	if req.Country != nil {
		entry.Country = req.Country
	}
	if req.City != nil {
		entry.City = req.City
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}
	entry.ApplyColor()
	return nil
}

// CreateEntry stores a new mood entry (POST /api/mood/entries).
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	preset := false
	if req.QuickMood != nil {
		_, preset = mood.PresetFor(*req.QuickMood)
	}
	if !preset && (req.Happiness == nil || req.Calmness == nil) {
		ErrorResponse(w, http.StatusBadRequest, "happiness and calmness are required without a known quickMood")
		return
	}

	var entry db.MoodEntry
	if err := req.apply(&entry); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.MoodEntries().Create(r.Context(), &entry); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("mood entry created", "id", entry.ID, "color", entry.ColorHex)
	JSONResponse(w, http.StatusCreated, entry)
}

// ListEntries lists entries newest first (GET /api/mood/entries).
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, defaultEntryListLimit, true)
}

// RecentEntries lists the latest entries (GET /api/mood/entries/recent).
func (h *Handlers) RecentEntries(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, defaultRecentLimit, false)
}

func (h *Handlers) listEntries(w http.ResponseWriter, r *http.Request, defaultLimit int, paged bool) {
	limit, err := intQuery(r, "limit", defaultLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter := db.EntryFilter{
		UserID: r.URL.Query().Get("userId"),
		Limit:  limit,
	}
	if paged {
		if filter.Skip, err = intQuery(r, "skip", 0); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	entries, err := h.store.MoodEntries().List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, entries)
}

// GetEntry returns one entry (GET /api/mood/entries/{id}).
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}
	JSONResponse(w, http.StatusOK, entry)
}

// UpdateEntry applies a partial update (PUT /api/mood/entries/{id}).
func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.apply(entry); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.MoodEntries().Update(r.Context(), entry); err != nil {
		h.entryFail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, entry)
}

// DeleteEntry removes an entry (DELETE /api/mood/entries/{id}).
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.MoodEntries().Delete(r.Context(), id); err != nil {
		h.entryFail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, messageBody{Message: "Mood entry deleted successfully"})
}

func (h *Handlers) loadEntry(w http.ResponseWriter, r *http.Request) (*db.MoodEntry, bool) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	entry, err := h.store.MoodEntries().Get(r.Context(), id)
	if err != nil {
		h.entryFail(w, r, err)
		return nil, false
	}
	return entry, true
}

func (h *Handlers) entryFail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, db.ErrNotFound) {
		ErrorResponse(w, http.StatusNotFound, "Mood entry not found")
		return
	}
	h.fail(w, r, fmt.Errorf("mood entry: %w", err))
}

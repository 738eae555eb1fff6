package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/db"
)

const (
	defaultWallLimit    = 20
	defaultMessageLimit = 20
	maxMessageLength    = 500
)

// GlobalWall lists anonymous entries (GET /api/emotions/global).
func (h *Handlers) GlobalWall(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", defaultWallLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.store.MoodEntries().List(r.Context(), db.EntryFilter{
		AnonymousOnly: true,
		Limit:         limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, entries)
}

type messageRequest struct {
	MoodEntryID *uuid.UUID `json:"moodEntryId"`
	Message     string     `json:"message"`
	IsAnonymous *bool      `json:"isAnonymous"`
	City        *string    `json:"city"`
}

// CreateMessage posts a note to the wall (POST /api/emotions/messages).
func (h *Handlers) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}
	if len([]rune(text)) > maxMessageLength {
		ErrorResponse(w, http.StatusBadRequest, "message is too long")
		return
	}

	if req.MoodEntryID != nil {
		if _, err := h.store.MoodEntries().Get(r.Context(), *req.MoodEntryID); err != nil {
			h.entryFail(w, r, err)
			return
		}
	}

	msg := &db.EmotionMessage{
		MoodEntryID: req.MoodEntryID,
		Message:     text,
		IsAnonymous: true,
		City:        req.City,
	}
	if req.IsAnonymous != nil {
		msg.IsAnonymous = *req.IsAnonymous
	}
	if err := h.store.Messages().Create(r.Context(), msg); err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusCreated, msg)
}

// ListMessages lists wall messages newest first (GET /api/emotions/messages).
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", defaultMessageLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var entryID *uuid.UUID
	if raw := r.URL.Query().Get("moodEntryId"); raw != "" {
		id, err := parseID(raw, "moodEntryId")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		entryID = &id
	}

	messages, err := h.store.Messages().List(r.Context(), entryID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, messages)
}

// AddSupport increments a message's support count (POST /api/emotions/messages/{id}/support).
func (h *Handlers) AddSupport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Messages().AddSupport(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			ErrorResponse(w, http.StatusNotFound, "Message not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, messageBody{Message: "Support added successfully"})
}

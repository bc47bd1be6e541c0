// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/majority/auth"
	"github.com/danielhkuo/majority/cliparse"
	"github.com/danielhkuo/majority/majority"
	"github.com/danielhkuo/majority/middleware"
	"github.com/danielhkuo/majority/models"
	"github.com/danielhkuo/majority/store"
)

type PollHandler struct {
	polls *store.Polls
	cfg   cliparse.Config
}

func NewPollHandler(polls *store.Polls, cfg cliparse.Config) *PollHandler {
	return &PollHandler{polls: polls, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.Description) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}
	if strings.TrimSpace(req.Author) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author is required")
		return
	}
	if msg := validateOptions(req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	// An omitted policy keeps the zero value, Reject
	var policy majority.Policy
	if req.Policy != "" {
		var err error
		if policy, err = majority.ParsePolicy(req.Policy); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "policy must be 'reject' or 'ignore'")
			return
		}
	}

	pollID, err := h.polls.AddPoll(r.Context(), store.NewPoll{
		Description: req.Description,
		Author:      req.Author,
		Options:     req.Options,
		Policy:      policy,
	})
	if err != nil {
		storeError(w, err, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "author", req.Author, "policy", policy)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:   pollID,
		AdminKey: auth.GenerateAdminKey(pollID, h.cfg.AdminKeySalt),
	})
}

// GetPoll handles GET /polls/{id}
// ?format=text renders the poll as plain text instead of JSON
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := h.polls.GetPoll(r.Context(), pollID)
	if err != nil {
		storeError(w, err, "Failed to load poll", "poll_id", pollID)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		middleware.JSONResponse(w, http.StatusOK, poll)
	case "text":
		middleware.TextResponse(w, http.StatusOK, poll.String())
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be 'json' or 'text'")
	}
}

// AddOptions handles POST /polls/{id}/options
func (h *PollHandler) AddOptions(w http.ResponseWriter, r *http.Request) {
	pollID, ok := h.authorizeAdmin(w, r)
	if !ok {
		return
	}

	var req models.AddOptionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateOptions(req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	poll, err := h.polls.AddOptions(r.Context(), pollID, req.Options)
	if err != nil {
		storeError(w, err, "Failed to add options", "poll_id", pollID)
		return
	}

	slog.Info("options added", "poll_id", pollID, "count", len(req.Options))

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := h.authorizeAdmin(w, r)
	if !ok {
		return
	}

	poll, err := h.polls.ClosePoll(r.Context(), pollID)
	if err != nil {
		storeError(w, err, "Failed to close poll", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// authorizeAdmin checks the X-Admin-Key header against the poll in the path
func (h *PollHandler) authorizeAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return "", false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}
	return pollID, true
}

func validateOptions(options []string) string {
	if len(options) == 0 {
		return "at least one option is required"
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return "options must not be blank"
		}
	}
	return ""
}

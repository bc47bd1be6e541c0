// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/majority/auth"
	"github.com/danielhkuo/majority/cliparse"
	"github.com/danielhkuo/majority/middleware"
	"github.com/danielhkuo/majority/models"
	"github.com/danielhkuo/majority/store"
)

type VotingHandler struct {
	polls *store.Polls
	cfg   cliparse.Config
}

func NewVotingHandler(polls *store.Polls, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{polls: polls, cfg: cfg}
}

// RegisterVoter handles POST /voters
func (h *VotingHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		VoterToken: voterToken,
	})
}

// Vote handles POST /polls/{id}/votes
// A later vote by the same voter on the same option replaces the earlier one
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header is required")
		return
	}
	if err := auth.ValidateVoterToken(voterToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Option == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option is required")
		return
	}
	if req.Value < 1 || req.Value > h.cfg.MaxJudgment {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("value must be between 1 and %d", h.cfg.MaxJudgment))
		return
	}

	voterID := auth.VoterID(voterToken, h.cfg.AdminKeySalt)
	poll, err := h.polls.Vote(r.Context(), pollID, *req.Option, voterID, req.Value)
	if err != nil {
		storeError(w, err, "Failed to record vote", "poll_id", pollID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/majority/majority"
)

// Request types

type CreatePollRequest struct {
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Options     []string `json:"options"`
	Policy      string   `json:"policy,omitempty"` // "reject" (default) or "ignore"
}

type AddOptionsRequest struct {
	Options []string `json:"options"`
}

type VoteRequest struct {
	Option *int `json:"option"`
	Value  int  `json:"value"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	AdminKey string `json:"admin_key"`
}

type RegisterVoterResponse struct {
	VoterToken string `json:"voter_token"`
}

// Domain types

type Option struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

// Poll is a derived view of a poll: it is rebuilt from stored votes on
// every read and never updated in place.
type Poll struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Policy      majority.Policy `json:"policy"`
	IsOpen      bool            `json:"is_open"`
	Voters      int             `json:"voters"`
	Options     []Option        `json:"options"`
	Votes       [][]int         `json:"votes"`   // normalized, per option
	Ranking     []int           `json:"ranking"` // 1 = best, per option
	CreatedAt   time.Time       `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

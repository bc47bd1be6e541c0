// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/majority/majority"
	"github.com/danielhkuo/majority/models"
	"github.com/danielhkuo/majority/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different voters
// are all recorded exactly once
func TestConcurrentVotes(t *testing.T) {
	handler, polls := newVotingHandler(t)
	pollID, _ := testutil.CreateTestPoll(t, polls, handler.cfg, majority.Reject, "A", "B", "C")

	numVoters := 10
	tokens := make([]string, numVoters)
	for i := range tokens {
		tokens[i] = testutil.NewTestVoterToken(t)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := range numVoters {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()
			for opt := range 3 {
				value := (voter+opt)%5 + 1
				w := vote(handler, pollID, tokens[voter], models.VoteRequest{Option: intPtr(opt), Value: value})
				if w.Code == http.StatusOK {
					successCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters*3 {
		t.Errorf("Expected %d successful votes, got %d", numVoters*3, successCount.Load())
	}

	poll, err := polls.GetPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Failed to load poll: %v", err)
	}
	if poll.Voters != numVoters {
		t.Errorf("Expected %d voters, got %d", numVoters, poll.Voters)
	}
	for opt, votes := range poll.Votes {
		if len(votes) != numVoters {
			t.Errorf("Option %d: expected %d judgments, got %d", opt, numVoters, len(votes))
		}
	}
}

// TestConcurrentRevotes verifies that one voter racing updates on the same
// option leaves exactly one judgment behind
func TestConcurrentRevotes(t *testing.T) {
	handler, polls := newVotingHandler(t)
	pollID, _ := testutil.CreateTestPoll(t, polls, handler.cfg, majority.Ignore, "A")
	token := testutil.NewTestVoterToken(t)

	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			vote(handler, pollID, token, models.VoteRequest{Option: intPtr(0), Value: value})
		}(i + 1)
	}
	wg.Wait()

	poll, err := polls.GetPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Failed to load poll: %v", err)
	}
	if poll.Voters != 1 || len(poll.Votes[0]) != 1 {
		t.Errorf("Expected a single judgment, got voters=%d votes=%v", poll.Voters, poll.Votes[0])
	}
}

// TestConcurrentVoteAndClose verifies that no vote lands after a close
func TestConcurrentVoteAndClose(t *testing.T) {
	handler, polls := newVotingHandler(t)
	pollID, _ := testutil.CreateTestPoll(t, polls, handler.cfg, majority.Reject, "A")

	numVoters := 20
	tokens := make([]string, numVoters)
	for i := range tokens {
		tokens[i] = testutil.NewTestVoterToken(t)
	}

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := range numVoters {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()
			w := vote(handler, pollID, tokens[voter], models.VoteRequest{Option: intPtr(0), Value: 3})
			switch w.Code {
			case http.StatusOK:
				accepted.Add(1)
			case http.StatusConflict:
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}

	if _, err := polls.ClosePoll(context.Background(), pollID); err != nil {
		t.Fatalf("Failed to close poll: %v", err)
	}
	wg.Wait()

	poll, err := polls.GetPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Failed to load poll: %v", err)
	}
	if poll.Voters != int(accepted.Load()) {
		t.Errorf("Expected %d stored voters, got %d", accepted.Load(), poll.Voters)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/majority/db"
	"github.com/danielhkuo/majority/majority"
	"github.com/danielhkuo/majority/models"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrPollClosed     = errors.New("poll is closed")
	ErrOptionNotFound = errors.New("option not found")
	ErrNoOptions      = errors.New("poll needs at least one option")
)

// NewPoll describes a poll to create.
type NewPoll struct {
	Description string
	Author      string
	Options     []string
	Policy      majority.Policy
}

// Polls stores polls, options and votes, and derives ranked poll views.
type Polls struct {
	db      *sql.DB
	driver  string
	metrics *Metrics
}

// New returns a store over an open connection. driver is db.DriverPostgres
// or db.DriverSQLite. metrics may be nil.
func New(conn *sql.DB, driver string, metrics *Metrics) *Polls {
	return &Polls{db: conn, driver: driver, metrics: metrics}
}

// AddPoll creates an open poll with its options numbered from 0.
func (s *Polls) AddPoll(ctx context.Context, p NewPoll) (string, error) {
	if len(p.Options) == 0 {
		return "", ErrNoOptions
	}
	policy, err := p.Policy.MarshalText()
	if err != nil {
		return "", err
	}

	pollID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, description, author, policy, is_open, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, pollID, p.Description, p.Author, string(policy), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := insertOptions(ctx, tx, pollID, 0, p.Options); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit poll: %w", err)
	}

	return pollID, nil
}

// AddOptions appends options to an open poll, numbered after the existing ones.
func (s *Polls) AddOptions(ctx context.Context, pollID string, descs []string) (models.Poll, error) {
	if len(descs) == 0 {
		return models.Poll{}, ErrNoOptions
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Concurrent AddOptions must not pick the same numbers
	if err := requireOpen(ctx, tx, pollID, s.driver == db.DriverPostgres); err != nil {
		return models.Poll{}, err
	}

	var next int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(number) + 1, 0) FROM poll_option WHERE poll_id = $1
	`, pollID).Scan(&next)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query option numbers: %w", err)
	}

	if err := insertOptions(ctx, tx, pollID, next, descs); err != nil {
		return models.Poll{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit options: %w", err)
	}

	return s.GetPoll(ctx, pollID)
}

func insertOptions(ctx context.Context, tx *sql.Tx, pollID string, first int, descs []string) error {
	for i, desc := range descs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, number, description)
			VALUES ($1, $2, $3)
		`, pollID, first+i, desc)
		if err != nil {
			return fmt.Errorf("failed to insert option %d: %w", first+i, err)
		}
	}
	return nil
}

// requireOpen fails unless the poll exists and is open. forUpdate locks the
// poll row until the transaction ends; SQLite transactions already hold
// the database write lock.
func requireOpen(ctx context.Context, tx *sql.Tx, pollID string, forUpdate bool) error {
	query := `SELECT is_open FROM poll WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var isOpen bool
	err := tx.QueryRowContext(ctx, query, pollID).Scan(&isOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPollNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if !isOpen {
		return ErrPollClosed
	}
	return nil
}

// Vote records voterID's judgment of one option, replacing any earlier one,
// and returns the poll as it stands afterwards.
func (s *Polls) Vote(ctx context.Context, pollID string, option int, voterID string, value int) (models.Poll, error) {
	if err := s.vote(ctx, pollID, option, voterID, value); err != nil {
		s.metrics.incVote(voteOutcome(err))
		return models.Poll{}, err
	}
	s.metrics.incVote(OutcomeAccepted)

	slog.Info("vote recorded", "poll_id", pollID, "option", option)

	return s.GetPoll(ctx, pollID)
}

func (s *Polls) vote(ctx context.Context, pollID string, option int, voterID string, value int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireOpen(ctx, tx, pollID, false); err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_option WHERE poll_id = $1 AND number = $2
		)
	`, pollID, option).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query option: %w", err)
	}
	if !exists {
		return ErrOptionNotFound
	}

	// The open check is repeated in the write itself so a close committed
	// after requireOpen still rejects the vote.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vote (voter_id, poll_id, number, value, updated_at)
		SELECT CAST($1 AS TEXT), id, CAST($2 AS INTEGER), CAST($3 AS INTEGER), CURRENT_TIMESTAMP
		FROM poll
		WHERE id = $4 AND is_open = TRUE
		ON CONFLICT (voter_id, poll_id, number)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, voterID, option, value, pollID)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read vote result: %w", err)
	}
	if n == 0 {
		return ErrPollClosed
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// GetPoll reads the poll, its options and votes in one snapshot and derives
// the ranked view.
func (s *Polls) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, db.SnapshotTxOptions(s.driver))
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	poll := models.Poll{ID: pollID}
	var policy string
	err = tx.QueryRowContext(ctx, `
		SELECT description, author, policy, is_open, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.Description, &poll.Author, &policy, &poll.IsOpen, &poll.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	poll.Policy, err = majority.ParsePolicy(policy)
	if err != nil {
		return models.Poll{}, fmt.Errorf("poll %s: %w", pollID, err)
	}

	poll.Options, err = queryOptions(ctx, tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	judgments, err := queryJudgments(ctx, tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT voter_id) FROM vote WHERE poll_id = $1
	`, pollID).Scan(&poll.Voters)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to count voters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to finish read: %w", err)
	}

	start := time.Now()
	res := majority.Assemble(majority.Snapshot{
		Options: len(poll.Options),
		Policy:  poll.Policy,
		Votes:   judgments,
	})
	s.metrics.observeAssembly(time.Since(start))

	poll.Votes = res.Votes
	poll.Ranking = res.Ranking
	return poll, nil
}

func queryOptions(ctx context.Context, tx *sql.Tx, pollID string) ([]models.Option, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT number, description
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY number ASC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Index, &opt.Description); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func queryJudgments(ctx context.Context, tx *sql.Tx, pollID string) ([]majority.Judgment, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT number, value FROM vote WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var judgments []majority.Judgment
	for rows.Next() {
		var j majority.Judgment
		if err := rows.Scan(&j.Option, &j.Value); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		judgments = append(judgments, j)
	}
	return judgments, rows.Err()
}

// IsPollOpen reports whether the poll accepts votes.
func (s *Polls) IsPollOpen(ctx context.Context, pollID string) (bool, error) {
	var isOpen bool
	err := s.db.QueryRowContext(ctx, `SELECT is_open FROM poll WHERE id = $1`, pollID).Scan(&isOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrPollNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to query poll: %w", err)
	}
	return isOpen, nil
}

// ClosePoll stops a poll from accepting votes. Closing a closed poll is a no-op.
func (s *Polls) ClosePoll(ctx context.Context, pollID string) (models.Poll, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE poll SET is_open = FALSE WHERE id = $1`, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to close poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to read close result: %w", err)
	}
	if n == 0 {
		return models.Poll{}, ErrPollNotFound
	}

	slog.Info("poll closed", "poll_id", pollID)

	return s.GetPoll(ctx, pollID)
}

// PurgeClosed deletes every closed poll together with its options and votes.
func (s *Polls) PurgeClosed(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poll WHERE is_open = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge closed polls: %w", err)
	}
	return res.RowsAffected()
}

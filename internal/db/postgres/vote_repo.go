package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Quotable/internal/core/quotes"
	"Quotable/internal/core/votes"
)

// maxApplyAttempts is the retry budget for detected write conflicts
const maxApplyAttempts = 2

type postgresVoteLedger struct {
	db *sql.DB
}

// NewVoteLedger creates the PostgreSQL vote ledger
func NewVoteLedger(db *sql.DB) votes.Ledger {
	return &postgresVoteLedger{db: db}
}

// ApplyVote runs the read-decide-write sequence as one transaction and
// returns the post-transaction like count. A detected write conflict (two
// concurrent first votes racing on the uniqueness constraint, or a
// serialization failure) is retried once before surfacing ErrVoteConflict.
func (r *postgresVoteLedger) ApplyVote(ctx context.Context, quoteID int64, voterID string, direction votes.Direction) (int64, error) {
	var likes int64
	var err error

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		likes, err = r.applyOnce(ctx, quoteID, voterID, direction)
		if err == nil || !isWriteConflict(err) {
			return likes, err
		}
	}

	return 0, votes.ErrVoteConflict
}

// applyOnce executes one transactional attempt.
// The counter moves by a relative delta, never an absolute overwrite, so a
// concurrent vote by a different voter on the same quote is never lost.
func (r *postgresVoteLedger) applyOnce(ctx context.Context, quoteID int64, voterID string, direction votes.Direction) (int64, error) {
	var likes int64

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM quotes WHERE id = $1`, quoteID).Scan(&exists)
		if err == sql.ErrNoRows {
			return quotes.ErrQuoteNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check quote existence: %w", err)
		}

		stored := votes.ValueNone
		err = tx.QueryRowContext(ctx,
			`SELECT value FROM quote_likes WHERE quote_id = $1 AND user_id = $2`,
			quoteID, voterID,
		).Scan(&stored)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to read existing vote: %w", err)
		}

		next, delta := votes.Transition(stored, direction)

		switch {
		case stored == votes.ValueNone:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO quote_likes (quote_id, user_id, value) VALUES ($1, $2, $3)`,
				quoteID, voterID, next,
			)
		case next == votes.ValueNone:
			_, err = tx.ExecContext(ctx,
				`DELETE FROM quote_likes WHERE quote_id = $1 AND user_id = $2`,
				quoteID, voterID,
			)
		default:
			_, err = tx.ExecContext(ctx,
				`UPDATE quote_likes SET value = $3, updated_at = NOW() WHERE quote_id = $1 AND user_id = $2`,
				quoteID, voterID, next,
			)
		}
		if err != nil {
			return fmt.Errorf("failed to write vote state: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE quotes SET likes = likes + $2, updated_at = NOW() WHERE id = $1 RETURNING likes`,
			quoteID, delta,
		).Scan(&likes)
		if err != nil {
			return fmt.Errorf("failed to update like counter: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return likes, nil
}

// GetVote retrieves the stored vote for (quoteID, voterID), nil if none
func (r *postgresVoteLedger) GetVote(ctx context.Context, quoteID int64, voterID string) (*votes.Vote, error) {
	query := `
		SELECT quote_id, user_id, value, created_at, updated_at
		FROM quote_likes
		WHERE quote_id = $1 AND user_id = $2
	`

	var vote votes.Vote

	err := r.db.QueryRowContext(ctx, query, quoteID, voterID).Scan(
		&vote.QuoteID, &vote.UserID, &vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// isWriteConflict reports whether the error is a retriable transactional
// conflict: the per-pair uniqueness constraint firing under a concurrent
// insert, or a serialization failure.
func isWriteConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") && strings.Contains(msg, "unique_quote_voter") {
		return true
	}
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

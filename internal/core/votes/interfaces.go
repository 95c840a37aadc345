package votes

import "context"

// Service defines the business logic interface for voting
type Service interface {
	// ApplyVote runs one vote action through its preconditions and the
	// toggle/switch state machine, returning the post-transaction like count.
	// Preconditions fail fast with no side effect: quote must exist, voter
	// must be an authenticated non-anonymous actor, and the voting rate
	// limiter must admit the call.
	ApplyVote(ctx context.Context, req ApplyVoteRequest) (int64, error)

	// GetVote retrieves a voter's current vote on a quote, nil if none
	GetVote(ctx context.Context, quoteID int64, voterID string) (*Vote, error)
}

// Ledger is the transactional data access interface for votes.
// Implementations execute the whole read-decide-write sequence for one call
// as a single atomic transaction: read the existing vote row, decide the
// transition, write the new vote state, and apply the counter delta as a
// relative update. Two concurrent calls for the same (quote, voter) must not
// both insert; the uniqueness constraint is the backstop and a detected
// conflict is retried before surfacing ErrVoteConflict.
type Ledger interface {
	// ApplyVote atomically applies one vote action and returns the resulting
	// like count. Returns quotes.ErrQuoteNotFound if the quote is missing.
	ApplyVote(ctx context.Context, quoteID int64, voterID string, direction Direction) (int64, error)

	// GetVote retrieves the stored vote for (quoteID, voterID), nil if none
	GetVote(ctx context.Context, quoteID int64, voterID string) (*Vote, error)
}

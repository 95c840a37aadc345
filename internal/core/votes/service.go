package votes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Quotable/internal/core/quotes"
	"Quotable/internal/core/ratelimit"
	"Quotable/internal/core/users"
)

// voteService implements the Service interface
type voteService struct {
	ledger   Ledger
	userRepo users.Repository
	limiter  ratelimit.Limiter
	logger   *slog.Logger
}

// NewService creates a new vote service.
// limiter is the voting limiter (looser than the creation one).
func NewService(ledger Ledger, userRepo users.Repository, limiter ratelimit.Limiter, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &voteService{
		ledger:   ledger,
		userRepo: userRepo,
		limiter:  limiter,
		logger:   logger,
	}
}

// ApplyVote checks every precondition before any mutation, then delegates the
// atomic read-decide-write sequence to the ledger.
func (s *voteService) ApplyVote(ctx context.Context, req ApplyVoteRequest) (int64, error) {
	if req.QuoteID < 1 {
		return 0, quotes.NewValidationError("quoteId", "quote id must be a positive integer")
	}
	if !ValidDirection(req.Direction) {
		return 0, ErrInvalidDirection
	}
	if req.VoterID == "" {
		return 0, ErrNotAuthorized
	}

	voter, err := s.userRepo.GetByID(ctx, req.VoterID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return 0, ErrNotAuthorized
		}
		s.logger.Error("failed to load voter", "error", err, "voter", req.VoterID)
		return 0, fmt.Errorf("failed to load voter: %w", err)
	}
	if voter.IsAnonymous {
		return 0, ErrAnonymousVoter
	}

	decision, err := s.limiter.Check(ctx, req.Origin, req.VoterID)
	if err != nil {
		s.logger.Error("rate limit check failed", "error", err, "voter", req.VoterID)
		return 0, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !decision.Allowed {
		return 0, &ratelimit.RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	likes, err := s.ledger.ApplyVote(ctx, req.QuoteID, req.VoterID, req.Direction)
	if err != nil {
		if errors.Is(err, quotes.ErrQuoteNotFound) || errors.Is(err, ErrVoteConflict) {
			return 0, err
		}
		s.logger.Error("failed to apply vote",
			"error", err,
			"quote", req.QuoteID,
			"voter", req.VoterID,
			"direction", req.Direction)
		return 0, fmt.Errorf("failed to apply vote: %w", err)
	}

	return likes, nil
}

// GetVote retrieves a voter's current vote on a quote
func (s *voteService) GetVote(ctx context.Context, quoteID int64, voterID string) (*Vote, error) {
	if quoteID < 1 {
		return nil, quotes.NewValidationError("quoteId", "quote id must be a positive integer")
	}
	if voterID == "" {
		return nil, ErrNotAuthorized
	}
	return s.ledger.GetVote(ctx, quoteID, voterID)
}

package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"Quotable/internal/core/ratelimit"
	"Quotable/internal/notify"
)

// quoteService implements the Service interface
type quoteService struct {
	repo     Repository
	limiter  ratelimit.Limiter
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService creates a new quote service.
// limiter is the creation limiter (stricter than the voting one).
func NewService(repo Repository, limiter ratelimit.Limiter, notifier notify.Notifier, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &quoteService{
		repo:     repo,
		limiter:  limiter,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateQuote validates input, checks admission and stores the quote.
// All checks run before any write; a rejected call leaves no partial state.
func (s *quoteService) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	if req.UserID == "" {
		return nil, NewValidationError("userId", "user id is required")
	}

	text := strings.TrimSpace(req.Text)
	author := strings.TrimSpace(req.Author)

	if text == "" {
		return nil, NewValidationError("quote", "quote cannot be empty")
	}
	if author == "" {
		return nil, NewValidationError("author", "author cannot be empty")
	}
	if len([]rune(text)) > MaxTextLength {
		return nil, NewValidationError("quote", fmt.Sprintf("quote is too long (max %d characters)", MaxTextLength))
	}
	if len([]rune(author)) > MaxAuthorLength {
		return nil, NewValidationError("author", fmt.Sprintf("author name is too long (max %d characters)", MaxAuthorLength))
	}

	decision, err := s.limiter.Check(ctx, req.Origin, req.UserID)
	if err != nil {
		s.logger.Error("rate limit check failed", "error", err, "user", req.UserID)
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !decision.Allowed {
		return nil, &ratelimit.RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	userID := req.UserID
	quote := &Quote{
		Text:   sanitizeString(text, MaxTextLength),
		Author: sanitizeString(author, MaxAuthorLength),
		UserID: &userID,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		s.logger.Error("failed to create quote", "error", err, "user", req.UserID)
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.notifier.FeedChanged(ctx)

	return quote, nil
}

// DeleteQuote verifies ownership then removes the quote.
// Unowned quotes have no owner to match, so they are never deletable.
func (s *quoteService) DeleteQuote(ctx context.Context, quoteID int64, requesterID string) error {
	if quoteID < 1 {
		return NewValidationError("quoteId", "quote id must be a positive integer")
	}
	if requesterID == "" {
		return ErrNotQuoteOwner
	}

	quote, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}

	if quote.UserID == nil || *quote.UserID != requesterID {
		return ErrNotQuoteOwner
	}

	if err := s.repo.Delete(ctx, quoteID); err != nil {
		s.logger.Error("failed to delete quote", "error", err, "quote", quoteID)
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	s.notifier.FeedChanged(ctx)

	return nil
}

// GetQuote retrieves a single quote
func (s *quoteService) GetQuote(ctx context.Context, quoteID int64) (*Quote, error) {
	if quoteID < 1 {
		return nil, NewValidationError("quoteId", "quote id must be a positive integer")
	}
	return s.repo.GetByID(ctx, quoteID)
}

// sanitizeString trims whitespace and caps the input length
func sanitizeString(input string, maxLength int) string {
	trimmed := strings.TrimSpace(input)
	runes := []rune(trimmed)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return trimmed
}

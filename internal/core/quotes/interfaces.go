package quotes

import "context"

// Service defines the business logic interface for quotes
type Service interface {
	// CreateQuote validates, sanitizes and stores a new quote.
	// Anonymous identities may create quotes. Admission is controlled by the
	// creation rate limiter; a rejected call returns *ratelimit.RateLimitedError.
	CreateQuote(ctx context.Context, req CreateQuoteRequest) (*Quote, error)

	// DeleteQuote removes a quote after verifying the requester owns it
	DeleteQuote(ctx context.Context, quoteID int64, requesterID string) error

	// GetQuote retrieves a single quote by id
	GetQuote(ctx context.Context, quoteID int64) (*Quote, error)
}

// Repository defines the data access interface for quotes
type Repository interface {
	// Create inserts a new quote, filling ID, CreatedAt and UpdatedAt
	Create(ctx context.Context, quote *Quote) error

	// GetByID retrieves a quote by id
	// Returns ErrQuoteNotFound if missing
	GetByID(ctx context.Context, id int64) (*Quote, error)

	// Delete removes a quote and its votes
	// Returns ErrQuoteNotFound if missing
	Delete(ctx context.Context, id int64) error
}

package feeds

import "context"

// Service defines the read side of the feed
type Service interface {
	// GetFeed resolves the request and returns one bounded page
	GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error)
}

// Repository defines the data access interface for feed queries
type Repository interface {
	// ListPage fetches up to limit+1 rows for a keyset descriptor, ordered by
	// the descriptor's sort key with the identifier as tiebreaker, starting
	// strictly after the row identified by cursorID (nil means from the top).
	// When viewerID is non-empty each row carries that viewer's vote value.
	ListPage(ctx context.Context, q QueryDescriptor, cursorID *int64, limit int, viewerID string) ([]QuoteView, error)

	// ListAllFiltered fetches the entire filtered set ordered by ascending
	// identifier, for the shuffle sort's permutation input
	ListAllFiltered(ctx context.Context, f Filter, viewerID string) ([]QuoteView, error)
}

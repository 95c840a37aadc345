package feeds

import (
	"context"
	"fmt"
	"log/slog"

	"Quotable/internal/core/quotes"
)

// feedService implements the pagination engine.
// Keyset sorts page by sort key strictly after the cursor row; the shuffle
// sort pages a recomputed deterministic permutation by integer offset. Both
// fetch limit+1 rows to detect a further page without a second round trip.
type feedService struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new feed service
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedService{
		repo:   repo,
		logger: logger,
	}
}

// GetFeed resolves the request and returns one bounded page
func (s *feedService) GetFeed(ctx context.Context, req FeedRequest) (*FeedPage, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit || limit > MaxLimit {
		return nil, quotes.NewValidationError("limit",
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}

	descriptor, err := ResolveQuery(req.FilterType, req.Author, req.Sort)
	if err != nil {
		return nil, err
	}

	if descriptor.Keyset() {
		return s.keysetPage(ctx, descriptor, req.Cursor, limit, req.ViewerID)
	}
	return s.shufflePage(ctx, descriptor, req.Cursor, limit, req.ViewerID)
}

// keysetPage pages by "rows after the last seen key". The cursor is the
// identifier of the last item served.
func (s *feedService) keysetPage(ctx context.Context, q QueryDescriptor, cursor *int64, limit int, viewerID string) (*FeedPage, error) {
	if cursor != nil && *cursor < 1 {
		return nil, quotes.NewValidationError("cursor", "cursor must be a positive integer")
	}

	rows, err := s.repo.ListPage(ctx, q, cursor, limit, viewerID)
	if err != nil {
		s.logger.Error("failed to list feed page", "error", err, "sort", q.Sort, "filter", q.Filter.Kind)
		return nil, fmt.Errorf("failed to list feed page: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	var nextCursor *int64
	if hasMore {
		last := rows[len(rows)-1].ID
		nextCursor = &last
	}

	if rows == nil {
		rows = []QuoteView{}
	}

	return &FeedPage{Quotes: rows, NextCursor: nextCursor, HasMore: hasMore}, nil
}

// shufflePage recomputes the full permutation of the filtered set and slices
// it by offset. The cursor is the last-used offset, never an item id.
// Membership changes between fetches shift offsets and can repeat or skip
// rows; that is an accepted property of this mode.
func (s *feedService) shufflePage(ctx context.Context, q QueryDescriptor, cursor *int64, limit int, viewerID string) (*FeedPage, error) {
	var offset int64
	if cursor != nil {
		if *cursor < 0 {
			return nil, quotes.NewValidationError("cursor", "cursor must not be negative")
		}
		offset = *cursor
	}

	all, err := s.repo.ListAllFiltered(ctx, q.Filter, viewerID)
	if err != nil {
		s.logger.Error("failed to list filtered set", "error", err, "filter", q.Filter.Kind)
		return nil, fmt.Errorf("failed to list filtered set: %w", err)
	}

	order := Permutation(len(all), q.Filter)

	window := make([]QuoteView, 0, limit+1)
	for i := offset; i < int64(len(order)) && len(window) < limit+1; i++ {
		window = append(window, all[order[i]])
	}

	hasMore := len(window) > limit
	if hasMore {
		window = window[:limit]
	}

	var nextCursor *int64
	if hasMore {
		next := offset + int64(limit)
		nextCursor = &next
	}

	return &FeedPage{Quotes: window, NextCursor: nextCursor, HasMore: hasMore}, nil
}

package feeds

import (
	"time"
)

// Limit bounds for one feed page
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 12
)

// FilterKind is a closed set of feed predicates
type FilterKind string

const (
	FilterAll      FilterKind = "all"      // no predicate
	FilterLikes    FilterKind = "likes"    // counter strictly positive
	FilterDislikes FilterKind = "dislikes" // counter strictly negative
	FilterAuthor   FilterKind = "author"   // case-insensitive attribution substring
)

// SortKind is a closed set of feed orderings
type SortKind string

const (
	SortNew     SortKind = "new"     // creation time descending
	SortOld     SortKind = "old"     // creation time ascending
	SortMost    SortKind = "most"    // counter descending
	SortLeast   SortKind = "least"   // counter ascending
	SortDefault SortKind = "default" // deterministic shuffle
)

// Filter is a resolved feed predicate. Author is set only for FilterAuthor.
type Filter struct {
	Kind   FilterKind
	Author string
}

// QueryDescriptor is the immutable result of resolving a filter+sort request.
// It is produced once by ResolveQuery and consumed uniformly by the
// pagination engine; nothing downstream re-branches on raw input strings.
type QueryDescriptor struct {
	Filter Filter
	Sort   SortKind
}

// Keyset reports whether the descriptor pages by sort key rather than by
// permutation offset
func (q QueryDescriptor) Keyset() bool {
	return q.Sort != SortDefault
}

// FeedRequest is the raw feed query before resolution
type FeedRequest struct {
	FilterType string
	Author     string
	Sort       string
	ViewerID   string
	Cursor     *int64
	Limit      int
}

// QuoteView is one feed item: the quote plus its owner's handle and, when a
// viewer is known, that viewer's current vote value
type QuoteView struct {
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Text       string    `json:"quote"`
	Author     string    `json:"author"`
	UserID     *string   `json:"userId,omitempty"`
	UserHandle *string   `json:"userHandle,omitempty"`
	ViewerVote *int      `json:"viewerVote,omitempty"`
	Likes      int64     `json:"likes"`
	ID         int64     `json:"id"`
}

// FeedPage is one bounded page of feed results.
// NextCursor is the last item's id for keyset sorts and the next permutation
// offset for the shuffle sort; the two kinds are never interchangeable.
type FeedPage struct {
	Quotes     []QuoteView `json:"quotes"`
	NextCursor *int64      `json:"nextCursor"`
	HasMore    bool        `json:"hasMore"`
}

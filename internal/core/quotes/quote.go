package quotes

import (
	"time"
)

// Limits applied to quote input before storage
const (
	MaxTextLength   = 1000
	MaxAuthorLength = 100
)

// Quote is a short text item with an attribution and a denormalized like
// counter. The counter always equals the sum of stored vote values for the
// quote; it is only ever mutated by relative updates inside the vote
// transaction, never recomputed in the hot path.
type Quote struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Text      string    `json:"quote" db:"quote"`
	Author    string    `json:"author" db:"author"`
	UserID    *string   `json:"userId,omitempty" db:"user_id"`
	Likes     int64     `json:"likes" db:"likes"`
	ID        int64     `json:"id" db:"id"`
}

// CreateQuoteRequest carries the input for creating a quote.
// Origin is the caller's network origin, used for admission control.
type CreateQuoteRequest struct {
	Text   string
	Author string
	UserID string
	Origin string
}

package votes

import (
	"time"
)

// Direction is a requested vote direction
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Stored vote values. A value of 0 is never stored: absence of a row means
// "no vote", which keeps the uniqueness constraint the concurrency anchor.
const (
	ValueNone = 0
	ValueUp   = 1
	ValueDown = -1
)

// Vote is one voter's stored preference on one quote.
// At most one row exists per (quote, voter) pair, enforced by a database
// uniqueness constraint, not just application logic.
type Vote struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	UserID    string    `json:"userId" db:"user_id"`
	QuoteID   int64     `json:"quoteId" db:"quote_id"`
	Value     int       `json:"value" db:"value"`
}

// ApplyVoteRequest carries the input for one vote action.
// Origin is the caller's network origin, used for admission control.
type ApplyVoteRequest struct {
	VoterID   string
	Origin    string
	Direction Direction
	QuoteID   int64
}

// Transition decides the toggle/switch state machine for one vote action.
// stored is the currently stored value (ValueNone if no row exists).
// It returns the value to store next (ValueNone means delete the row) and the
// relative delta to apply to the quote's like counter in the same transaction.
//
//	stored  requested  next   delta
//	none    up         +1     +1
//	none    down       -1     -1
//	+1      up         none   -1
//	+1      down       -1     -2
//	-1      down       none   +1
//	-1      up         +1     +2
func Transition(stored int, requested Direction) (next int, delta int64) {
	requestedValue := ValueUp
	if requested == DirectionDown {
		requestedValue = ValueDown
	}

	switch {
	case stored == ValueNone:
		return requestedValue, int64(requestedValue)
	case stored == requestedValue:
		// Repeated action toggles the vote off
		return ValueNone, int64(-stored)
	default:
		// Reversed action switches direction, moving the counter by two
		return requestedValue, int64(2 * requestedValue)
	}
}

// ValidDirection reports whether d is a recognized direction
func ValidDirection(d Direction) bool {
	return d == DirectionUp || d == DirectionDown
}

package votes

import "errors"

var (
	// ErrInvalidDirection indicates the vote direction is not "up" or "down"
	ErrInvalidDirection = errors.New("invalid vote direction: must be 'up' or 'down'")

	// ErrNotAuthorized indicates the caller has no verified identity matching
	// the voter, or the voter has no account record
	ErrNotAuthorized = errors.New("not authorized")

	// ErrAnonymousVoter indicates an anonymous identity attempted to vote.
	// Anonymous users may create quotes but never vote.
	ErrAnonymousVoter = errors.New("anonymous users cannot vote")

	// ErrVoteConflict indicates a transactional write conflict persisted
	// through the retry budget
	ErrVoteConflict = errors.New("vote conflicted with a concurrent update")
)

package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter is the admission-control capability injected into services.
// A single-instance in-memory map is one valid implementation; a shared
// external store (redis) is another. Callers must not assume which.
type Limiter interface {
	// Check admits or rejects one request for the given network origin and
	// actor identity. A rejected decision carries the time until the oldest
	// retained request exits the window.
	Check(ctx context.Context, origin, actorID string) (Decision, error)
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Config holds the window tuning for one limiter instance.
// Two instances exist in the system: a stricter one for quote creation and a
// looser one for voting.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// RateLimitedError is surfaced by services when admission is denied.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// RetryAfterSeconds returns the retry-after rounded up to whole seconds,
// never less than 1 for a positive duration.
func (e *RateLimitedError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

var _ error = (*RateLimitedError)(nil)

// originKey and actorKey build the two independent admission keys.
// The origin-level limit caps many ephemeral identities behind one network
// origin; the actor-level limit caps one identity rotating origins.
func originKey(origin string) string {
	return "ip:" + origin
}

func actorKey(origin, actorID string) string {
	return origin + ":" + actorID
}
